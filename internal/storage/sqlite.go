// Package storage provides SQLite-based persistence for level passes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// PassRecord represents one recorded level pass.
type PassRecord struct {
	ID       int64
	UserID   string
	Level    int
	PassedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// The special path ":memory:" opens a private in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			passed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_progress_user ON progress(user_id);
		CREATE INDEX IF NOT EXISTS idx_progress_user_level ON progress(user_id, level);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordPass stores a pass of level by userID. Repeated passes are kept,
// matching the backend which does not deduplicate.
func (s *Store) RecordPass(ctx context.Context, userID string, level int) (PassRecord, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO progress (user_id, level) VALUES (?, ?)",
		userID, level,
	)
	if err != nil {
		return PassRecord{}, fmt.Errorf("storage: cannot record pass: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return PassRecord{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return PassRecord{ID: id, UserID: userID, Level: level, PassedAt: time.Now().UTC()}, nil
}

// MaxLevel returns the highest level passed by userID.
// ok is false when the user has passed nothing.
func (s *Store) MaxLevel(ctx context.Context, userID string) (level int, ok bool, err error) {
	var highest sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		"SELECT MAX(level) FROM progress WHERE user_id = ?",
		userID,
	).Scan(&highest)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query max level: %w", err)
	}

	if !highest.Valid {
		return 0, false, nil
	}
	return int(highest.Int64), true, nil
}

// PassedCount returns the number of distinct levels passed by userID.
func (s *Store) PassedCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(DISTINCT level) FROM progress WHERE user_id = ?",
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count passed levels: %w", err)
	}
	return n, nil
}

// HasPassed reports whether userID has passed level.
func (s *Store) HasPassed(ctx context.Context, userID string, level int) (bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM progress WHERE user_id = ? AND level = ? LIMIT 1",
		userID, level,
	).Scan(&id)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query pass: %w", err)
	}
	return true, nil
}

// History returns every pass by userID, oldest first.
func (s *Store) History(ctx context.Context, userID string) ([]PassRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, level, passed_at
		 FROM progress
		 WHERE user_id = ?
		 ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var records []PassRecord
	for rows.Next() {
		var r PassRecord
		var passedAt any
		if err := rows.Scan(&r.ID, &r.UserID, &r.Level, &passedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.PassedAt = parseTime(passedAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ResetUser deletes every pass recorded for userID.
func (s *Store) ResetUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM progress WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

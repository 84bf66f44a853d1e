package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.RecordPass(ctx, "u1", 1); err != nil {
		t.Fatalf("RecordPass() failed: %v", err)
	}
	n, err := store.PassedCount(ctx, "u1")
	if err != nil {
		t.Fatalf("PassedCount() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 passed level, got %d", n)
	}
}

func TestStoreMaxLevel(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, ok, err := store.MaxLevel(ctx, "u1")
	if err != nil {
		t.Fatalf("MaxLevel() failed: %v", err)
	}
	if ok {
		t.Error("Expected no progress for a fresh user")
	}

	for _, level := range []int{1, 2, 2} {
		if _, err := store.RecordPass(ctx, "u1", level); err != nil {
			t.Fatalf("RecordPass(%d) failed: %v", level, err)
		}
	}
	if _, err := store.RecordPass(ctx, "u2", 4); err != nil {
		t.Fatalf("RecordPass() failed: %v", err)
	}

	level, ok, err := store.MaxLevel(ctx, "u1")
	if err != nil {
		t.Fatalf("MaxLevel() failed: %v", err)
	}
	if !ok || level != 2 {
		t.Errorf("Expected max level 2, got %d (ok=%v)", level, ok)
	}

	count, err := store.PassedCount(ctx, "u1")
	if err != nil {
		t.Fatalf("PassedCount() failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 distinct levels, got %d", count)
	}
}

func TestStoreHasPassed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.RecordPass(ctx, "u1", 1); err != nil {
		t.Fatalf("RecordPass() failed: %v", err)
	}

	tests := []struct {
		user     string
		level    int
		expected bool
	}{
		{"u1", 1, true},
		{"u1", 2, false},
		{"u2", 1, false},
	}

	for _, tc := range tests {
		got, err := store.HasPassed(ctx, tc.user, tc.level)
		if err != nil {
			t.Fatalf("HasPassed() failed: %v", err)
		}
		if got != tc.expected {
			t.Errorf("HasPassed(%s, %d) = %v, expected %v", tc.user, tc.level, got, tc.expected)
		}
	}
}

func TestStoreHistoryAndReset(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, level := range []int{1, 2, 3} {
		if _, err := store.RecordPass(ctx, "u1", level); err != nil {
			t.Fatalf("RecordPass() failed: %v", err)
		}
	}

	history, err := store.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(history))
	}
	for i, r := range history {
		if r.Level != i+1 {
			t.Errorf("Record %d has level %d", i, r.Level)
		}
		if r.UserID != "u1" {
			t.Errorf("Record %d has user %q", i, r.UserID)
		}
		if r.PassedAt.IsZero() {
			t.Errorf("Record %d has no timestamp", i)
		}
	}

	if err := store.ResetUser(ctx, "u1"); err != nil {
		t.Fatalf("ResetUser() failed: %v", err)
	}
	if _, ok, _ := store.MaxLevel(ctx, "u1"); ok {
		t.Error("Expected no progress after reset")
	}
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordPass(ctx, "u1", 1); err != nil {
		t.Fatalf("RecordPass() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer reopened.Close()

	passed, err := reopened.HasPassed(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("HasPassed() failed: %v", err)
	}
	if !passed {
		t.Error("Expected pass to persist")
	}
}

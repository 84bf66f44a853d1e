// Package devserver is a local stand-in for the game backend. It serves the
// same four game endpoints from a YAML level pack and records passes in
// SQLite. The bearer token is taken as the user id; there is no real
// authentication.
package devserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vovakirdan/toxic-turtle/internal/metrics"
	"github.com/vovakirdan/toxic-turtle/internal/storage"
)

type ctxKey struct{}

// Store is the progress persistence the server needs.
type Store interface {
	RecordPass(ctx context.Context, userID string, level int) (storage.PassRecord, error)
	MaxLevel(ctx context.Context, userID string) (int, bool, error)
	PassedCount(ctx context.Context, userID string) (int, error)
	HasPassed(ctx context.Context, userID string, level int) (bool, error)
}

// Server handles the game endpoints.
type Server struct {
	pack    Pack
	store   Store
	logger  *log.Logger
	metrics *metrics.Metrics
}

// New creates a server. logger and m may be nil.
func New(pack Pack, store Store, logger *log.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{pack: pack, store: store, logger: logger, metrics: m}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/game", func(r chi.Router) {
		r.Use(requireBearer)
		r.Get("/get_level_data", s.getLevelData)
		r.Post("/pass_level", s.passLevel)
		r.Get("/current_level", s.currentLevel)
		r.Get("/check_pass_all_level", s.checkPassAll)
	})
	return r
}

// logRequests logs and counts every request by route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.Request(route, strconv.Itoa(status))
		s.logger.Info("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// requireBearer rejects requests without a bearer token and stores the
// token as the user id.
func requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, token)))
	})
}

func userFrom(r *http.Request) string {
	id, _ := r.Context().Value(ctxKey{}).(string)
	return id
}

// canPlay reports whether user may open level: level 1 always, otherwise
// only once the previous level has been passed.
func (s *Server) canPlay(ctx context.Context, user string, level int) (bool, error) {
	if level < 1 || level > s.pack.Total() {
		return false, nil
	}
	if level == 1 {
		return true, nil
	}
	return s.store.HasPassed(ctx, user, level-1)
}

func (s *Server) getLevelData(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil || level < 1 {
		writeDetail(w, http.StatusUnprocessableEntity, "level must be an integer >= 1")
		return
	}
	pl, ok := s.pack.Level(level)
	if !ok {
		writeDetail(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid level. Must be between 1 and %d", s.pack.Total()))
		return
	}

	user := userFrom(r)
	allowed, err := s.canPlay(r.Context(), user, level)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !allowed {
		writeDetail(w, http.StatusForbidden,
			fmt.Sprintf("Cannot access level %d. Must pass all previous levels first.", level))
		return
	}

	code, movements, cursor := pl.payload()
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":      user,
		"level_number": level,
		"code":         code,
		"movements":    movements,
		"cursor":       cursor,
		"can_play":     true,
	})
}

func (s *Server) passLevel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Level int `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if body.Level < 1 || body.Level > s.pack.Total() {
		writeDetail(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid level. Must be between 1 and %d", s.pack.Total()))
		return
	}

	user := userFrom(r)
	allowed, err := s.canPlay(r.Context(), user, body.Level)
	if err != nil {
		s.internalError(w, err)
		return
	}
	if !allowed {
		writeDetail(w, http.StatusForbidden,
			fmt.Sprintf("Cannot pass level %d. Must pass all previous levels first.", body.Level))
		return
	}

	rec, err := s.store.RecordPass(r.Context(), user, body.Level)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        rec.ID,
		"user_id":   rec.UserID,
		"level":     rec.Level,
		"passed_at": rec.PassedAt.Format(time.RFC3339),
	})
}

func (s *Server) currentLevel(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	highest, ok, err := s.store.MaxLevel(r.Context(), user)
	if err != nil {
		s.internalError(w, err)
		return
	}
	var current any
	if ok {
		current = highest
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":       user,
		"current_level": current,
		"total_levels":  s.pack.Total(),
	})
}

func (s *Server) checkPassAll(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r)
	n, err := s.store.PassedCount(r.Context(), user)
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":           user,
		"all_levels_passed": n == s.pack.Total(),
		"levels_passed":     n,
		"total_levels":      s.pack.Total(),
	})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)
	writeDetail(w, http.StatusInternalServerError, "Internal server error")
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

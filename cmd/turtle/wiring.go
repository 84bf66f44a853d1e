package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vovakirdan/toxic-turtle/internal/backend"
	"github.com/vovakirdan/toxic-turtle/internal/config"
	"github.com/vovakirdan/toxic-turtle/internal/feedback"
	"github.com/vovakirdan/toxic-turtle/internal/levelcache"
	"github.com/vovakirdan/toxic-turtle/internal/metrics"
	"github.com/vovakirdan/toxic-turtle/internal/platform/tui"
)

// newClient creates a backend client sending token.
func newClient(cfg config.Config, token string, logger *log.Logger) (*backend.Client, error) {
	return backend.New(backend.Options{
		BaseURL: cfg.API.URL,
		Token:   token,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
}

// newLevelSource puts the Redis level cache in front of client when
// redis.addr is set. An unreachable cache is skipped with a warning.
func newLevelSource(ctx context.Context, cfg config.Config, client *backend.Client, logger *log.Logger) (tui.LevelSource, func()) {
	if cfg.Redis.Addr == "" {
		return client, func() {}
	}
	cache, err := levelcache.Dial(ctx, client, cfg.Redis.Addr, client.Token(),
		levelcache.WithTTL(cfg.Redis.TTL),
		levelcache.WithLogger(logger),
	)
	if err != nil {
		logger.Warn("level cache disabled", "err", err)
		return client, func() {}
	}
	return cache, func() { cache.Close() }
}

// newPlayer builds the cue player for game.sound. A speaker that cannot be
// opened falls back to the terminal bell.
func newPlayer(cfg config.Config, logger *log.Logger) (feedback.Player, func()) {
	switch cfg.Game.Sound {
	case config.SoundOff:
		return feedback.Nop{}, func() {}
	case config.SoundBell:
		return feedback.NewBell(os.Stdout), func() {}
	}

	sp, err := feedback.NewSpeaker(-1)
	if err != nil {
		logger.Warn("audio unavailable, using terminal bell", "err", err)
		return feedback.NewBell(os.Stdout), func() {}
	}
	return sp, sp.Close
}

// serveMetrics exposes m on addr in the background. It returns nil when
// addr is empty.
func serveMetrics(addr string, m *metrics.Metrics, logger *log.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler(m))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("serving metrics", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "err", err)
		}
	}()
	return srv
}

// metricsHandler exposes m together with the Go runtime and process
// collectors.
func metricsHandler(m *metrics.Metrics) http.Handler {
	if reg := m.Registry(); reg != nil {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m.Handler()
}

// shutdownHTTP stops srv if it is running.
func shutdownHTTP(srv *http.Server) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

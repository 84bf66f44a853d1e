package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/toxic-turtle/internal/config"
	"github.com/vovakirdan/toxic-turtle/internal/devserver"
	"github.com/vovakirdan/toxic-turtle/internal/logging"
	"github.com/vovakirdan/toxic-turtle/internal/metrics"
	"github.com/vovakirdan/toxic-turtle/internal/storage"
)

var (
	flagDevAddr   string
	flagDevDB     string
	flagDevLevels string
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local game backend",
	Long: `Run a local stand-in for the game backend. It serves level data from a
YAML level pack and records passes in SQLite. There is no authentication:
the bearer token is used as the player id.

Endpoints:
  GET  /game/get_level_data?level=N
  POST /game/pass_level            {"level": N}
  GET  /game/current_level
  GET  /game/check_pass_all_level
  GET  /health
  GET  /metrics

Examples:
  turtle devserver
  turtle devserver --addr :9000 --db ./dev.db
  turtle devserver --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runDevserver,
}

func init() {
	devserverCmd.Flags().StringVar(&flagDevAddr, "addr", "", "Listen address (host:port)")
	devserverCmd.Flags().StringVar(&flagDevDB, "db", "", "Path to the progress database (:memory: for none)")
	devserverCmd.Flags().StringVar(&flagDevLevels, "levels", "", "Level pack YAML (built-in pack if empty)")
}

func runDevserver(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagDevAddr != "" {
		cfg.DevServer.Addr = flagDevAddr
	}
	if flagDevDB != "" {
		cfg.DevServer.DB = flagDevDB
	}
	if flagDevLevels != "" {
		cfg.DevServer.Levels = flagDevLevels
	}

	logger := logging.New(os.Stderr, "turtle-dev", cfg.Log.Level)

	pack, err := devserver.LoadPack(config.ExpandPath(cfg.DevServer.Levels))
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(cfg.DevServer.DB)
	if err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              cfg.DevServer.Addr,
		Handler:           devserver.New(pack, store, logger, metrics.New()).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting development backend", "address", cfg.DevServer.Addr, "levels", pack.Total())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	fmt.Printf("Development backend on %s with %d levels\n", cfg.DevServer.Addr, pack.Total())
	fmt.Println("Press Ctrl+C to stop")

	select {
	case <-done:
	case err := <-errCh:
		store.Close()
		fatalf("server: %v", err)
	}

	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

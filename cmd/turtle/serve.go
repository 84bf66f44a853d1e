package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/toxic-turtle/internal/config"
	"github.com/vovakirdan/toxic-turtle/internal/levelcache"
	"github.com/vovakirdan/toxic-turtle/internal/logging"
	"github.com/vovakirdan/toxic-turtle/internal/metrics"
	"github.com/vovakirdan/toxic-turtle/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMetric string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the turtle SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a level select. Requests to
the game backend carry the configured token, or the SSH user name when no
token is configured (the development backend treats it as the player id).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.turtle/host_key

Examples:
  turtle serve                           # Listen on :23235 with auto-generated key
  turtle serve --ssh :2222               # Listen on port 2222
  turtle serve --metrics :9090           # Also expose Prometheus metrics

Users can connect with:
  ssh alice@localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMetric, "metrics", "", "Address for the Prometheus /metrics endpoint")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagServeMetric != "" {
		cfg.Metrics.Addr = flagServeMetric
	}

	logger := logging.New(os.Stderr, "turtle-ssh", cfg.Log.Level)
	m := metrics.New()
	metricsSrv := serveMetrics(cfg.Metrics.Addr, m, logger)
	defer shutdownHTTP(metricsSrv)

	// One Redis connection is shared; each player gets their own key space.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warn("level cache disabled", "addr", cfg.Redis.Addr, "err", err)
			rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	depsFor := func(sess ssh.Session) (tui.Deps, error) {
		token := cfg.API.Token
		if token == "" {
			token = sess.User()
		}
		sessLogger := logger.With("user", sess.User())
		client, err := newClient(cfg, token, sessLogger)
		if err != nil {
			return tui.Deps{}, err
		}

		var levels tui.LevelSource = client
		if rdb != nil {
			levels = levelcache.New(client, rdb, token,
				levelcache.WithTTL(cfg.Redis.TTL),
				levelcache.WithLogger(sessLogger),
			)
		}

		return tui.Deps{
			Levels:     levels,
			Progress:   client,
			Logger:     sessLogger,
			SpritePath: config.ExpandPath(cfg.Game.Sprite),
			Timeout:    cfg.API.Timeout,
		}, nil
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.SSH.Address,
		HostKeyPath: config.ExpandPath(cfg.SSH.HostKey),
		IdleTimeout: cfg.SSH.IdleTimeout,
		Runtime:     cfg.Runtime(),
		Logger:      logger,
		Metrics:     m,
	}, depsFor)
	if err != nil {
		fatalf("creating server: %v", err)
	}

	fmt.Printf("Starting turtle SSH server on %s\n", cfg.SSH.Address)
	fmt.Printf("Game backend: %s\n", cfg.API.URL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatalf("server: %v", err)
	}
}

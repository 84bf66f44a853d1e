package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/toxic-turtle/internal/config"
	"github.com/vovakirdan/toxic-turtle/internal/logging"
	"github.com/vovakirdan/toxic-turtle/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start the game at the level select, or directly at a level.

The program for the level is shown next to the canvas with the current
line highlighted. Press the key for each step:

Controls:
  Space/Down  - Forward
  Left        - Turn left
  Right       - Turn right
  R           - Retry the level
  Esc/B       - Back to the level select
  Q/Ctrl+C    - Quit

Examples:
  turtle play
  turtle play 2
  turtle play --token alice --api http://localhost:8000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	startLevel := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fatalf("level must be a positive number, got %q", args[0])
		}
		startLevel = n
	}

	if cfg.API.Token == "" {
		fmt.Fprintln(os.Stderr, "Warning: no token set; use --token or "+config.EnvToken)
	}

	logger, closer, err := logging.OpenFile(config.ExpandPath(cfg.Log.File), "turtle", cfg.Log.Level)
	if err != nil {
		fatalf("%v", err)
	}
	defer closer.Close()

	client, err := newClient(cfg, cfg.API.Token, logger)
	if err != nil {
		fatalf("%v", err)
	}

	levels, closeLevels := newLevelSource(context.Background(), cfg, client, logger)
	defer closeLevels()

	player, closePlayer := newPlayer(cfg, logger)
	defer closePlayer()

	// Get terminal size
	rc := cfg.Runtime()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	deps := tui.Deps{
		Levels:     levels,
		Progress:   client,
		Player:     player,
		Logger:     logger,
		SpritePath: config.ExpandPath(cfg.Game.Sprite),
		Timeout:    cfg.API.Timeout,
	}

	logger.Info("session started", "api", cfg.API.URL, "lvl", startLevel)
	if err := tui.Run(deps, rc, startLevel); err != nil {
		logger.Error("session failed", "err", err)
		fatalf("%v", err)
	}
}

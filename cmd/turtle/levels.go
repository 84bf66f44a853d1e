package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/toxic-turtle/internal/logging"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show level unlock state",
	Long:  `Shows every level with whether it is passed, open or locked for your token.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := logging.New(cmd.ErrOrStderr(), "turtle", cfg.Log.Level)

	client, err := newClient(cfg, cfg.API.Token, logger)
	if err != nil {
		fatalf("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	progress, err := client.Progress(ctx)
	if err != nil {
		fatalf("%v", err)
	}
	done, err := client.Completion(ctx)
	if err != nil {
		fatalf("%v", err)
	}

	fmt.Printf("Levels for %s (%d/%d passed):\n", progress.UserID, done.LevelsPassed, progress.TotalLevels)
	fmt.Println()
	fmt.Printf("  %-5s  %s\n", "Level", "State")
	fmt.Printf("  %-5s  %s\n", "-----", "-----")

	for level := 1; level <= progress.TotalLevels; level++ {
		state := "locked"
		switch {
		case progress.Passed(level):
			state = "passed"
		case progress.Unlocked(level):
			state = "open"
		}
		fmt.Printf("  %-5d  %s\n", level, state)
	}

	fmt.Println()
	if done.AllPassed {
		fmt.Println("All levels passed!")
		return
	}
	fmt.Println("Run 'turtle play <level>' to play a level.")
}

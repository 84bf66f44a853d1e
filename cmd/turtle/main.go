// turtle is a terminal client for the Toxic Turtle programming game: read a
// small turtle program and drive the turtle through it with the keyboard.
//
// Usage:
//
//	turtle play [level]        - Play, starting at the level select or a level
//	turtle levels              - Show level unlock state
//	turtle render <level>      - Replay keys headlessly and write a PNG
//	turtle serve               - Start SSH server for remote play
//	turtle devserver           - Run a local game backend
//	turtle config              - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.turtle/config.yaml)
//	--api <url>         - Game backend URL
//	--token <token>     - Bearer token for the backend
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/toxic-turtle/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagAPI      string
	flagToken    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "turtle",
	Short: "Toxic Turtle - learn to read code by walking a turtle through it",
	Long: `Toxic Turtle shows a short turtle program and asks you to play it back
with the keyboard: space or down moves forward, left and right turn.
Every correct key draws the path; finish the program to unlock the next level.

Available commands:
  play       - Play from the level select or a given level
  levels     - Show which levels are passed, open or locked
  render     - Replay a key sequence and export the canvas as PNG
  serve      - Start SSH server for remote play
  devserver  - Run a local game backend with the built-in levels
  config     - Print the effective configuration

Examples:
  turtle devserver
  turtle play --token alice
  turtle play 3
  turtle render 4 --keys space,space,left,space,space -o level4.png
  turtle serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Game backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token (overrides config and "+config.EnvToken+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devserverCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config file and applies the global flags.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}
	if flagAPI != "" {
		cfg.API.URL = flagAPI
	}
	if flagToken != "" {
		cfg.API.Token = flagToken
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

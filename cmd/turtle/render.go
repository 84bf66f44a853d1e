package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/toxic-turtle/internal/canvas"
	"github.com/vovakirdan/toxic-turtle/internal/config"
	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/logging"
	"github.com/vovakirdan/toxic-turtle/internal/platform/tui"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

var (
	flagKeys   string
	flagOutput string
	flagShow   bool
)

var renderCmd = &cobra.Command{
	Use:   "render <level>",
	Short: "Replay keys on a level and export the canvas",
	Long: `Fetch a level, feed it a key sequence without a UI and write the
resulting canvas as PNG. Keys are space, down, left or right, separated by
commas. Wrong keys are reported and leave the turtle where it is.

Examples:
  turtle render 1 --keys space -o level1.png
  turtle render 4 --keys space,space,left,space,space --show`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagKeys, "keys", "", "Comma-separated keys to press")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "PNG file to write")
	renderCmd.Flags().BoolVar(&flagShow, "show", false, "Print the canvas to the terminal")
}

func runRender(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := logging.New(cmd.ErrOrStderr(), "turtle", cfg.Log.Level)

	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 {
		fatalf("level must be a positive number, got %q", args[0])
	}

	client, err := newClient(cfg, cfg.API.Token, logger)
	if err != nil {
		fatalf("%v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.Timeout)
	defer cancel()

	levels, closeLevels := newLevelSource(ctx, cfg, client, logger)
	defer closeLevels()

	lvl, err := levels.LevelData(ctx, level)
	if err != nil {
		fatalf("%v", err)
	}

	rc := cfg.Runtime()
	engine := turtle.NewEngine(turtle.ConfigFromRuntime(rc))
	engine.Load(lvl)

	for i, name := range splitKeys(flagKeys) {
		out := engine.Press(core.ParseKey(name))
		switch out.Resolution.Verdict {
		case turtle.VerdictIncorrect:
			expected, _ := engine.Expected()
			fmt.Printf("key %d (%s): wrong, expected %s\n", i+1, name, expected)
		case turtle.VerdictIgnored:
			fmt.Printf("key %d (%s): ignored\n", i+1, name)
		}
	}

	snap := engine.Snapshot()
	fmt.Printf("level %d: %s, step %d/%d, turtle at (%.0f, %.0f) heading %d\n",
		level, snap.Status, snap.Cursor, snap.Total, snap.X, snap.Y, snap.Heading)

	surface := canvas.New(rc.CanvasSize, rc.GridUnit)
	scene := canvas.Scene{Pose: engine.Pose(), Segments: engine.Segments()}
	if sprite, spriteErr := canvas.LoadSprite(ctx, config.ExpandPath(cfg.Game.Sprite)); spriteErr == nil {
		scene.Sprite = sprite
	}
	surface.Draw(scene)

	if flagShow {
		cols, rows := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			cols, rows = w, h-2
		}
		w, h := canvas.FitCells(cols, rows)
		scr := core.NewScreen(w, h)
		canvas.Rasterize(surface.Image(), scr)
		fmt.Println(tui.RenderScreen(scr))
	}

	if flagOutput != "" {
		f, err := os.Create(flagOutput)
		if err != nil {
			fatalf("%v", err)
		}
		if err := canvas.EncodePNG(f, surface.Image()); err != nil {
			f.Close()
			fatalf("%v", err)
		}
		if err := f.Close(); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("wrote %s\n", flagOutput)
	}
}

// splitKeys parses the --keys list. "space" may also be written as a
// literal blank entry.
func splitKeys(list string) []string {
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		if strings.TrimSpace(p) == "" {
			parts[i] = "space"
			continue
		}
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

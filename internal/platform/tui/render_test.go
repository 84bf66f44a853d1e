package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

func TestRenderScreenKeepsRunes(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.Set(0, 0, core.Cell{Rune: 'a', FG: core.ColorPath, BG: core.ColorBackground})
	s.Set(1, 0, core.Cell{Rune: 'b', FG: core.ColorPath, BG: core.ColorBackground})
	s.Set(3, 1, core.Cell{Rune: 'z', FG: core.ColorHead, BG: core.ColorGrid})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") {
		t.Errorf("first row %q does not keep the run together", lines[0])
	}
	if !strings.Contains(lines[1], "z") {
		t.Errorf("second row %q missing cell", lines[1])
	}
}

func TestRenderCodeMarksHighlight(t *testing.T) {
	out := renderCode([]string{"forward 10", "turnleft 90"}, 1)
	lines := strings.Split(out, "\n")

	var marked []string
	for _, l := range lines {
		if strings.Contains(l, highlightMarker) {
			marked = append(marked, l)
		}
	}
	if len(marked) != 1 || !strings.Contains(marked[0], "turnleft 90") {
		t.Errorf("marked lines = %q, expected only turnleft", marked)
	}

	if out := renderCode([]string{"forward 10"}, turtle.NoHighlight); strings.Contains(out, highlightMarker) {
		t.Error("no-highlight still marked a line")
	}
	if out := renderCode(nil, 0); !strings.Contains(out, "no code") {
		t.Error("empty source not labelled")
	}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	keys := map[string]core.Key{
		"space": core.KeySpace,
		"left":  core.KeyLeft,
		"right": core.KeyRight,
		"down":  core.KeyDown,
		"up":    core.KeyOther,
		"x":     core.KeyOther,
	}
	for name, want := range keys {
		if got := km.GameKey(keyMsg(name)); got != want {
			t.Errorf("GameKey(%s) = %v, expected %v", name, got, want)
		}
	}

	actions := map[string]MenuAction{
		"q":     MenuActionQuit,
		"k":     MenuActionUp,
		"j":     MenuActionDown,
		"enter": MenuActionSelect,
		"esc":   MenuActionBack,
		"r":     MenuActionRetry,
		"x":     MenuActionNone,
	}
	for name, want := range actions {
		if got := km.MapKeyToMenuAction(keyMsg(name)); got != want {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", name, got, want)
		}
	}
}

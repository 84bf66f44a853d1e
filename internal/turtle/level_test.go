package turtle

import (
	"errors"
	"testing"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

func TestLevelValidate(t *testing.T) {
	fwd := []core.Action{core.ActionForward}

	tests := []struct {
		name    string
		level   Level
		wantErr bool
	}{
		{"valid", scenarioLevel(), false},
		{"empty", Level{Number: 1}, false},
		{"no highlight entry", Level{Number: 1, Movements: fwd, CursorMap: []int{NoHighlight}}, false},
		{"zero number", Level{Number: 0, Movements: fwd, CursorMap: []int{NoHighlight}}, true},
		{"length mismatch", Level{Number: 1, Source: []string{"a"}, Movements: fwd, CursorMap: []int{0, 0}}, true},
		{"cursor out of range", Level{Number: 1, Source: []string{"a"}, Movements: fwd, CursorMap: []int{1}}, true},
		{"bad movement", Level{Number: 1, Source: []string{"a"}, Movements: []core.Action{core.ActionNone}, CursorMap: []int{0}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.level.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v should wrap ErrInvalidLevel", err)
			}
		})
	}
}

func TestLevelHighlight(t *testing.T) {
	lvl := Level{
		Number:    4,
		Source:    []string{"forward 20", "turnleft 90", "forward 20"},
		Movements: []core.Action{core.ActionForward, core.ActionForward, core.ActionTurnLeft, core.ActionForward, core.ActionForward},
		CursorMap: []int{0, 0, 1, 2, 2},
	}

	tests := []struct {
		cursor, expected int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 2}, // completed keeps the last highlight
		{-1, NoHighlight},
	}

	for _, tc := range tests {
		if got := lvl.Highlight(tc.cursor); got != tc.expected {
			t.Errorf("Highlight(%d) = %d, expected %d", tc.cursor, got, tc.expected)
		}
	}
}

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name     string
		key      core.Key
		expected core.Action
		pending  bool
		verdict  Verdict
		recog    bool
	}{
		{"space matches forward", core.KeySpace, core.ActionForward, true, VerdictCorrect, true},
		{"down matches forward", core.KeyDown, core.ActionForward, true, VerdictCorrect, true},
		{"left matches left", core.KeyLeft, core.ActionTurnLeft, true, VerdictCorrect, true},
		{"right vs forward", core.KeyRight, core.ActionForward, true, VerdictIncorrect, true},
		{"space vs left", core.KeySpace, core.ActionTurnLeft, true, VerdictIncorrect, true},
		{"other key", core.KeyOther, core.ActionForward, true, VerdictIgnored, false},
		{"nothing pending", core.KeySpace, core.ActionNone, false, VerdictIgnored, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve(tc.key, tc.expected, tc.pending)
			if res.Verdict != tc.verdict {
				t.Errorf("verdict = %v, expected %v", res.Verdict, tc.verdict)
			}
			if res.Recognized != tc.recog {
				t.Errorf("recognized = %v, expected %v", res.Recognized, tc.recog)
			}
		})
	}
}

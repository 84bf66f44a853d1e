package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/toxic-turtle/internal/backend"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

func stepSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, expected SessionModel", next)
	}
	return s, cmd
}

func TestSessionFlow(t *testing.T) {
	deps, _, prog, rec := testDeps()
	prog.progress = backend.Progress{TotalLevels: 2}
	m := NewSessionModel(deps, testConfig(), 0)

	if m.InGame() {
		t.Fatal("session should start in the level select")
	}

	// Gameplay keys go nowhere while the level select is mounted.
	m, _ = stepSession(t, m, m.menu.fetchProgress()())
	m, _ = stepSession(t, m, keyMsg("left"))
	if len(rec.Cues()) != 0 {
		t.Error("level select produced gameplay feedback")
	}

	m, _ = stepSession(t, m, keyMsg("enter"))
	if !m.InGame() || m.game.Level() != 1 {
		t.Fatal("selecting level 1 did not mount it")
	}

	m, _ = stepSession(t, m, m.game.fetchLevel()())
	var completion tea.Cmd
	for _, k := range []string{"space", "right", "space"} {
		var cmd tea.Cmd
		m, cmd = stepSession(t, m, keyMsg(k))
		if cmd != nil {
			completion = cmd
		}
	}
	if got := m.game.Snapshot().Status; got != turtle.StatusCompleted {
		t.Fatalf("status = %v, expected completed", got)
	}

	for _, msg := range collect(completion) {
		m, _ = stepSession(t, m, msg)
	}
	if m.InGame() {
		t.Error("session did not return to the level select")
	}
	if got := prog.Passes(); len(got) != 1 || got[0] != 1 {
		t.Errorf("passes = %v, expected [1]", got)
	}

	// Keys after unmount never reach the old gameplay view.
	before := len(rec.Cues())
	m, _ = stepSession(t, m, keyMsg("space"))
	if len(rec.Cues()) != before {
		t.Error("gameplay view still received keys after unmount")
	}
}

func TestSessionStartLevel(t *testing.T) {
	deps, _, _, _ := testDeps()
	m := NewSessionModel(deps, testConfig(), 2)
	if !m.InGame() || m.game.Level() != 2 {
		t.Fatal("start level not mounted")
	}
	if m.Init() == nil {
		t.Error("Init returned no command")
	}

	m, _ = stepSession(t, m, keyMsg("esc"))
	if m.InGame() {
		t.Error("esc did not leave the level")
	}
}

func TestSessionQuit(t *testing.T) {
	deps, _, _, _ := testDeps()
	m := NewSessionModel(deps, testConfig(), 1)
	m, cmd := stepSession(t, m, keyMsg("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q did not quit the session")
	}
}

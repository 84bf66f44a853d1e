package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/toxic-turtle/internal/backend"
	"github.com/vovakirdan/toxic-turtle/internal/core"
)

func stepMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MenuModel", next)
	}
	return mm, cmd
}

// loadedMenu returns a level select with progress already delivered.
func loadedMenu(t *testing.T, p backend.Progress) MenuModel {
	t.Helper()
	deps, _, prog, _ := testDeps()
	prog.progress = p
	m := NewMenuModel(deps, core.DefaultConfig())
	m, _ = stepMenu(t, m, m.fetchProgress()())
	return m
}

func TestMenuLevelStates(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		expected []LevelState
	}{
		{"fresh player", 0, []LevelState{LevelUnlocked, LevelLocked, LevelLocked, LevelLocked}},
		{"two passed", 2, []LevelState{LevelPassed, LevelPassed, LevelUnlocked, LevelLocked}},
		{"all passed", 4, []LevelState{LevelPassed, LevelPassed, LevelPassed, LevelPassed}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := loadedMenu(t, backend.Progress{CurrentLevel: tc.current, TotalLevels: 4})
			for i, want := range tc.expected {
				if got := m.State(i + 1); got != want {
					t.Errorf("State(%d) = %v, expected %v", i+1, got, want)
				}
			}
		})
	}
}

func TestMenuCursorStartsAtNextLevel(t *testing.T) {
	m := loadedMenu(t, backend.Progress{CurrentLevel: 2, TotalLevels: 4})
	m, _ = stepMenu(t, m, keyMsg("enter"))
	if got := m.Selected(); got != 3 {
		t.Errorf("Selected() = %d, expected 3", got)
	}

	m = loadedMenu(t, backend.Progress{CurrentLevel: 4, TotalLevels: 4})
	m, _ = stepMenu(t, m, keyMsg("enter"))
	if got := m.Selected(); got != 4 {
		t.Errorf("Selected() = %d with everything passed, expected 4", got)
	}
}

func TestMenuRefusesLockedLevel(t *testing.T) {
	m := loadedMenu(t, backend.Progress{TotalLevels: 3})

	m, _ = stepMenu(t, m, keyMsg("down"))
	m, _ = stepMenu(t, m, keyMsg("enter"))
	if got := m.Selected(); got != 0 {
		t.Errorf("locked level selected: %d", got)
	}
	if !strings.Contains(m.View(), "Level 2 is locked") {
		t.Error("locked notice not shown")
	}

	m, _ = stepMenu(t, m, keyMsg("up"))
	m, _ = stepMenu(t, m, keyMsg("up"))
	m, _ = stepMenu(t, m, keyMsg("enter"))
	if got := m.Selected(); got != 1 {
		t.Errorf("Selected() = %d, expected 1", got)
	}
}

func TestMenuIgnoresStaleProgress(t *testing.T) {
	deps, _, prog, _ := testDeps()
	prog.progress = backend.Progress{CurrentLevel: 1, TotalLevels: 2}
	m := NewMenuModel(deps, core.DefaultConfig())
	stale := m.fetchProgress()

	next, _ := m.refresh()
	m = next.(MenuModel)
	m, _ = stepMenu(t, m, stale())
	if !m.loading {
		t.Error("stale progress ended loading")
	}
	m, _ = stepMenu(t, m, m.fetchProgress()())
	if m.loading || m.State(2) != LevelUnlocked {
		t.Error("current progress not applied")
	}
}

func TestMenuAllPassedBanner(t *testing.T) {
	deps, _, _, _ := testDeps()
	m := NewMenuModel(deps, core.DefaultConfig())
	m, _ = stepMenu(t, m, progressLoadedMsg{
		req:        m.req,
		progress:   backend.Progress{CurrentLevel: 2, TotalLevels: 2},
		completion: backend.Completion{AllPassed: true, LevelsPassed: 2, TotalLevels: 2},
	})
	if !strings.Contains(m.View(), "All levels passed") {
		t.Errorf("banner missing:\n%s", m.View())
	}
}

func TestMenuErrorAndRetry(t *testing.T) {
	deps, _, _, _ := testDeps()
	m := NewMenuModel(deps, core.DefaultConfig())
	m, _ = stepMenu(t, m, progressLoadedMsg{req: m.req, err: backend.ErrUnauthorized})

	if !strings.Contains(m.View(), "Could not reach the game server") {
		t.Error("error view not shown")
	}
	m, _ = stepMenu(t, m, keyMsg("enter"))
	if m.Selected() != 0 {
		t.Error("selection allowed in error state")
	}

	m, cmd := stepMenu(t, m, keyMsg("r"))
	if cmd == nil || !m.loading {
		t.Error("retry did not refetch")
	}
}

func TestMenuQuit(t *testing.T) {
	m := loadedMenu(t, backend.Progress{TotalLevels: 2})
	m, cmd := stepMenu(t, m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("abcdef", 4); got != "abcdef" {
		t.Errorf("centerText overflow = %q", got)
	}
}

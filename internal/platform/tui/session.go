package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// SessionModel manages the full session flow: level select -> level -> level select.
// Key messages only ever reach the view that is mounted, so the gameplay
// view owns the keyboard exactly while it is on screen.
type SessionModel struct {
	deps     Deps
	config   core.RuntimeConfig
	menu     MenuModel
	game     *GameModel
	inGame   bool
	quitting bool
}

// NewSessionModel creates a new session model. startLevel > 0 mounts that
// level first.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig, startLevel int) SessionModel {
	deps = deps.withDefaults()
	m := SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps, cfg),
	}
	if startLevel > 0 {
		game := NewGameModel(deps, cfg, startLevel)
		m.game = &game
		m.inGame = true
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.inGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	// Pass results only matter to the level select; a mounting menu fetches
	// fresh progress anyway.
	if _, ok := msg.(progressRecordedMsg); ok && m.inGame {
		return m, nil
	}

	if m.inGame && m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when the level select is mounted.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if level := m.menu.Selected(); level > 0 {
		m.config = m.menu.Config()
		game := NewGameModel(m.deps, m.config, level)
		m.game = &game
		m.inGame = true
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when a level is mounted.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.inGame = false
		m.game = nil
		m.menu = NewMenuModel(m.deps, m.config)
		return m, tea.Batch(cmd, m.menu.Init())
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inGame && m.game != nil {
		return m.game.View()
	}

	return m.menu.View()
}

// InGame reports whether a level is mounted.
func (m SessionModel) InGame() bool {
	return m.inGame
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/toxic-turtle/internal/backend"
	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// LevelState is how a level appears in the level select.
type LevelState int

const (
	LevelLocked LevelState = iota
	LevelUnlocked
	LevelPassed
)

// String returns the label shown next to the level.
func (s LevelState) String() string {
	switch s {
	case LevelPassed:
		return "passed"
	case LevelUnlocked:
		return "open"
	default:
		return "locked"
	}
}

// progressLoadedMsg carries the unlock state fetched for the level select.
type progressLoadedMsg struct {
	req        uint64
	progress   backend.Progress
	completion backend.Completion
	err        error
}

// MenuModel is the Bubble Tea model for the level select.
type MenuModel struct {
	deps       Deps
	config     core.RuntimeConfig
	req        uint64
	loading    bool
	err        error
	progress   backend.Progress
	completion backend.Completion
	cursor     int
	notice     string
	spinner    spinner.Model
	help       help.Model
	keyMapper  *KeyMapper
	quitting   bool
	selected   int // Set when user picks an unlocked level
}

// NewMenuModel creates a new level select model.
func NewMenuModel(deps Deps, cfg core.RuntimeConfig) MenuModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return MenuModel{
		deps:      deps.withDefaults(),
		config:    cfg,
		req:       nextRequest(),
		loading:   true,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      h,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the progress fetch.
func (m MenuModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchProgress())
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case progressLoadedMsg:
		if msg.req != m.req {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.deps.Logger.Warn("could not load progress", "err", msg.err)
			return m, nil
		}
		m.progress = msg.progress
		m.completion = msg.completion
		m.cursor = core.Clamp(m.defaultCursor(), 0, max(m.total()-1, 0))
		return m, nil

	case progressRecordedMsg:
		// A pass landed after the view was mounted; the unlock state is stale.
		if msg.err == nil {
			return m.refresh()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionRetry:
		return m.refresh()
	}

	if m.loading || m.err != nil {
		return m, nil
	}

	switch action {
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""

	case MenuActionDown:
		if m.cursor < m.total()-1 {
			m.cursor++
		}
		m.notice = ""

	case MenuActionSelect:
		level := m.cursor + 1
		if m.State(level) == LevelLocked {
			m.notice = fmt.Sprintf("Level %d is locked. Pass level %d first.", level, level-1)
			return m, nil
		}
		m.selected = level
	}

	return m, nil
}

// refresh reloads the unlock state.
func (m MenuModel) refresh() (tea.Model, tea.Cmd) {
	m.req = nextRequest()
	m.loading = true
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, m.fetchProgress())
}

// fetchProgress loads the unlock state and the completion summary.
func (m MenuModel) fetchProgress() tea.Cmd {
	svc, timeout, req := m.deps.Progress, m.deps.Timeout, m.req
	return func() tea.Msg {
		if svc == nil {
			return progressLoadedMsg{req: req, err: errors.New("no backend configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		p, err := svc.Progress(ctx)
		if err != nil {
			return progressLoadedMsg{req: req, err: err}
		}
		c, err := svc.Completion(ctx)
		if err != nil {
			return progressLoadedMsg{req: req, err: err}
		}
		return progressLoadedMsg{req: req, progress: p, completion: c}
	}
}

// defaultCursor points at the first level not yet passed.
func (m MenuModel) defaultCursor() int {
	return m.progress.CurrentLevel
}

func (m MenuModel) total() int {
	return m.progress.TotalLevels
}

// State returns how level is shown.
func (m MenuModel) State(level int) LevelState {
	switch {
	case m.progress.Passed(level):
		return LevelPassed
	case m.progress.Unlocked(level):
		return LevelUnlocked
	}
	return LevelLocked
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T O X I C   T U R T L E"), m.config.ScreenW))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(centerText(m.spinner.View()+" Loading progress...", m.config.ScreenW))
		b.WriteString("\n")
		return b.String()

	case m.err != nil:
		b.WriteString(centerText(errorStyle.Render("Could not reach the game server"), m.config.ScreenW))
		b.WriteString("\n")
		b.WriteString(centerText(m.err.Error(), m.config.ScreenW))
		b.WriteString("\n\n")
		b.WriteString(centerText(dimStyle.Render("r: retry  •  q: quit"), m.config.ScreenW))
		b.WriteString("\n")
		return b.String()
	}

	if m.completion.AllPassed {
		b.WriteString(centerText(successStyle.Render("★ All levels passed! ★"), m.config.ScreenW))
	} else {
		b.WriteString(centerText(fmt.Sprintf("Select a level  (%d/%d passed)",
			m.completion.LevelsPassed, m.total()), m.config.ScreenW))
	}
	b.WriteString("\n\n")

	for level := 1; level <= m.total(); level++ {
		cursor := "  "
		if level-1 == m.cursor {
			cursor = "> "
		}

		state := m.State(level)
		mark := " "
		switch state {
		case LevelPassed:
			mark = "✓"
		case LevelLocked:
			mark = "·"
		}

		line := fmt.Sprintf("%s%s Level %-3d %-6s", cursor, mark, level, state)
		if state == LevelLocked {
			line = dimStyle.Render(line)
		}
		b.WriteString(centerText(line, m.config.ScreenW))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(errorStyle.Render(m.notice), m.config.ScreenW))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.help.View(menuHelp{km: m.keyMapper}), m.config.ScreenW))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked level, or 0 if none.
func (m MenuModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

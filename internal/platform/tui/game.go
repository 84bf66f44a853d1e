package tui

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/toxic-turtle/internal/canvas"
	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/feedback"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

// levelLoadedMsg carries the result of a level fetch. req ties it to the
// request that started it.
type levelLoadedMsg struct {
	req   uint64
	level int
	data  turtle.Level
	err   error
	took  time.Duration
}

// spriteLoadedMsg carries the decoded turtle image, or the reason there is none.
type spriteLoadedMsg struct {
	mount uint64
	img   image.Image
	err   error
}

// progressRecordedMsg reports the outcome of a pass notification.
type progressRecordedMsg struct {
	level int
	err   error
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorHead.Hex()))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorShell.Hex()))
)

// canvasView caches the terminal rendering of a surface between frames.
type canvasView struct {
	surface  *canvas.Surface
	screen   *core.Screen
	rendered string
}

func newCanvasView(cfg core.RuntimeConfig) *canvasView {
	return &canvasView{
		surface: canvas.New(cfg.CanvasSize, cfg.GridUnit),
		screen:  core.NewScreen(0, 0),
	}
}

// frame renders sc into at most cols×rows cells.
func (c *canvasView) frame(sc canvas.Scene, cols, rows int) string {
	w, h := canvas.FitCells(cols, rows)
	if w == 0 {
		return ""
	}
	drawn := c.surface.Draw(sc)
	if !drawn && c.rendered != "" && c.screen.Width() == w && c.screen.Height() == h {
		return c.rendered
	}
	c.screen.Resize(w, h)
	canvas.Rasterize(c.surface.Image(), c.screen)
	c.rendered = RenderScreen(c.screen)
	return c.rendered
}

// GameModel is the gameplay view for one level. It owns the progression
// engine; every mutation happens inside Update.
type GameModel struct {
	deps      Deps
	config    core.RuntimeConfig
	level     int
	mount     uint64
	req       uint64
	engine    *turtle.Engine
	canvas    *canvasView
	sprite    image.Image
	loadErr   error
	verdict   turtle.Verdict
	spinner   spinner.Model
	help      help.Model
	keyMapper *KeyMapper

	quitting   bool
	backToMenu bool
}

// NewGameModel creates the gameplay view for level.
func NewGameModel(deps Deps, cfg core.RuntimeConfig, level int) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		deps:      deps.withDefaults(),
		config:    cfg,
		level:     level,
		mount:     nextRequest(),
		req:       nextRequest(),
		engine:    turtle.NewEngine(turtle.ConfigFromRuntime(cfg)),
		canvas:    newCanvasView(cfg),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:      h,
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the level fetch, the spinner and the sprite load.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchLevel(), m.loadSprite())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case levelLoadedMsg:
		return m.handleLoaded(msg)

	case spriteLoadedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Logger.Debug("using fallback turtle", "err", msg.err)
			return m, nil
		}
		m.sprite = msg.img
		return m, nil

	case leaveMsg:
		if msg.req == m.req && m.engine.Completed() {
			m.backToMenu = true
		}
		return m, nil

	case spinner.TickMsg:
		if m.engine.Status() != turtle.StatusLoading || m.loadErr != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMapper.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keyMapper.Back):
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keyMapper.Retry):
		return m.retry()
	}

	if m.loadErr != nil {
		return m, nil
	}

	out := m.engine.Press(m.keyMapper.GameKey(msg))
	if out.Resolution.Verdict == turtle.VerdictIgnored {
		return m, nil
	}

	m.verdict = out.Resolution.Verdict
	m.deps.Metrics.KeyPress(m.verdict.String())
	if m.verdict == turtle.VerdictIncorrect {
		m.deps.Player.Play(feedback.CueError)
		return m, nil
	}

	m.deps.Player.Play(feedback.CueStep)
	if out.Completed {
		return m, m.complete()
	}
	return m, nil
}

// retry discards the attempt and fetches the level again.
func (m GameModel) retry() (tea.Model, tea.Cmd) {
	m.req = nextRequest()
	m.engine.Reset()
	m.canvas.surface.Invalidate()
	m.loadErr = nil
	m.verdict = turtle.VerdictIgnored
	return m, tea.Batch(m.spinner.Tick, m.fetchLevel())
}

// handleLoaded installs a fetched level unless a newer request superseded it.
func (m GameModel) handleLoaded(msg levelLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.req != m.req || msg.level != m.level {
		m.deps.Logger.Debug("discarding stale level", "lvl", msg.level, "current", m.level)
		return m, nil
	}
	m.deps.Metrics.ObserveFetch(msg.took)

	err := msg.err
	if err == nil {
		err = msg.data.Validate()
	}
	if err != nil {
		m.loadErr = err
		m.deps.Metrics.LoadFailed()
		m.deps.Logger.Warn("level load failed", "lvl", m.level, "err", err)
		return m, nil
	}

	m.deps.Logger.Debug("level loaded", "lvl", m.level, "moves", msg.data.Len())
	m.canvas.surface.Invalidate()
	if m.engine.Load(msg.data) {
		return m, m.complete()
	}
	return m, nil
}

// complete fires the completion effects. The engine reports the transition
// into StatusCompleted once per attempt, so this runs once per attempt.
func (m GameModel) complete() tea.Cmd {
	m.deps.Player.Play(feedback.CueComplete)
	m.deps.Metrics.LevelCompleted(strconv.Itoa(m.level))
	m.deps.Logger.Info("level completed", "lvl", m.level)
	return tea.Batch(m.recordPass(), leaveAfter(m.config.CompletionDelay, m.req))
}

// fetchLevel returns the command that loads the current level.
func (m GameModel) fetchLevel() tea.Cmd {
	src, timeout := m.deps.Levels, m.deps.Timeout
	req, level := m.req, m.level
	return func() tea.Msg {
		if src == nil {
			return levelLoadedMsg{req: req, level: level, err: fmt.Errorf("no level source configured")}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		data, err := src.LevelData(ctx, level)
		if err == nil && data.Number == 0 {
			data.Number = level
		}
		return levelLoadedMsg{req: req, level: level, data: data, err: err, took: time.Since(start)}
	}
}

// recordPass notifies the backend. Failures are logged and counted; they
// never hold up the player.
func (m GameModel) recordPass() tea.Cmd {
	svc := m.deps.Progress
	if svc == nil {
		return nil
	}
	logger, mtr, timeout, level := m.deps.Logger, m.deps.Metrics, m.deps.Timeout, m.level
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := svc.PassLevel(ctx, level)
		if err != nil {
			mtr.RecordFailed()
			logger.Error("could not record pass", "lvl", level, "err", err)
		}
		return progressRecordedMsg{level: level, err: err}
	}
}

// loadSprite decodes the configured turtle image off the event loop.
func (m GameModel) loadSprite() tea.Cmd {
	path, mount := m.deps.SpritePath, m.mount
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		img, err := canvas.LoadSprite(context.Background(), path)
		return spriteLoadedMsg{mount: mount, img: img, err: err}
	}
}

// View renders the gameplay view.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Level %d", m.level)))

	switch {
	case m.loadErr != nil:
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not load level %d", m.level)))
		b.WriteString("\n")
		b.WriteString(m.loadErr.Error())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("r: retry  •  esc: back to levels  •  q: quit"))
		return b.String()

	case m.engine.Status() == turtle.StatusLoading:
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s Loading level %d...", m.spinner.View(), m.level))
		return b.String()
	}

	snap := m.engine.Snapshot()
	b.WriteString(dimStyle.Render(fmt.Sprintf("  step %d/%d", snap.Cursor, snap.Total)))
	b.WriteString("\n\n")

	code := renderCode(m.engine.Level().Source, m.engine.Highlight())
	cols := m.config.ScreenW - lipgloss.Width(code) - 2
	rows := m.config.ScreenH - 6
	scene := canvas.Scene{Pose: m.engine.Pose(), Segments: m.engine.Segments(), Sprite: m.sprite}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.frame(scene, cols, rows), "  ", code))

	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(gameHelp{km: m.keyMapper}))
	return b.String()
}

func (m GameModel) statusLine() string {
	switch {
	case m.engine.Completed():
		return successStyle.Render("★ Level complete! Returning to levels...")
	case m.verdict == turtle.VerdictIncorrect:
		return errorStyle.Render("✗ Not that key. Read the highlighted line.")
	}
	return dimStyle.Render("Follow the program with the arrow keys and space.")
}

// Level returns the level this view plays.
func (m GameModel) Level() int {
	return m.level
}

// Snapshot returns the engine state.
func (m GameModel) Snapshot() turtle.Snapshot {
	return m.engine.Snapshot()
}

// Err returns the load error, if any.
func (m GameModel) Err() error {
	return m.loadErr
}

// BackToMenu returns true if the view should hand back to the level select.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

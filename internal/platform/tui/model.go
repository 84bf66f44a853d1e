package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/toxic-turtle/internal/backend"
	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/feedback"
	"github.com/vovakirdan/toxic-turtle/internal/metrics"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

// LevelSource fetches level definitions. Both *backend.Client and
// *levelcache.Cache implement it.
type LevelSource interface {
	LevelData(ctx context.Context, level int) (turtle.Level, error)
}

// ProgressService records passes and reports unlock state.
type ProgressService interface {
	PassLevel(ctx context.Context, level int) error
	Progress(ctx context.Context) (backend.Progress, error)
	Completion(ctx context.Context) (backend.Completion, error)
}

// Deps are the collaborators shared by the views of one session.
type Deps struct {
	Levels     LevelSource
	Progress   ProgressService
	Player     feedback.Player
	Metrics    *metrics.Metrics // may be nil
	Logger     *log.Logger
	SpritePath string        // empty draws the fallback turtle
	Timeout    time.Duration // per backend call
}

// withDefaults fills optional collaborators.
func (d Deps) withDefaults() Deps {
	if d.Player == nil {
		d.Player = feedback.Nop{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Timeout <= 0 {
		d.Timeout = backend.DefaultTimeout
	}
	return d
}

// Run starts a local session and blocks until the player quits.
// startLevel > 0 opens that level directly instead of the level select.
func Run(deps Deps, cfg core.RuntimeConfig, startLevel int) error {
	model := NewSessionModel(deps, cfg, startLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

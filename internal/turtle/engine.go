package turtle

import (
	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// Status is the progression state of a level attempt.
type Status int

const (
	StatusLoading Status = iota
	StatusActive
	StatusCompleted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	default:
		return "loading"
	}
}

// Config holds the geometry an engine starts each attempt with.
type Config struct {
	Origin core.Pose // Initial pose, normally the canvas centre facing up
	Unit   float64   // Distance of one forward move
}

// ConfigFromRuntime derives the engine geometry from the runtime config.
func ConfigFromRuntime(rc core.RuntimeConfig) Config {
	return Config{Origin: rc.Origin(), Unit: rc.GridUnit}
}

// Outcome describes what a key press did.
type Outcome struct {
	Resolution Resolution
	Applied    bool // The action advanced the cursor
	Completed  bool // This press moved the attempt into StatusCompleted
}

// Engine owns one level attempt: the trace cursor, the turtle pose and the
// drawn segments. It is not safe for concurrent use; callers serialize
// access on their event loop.
type Engine struct {
	cfg      Config
	level    Level
	status   Status
	cursor   int
	pose     core.Pose
	segments []core.Segment
}

// NewEngine creates an engine in StatusLoading.
func NewEngine(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.Reset()
	return e
}

// Reset discards the current attempt and returns to StatusLoading.
func (e *Engine) Reset() {
	e.level = Level{}
	e.status = StatusLoading
	e.cursor = 0
	e.pose = e.cfg.Origin
	e.segments = nil
}

// Load starts a fresh attempt of level. It reports true when the level has
// no movements and is therefore complete immediately.
func (e *Engine) Load(level Level) bool {
	e.Reset()
	e.level = level
	e.status = StatusActive
	if level.Len() == 0 {
		e.status = StatusCompleted
		return true
	}
	return false
}

// Expected returns the pending expected action, or false when nothing is pending.
func (e *Engine) Expected() (core.Action, bool) {
	if e.status != StatusActive || e.cursor >= e.level.Len() {
		return core.ActionNone, false
	}
	return e.level.Movements[e.cursor], true
}

// Press resolves a key against the pending action and applies it if correct.
func (e *Engine) Press(key core.Key) Outcome {
	expected, pending := e.Expected()
	res := Resolve(key, expected, pending)
	out := Outcome{Resolution: res}
	if res.Verdict != VerdictCorrect {
		return out
	}
	out.Applied, out.Completed = e.Apply(res.Action)
	return out
}

// Apply performs one transition. It is a no-op returning false unless the
// engine is active and action equals the pending movement. completed is true
// only on the step that exhausts the trace.
func (e *Engine) Apply(action core.Action) (applied, completed bool) {
	expected, pending := e.Expected()
	if !pending || action != expected {
		return false, false
	}

	switch action {
	case core.ActionForward:
		next := e.pose.Forward(e.cfg.Unit)
		e.segments = append(e.segments, core.SegmentBetween(e.pose, next))
		e.pose = next
	case core.ActionTurnLeft, core.ActionTurnRight:
		e.pose = e.pose.Turn(action.TurnDegrees())
	}

	e.cursor++
	if e.cursor == e.level.Len() {
		e.status = StatusCompleted
		return true, true
	}
	return true, false
}

// Status returns the current progression state.
func (e *Engine) Status() Status {
	return e.status
}

// Level returns the level being played.
func (e *Engine) Level() Level {
	return e.level
}

// Cursor returns the index of the next expected movement.
func (e *Engine) Cursor() int {
	return e.cursor
}

// Completed reports whether the trace has been exhausted.
func (e *Engine) Completed() bool {
	return e.status == StatusCompleted
}

// Pose returns the current turtle pose.
func (e *Engine) Pose() core.Pose {
	return e.pose
}

// Segments returns the drawn path, oldest first. The slice is shared and
// must not be modified.
func (e *Engine) Segments() []core.Segment {
	return e.segments
}

// Highlight returns the source line to highlight for the current cursor.
func (e *Engine) Highlight() int {
	return e.level.Highlight(e.cursor)
}

// Package turtle implements the level progression state machine: key
// resolution, pose tracking, segment accumulation and the code highlight
// mapping. It has no UI or network dependencies.
package turtle

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// NoHighlight marks a trace position that highlights no source line.
const NoHighlight = -1

// ErrInvalidLevel is returned by Validate for malformed level data.
var ErrInvalidLevel = errors.New("invalid level")

// Level is the read-only level definition supplied by the backend.
type Level struct {
	Number    int           // 1-based level identifier
	Source    []string      // Displayed program text, one entry per line
	Movements []core.Action // Expected input actions in order
	CursorMap []int         // Source line to highlight for each trace position
}

// Len returns the number of movements in the trace.
func (l Level) Len() int {
	return len(l.Movements)
}

// Validate checks the structural invariants of a level.
func (l Level) Validate() error {
	if l.Number < 1 {
		return fmt.Errorf("%w: level number %d", ErrInvalidLevel, l.Number)
	}
	if len(l.Movements) != len(l.CursorMap) {
		return fmt.Errorf("%w: %d movements but %d cursor entries",
			ErrInvalidLevel, len(l.Movements), len(l.CursorMap))
	}
	for i, m := range l.Movements {
		if m == core.ActionNone || m > core.ActionTurnRight {
			return fmt.Errorf("%w: movement %d is %v", ErrInvalidLevel, i, m)
		}
	}
	for i, line := range l.CursorMap {
		if line == NoHighlight {
			continue
		}
		if line < 0 || line >= len(l.Source) {
			return fmt.Errorf("%w: cursor %d points at line %d of %d",
				ErrInvalidLevel, i, line, len(l.Source))
		}
	}
	return nil
}

// Highlight returns the source line to highlight when the trace cursor is at
// cursor. Past the end of the trace the last entry is retained; an empty
// level highlights nothing.
func (l Level) Highlight(cursor int) int {
	n := len(l.CursorMap)
	if n == 0 || cursor < 0 {
		return NoHighlight
	}
	if cursor >= n {
		cursor = n - 1
	}
	return l.CursorMap[cursor]
}

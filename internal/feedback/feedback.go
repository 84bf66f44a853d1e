// Package feedback plays the short audio cues that accompany key presses
// and level completion.
package feedback

import (
	"io"
	"sync"
)

// Cue identifies a feedback sound.
type Cue int

const (
	CueStep     Cue = iota // Correct key
	CueError               // Incorrect key
	CueComplete            // Level finished
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueStep:
		return "step"
	case CueError:
		return "error"
	case CueComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Player plays cues. Play must not block the caller for the duration of
// the sound.
type Player interface {
	Play(Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// Bell rings the terminal bell. It is used for remote sessions where the
// server's audio device is not the player's.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player. Only errors and completions ring; a bell on
// every correct step is noise.
func (b *Bell) Play(c Cue) {
	if c == CueStep {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

// Recorder remembers cues in order. Tests use it to assert feedback.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play implements Player.
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

// Cues returns a copy of the recorded cues.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

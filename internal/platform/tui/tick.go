// Package tui provides the Bubble Tea integration for the turtle game.
// It handles the terminal UI loop, input mapping, and view orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// requestSeq numbers level requests across every gameplay view, so a result
// can only ever be accepted by the request that issued it.
var requestSeq atomic.Uint64

func nextRequest() uint64 {
	return requestSeq.Add(1)
}

// leaveMsg hands control back to the level select once the completion
// banner has been shown.
type leaveMsg struct {
	req uint64
}

// leaveAfter returns a command that sends leaveMsg after delay.
func leaveAfter(delay time.Duration, req uint64) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return leaveMsg{req: req}
	})
}

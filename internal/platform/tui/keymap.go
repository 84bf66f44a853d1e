package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game keys and menu actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Forward key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Back    key.Binding
	Retry   key.Binding
	Quit    key.Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		Forward: key.NewBinding(key.WithKeys(" ", "down"), key.WithHelp("space/↓", "forward")),
		Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "turn left")),
		Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "turn right")),
		Up:      key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "levels")),
		Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// GameKey maps a key message to a gameplay key. Anything that is not
// space or an arrow becomes core.KeyOther.
func (km *KeyMapper) GameKey(msg tea.KeyMsg) core.Key {
	return core.ParseKey(msg.String())
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRetry
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch {
	case key.Matches(msg, km.Quit):
		return MenuActionQuit
	case key.Matches(msg, km.Up):
		return MenuActionUp
	case key.Matches(msg, km.Down):
		return MenuActionDown
	case key.Matches(msg, km.Select):
		return MenuActionSelect
	case key.Matches(msg, km.Back):
		return MenuActionBack
	case key.Matches(msg, km.Retry):
		return MenuActionRetry
	}
	return MenuActionNone
}

// gameHelp lists the bindings shown under the gameplay view.
type gameHelp struct{ km *KeyMapper }

func (h gameHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Forward, h.km.Left, h.km.Right, h.km.Retry, h.km.Back, h.km.Quit}
}

func (h gameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// menuHelp lists the bindings shown under the level select view.
type menuHelp struct{ km *KeyMapper }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.km.Up, h.km.Down, h.km.Select, h.km.Retry, h.km.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

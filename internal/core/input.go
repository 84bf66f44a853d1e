package core

import (
	"fmt"
	"strings"
)

// Action is a movement the turtle can perform, abstracted from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionForward          // Space or Down arrow
	ActionTurnLeft         // Left arrow
	ActionTurnRight        // Right arrow
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionForward:
		return "forward"
	case ActionTurnLeft:
		return "turn-left"
	case ActionTurnRight:
		return "turn-right"
	default:
		return "unknown"
	}
}

// TurnDegrees returns the heading delta for a turn action, 0 otherwise.
func (a Action) TurnDegrees() int {
	switch a {
	case ActionTurnLeft:
		return -90
	case ActionTurnRight:
		return 90
	}
	return 0
}

// ParseMovement decodes a movement token as sent by the game backend.
// Backend tokens ("space", "left"), action names and browser key names are accepted.
func ParseMovement(token string) (Action, error) {
	switch token {
	case " ", "ArrowDown", "ArrowLeft", "ArrowRight":
		return ActionForKey(ParseKey(token)), nil
	}
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "space", "down", "forward", "fd":
		return ActionForward, nil
	case "left", "turn-left", "turnleft", "lt":
		return ActionTurnLeft, nil
	case "right", "turn-right", "turnright", "rt":
		return ActionTurnRight, nil
	}
	return ActionNone, fmt.Errorf("core: unknown movement %q", token)
}

// Key identifies a raw key press relevant to gameplay.
type Key int

const (
	KeyOther Key = iota
	KeySpace
	KeyLeft
	KeyRight
	KeyDown
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeySpace:
		return "space"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	default:
		return "other"
	}
}

// ParseKey maps a key name to a Key. Both terminal ("left") and browser
// ("ArrowLeft") spellings are understood.
func ParseKey(name string) Key {
	switch name {
	case " ", "space":
		return KeySpace
	case "left", "ArrowLeft":
		return KeyLeft
	case "right", "ArrowRight":
		return KeyRight
	case "down", "ArrowDown":
		return KeyDown
	}
	return KeyOther
}

// ActionForKey is the fixed key to action mapping.
func ActionForKey(k Key) Action {
	switch k {
	case KeySpace, KeyDown:
		return ActionForward
	case KeyLeft:
		return ActionTurnLeft
	case KeyRight:
		return ActionTurnRight
	}
	return ActionNone
}

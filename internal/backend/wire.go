package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/toxic-turtle/internal/core"
	"github.com/vovakirdan/toxic-turtle/internal/turtle"
)

// The level payload is loosely typed: single-element tuples in the backend's
// level tables serialize as scalars, and code blocks may arrive either as one
// string or as a list of lines.

type levelPayload struct {
	UserID      userID          `json:"user_id"`
	LevelNumber int             `json:"level_number"`
	Code        json.RawMessage `json:"code"`
	Movements   json.RawMessage `json:"movements"`
	Cursor      json.RawMessage `json:"cursor"`
	CanPlay     *bool           `json:"can_play"`
}

// movementObject is the {key, action} form of a movement entry.
type movementObject struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

type progressPayload struct {
	UserID       userID `json:"user_id"`
	CurrentLevel *int   `json:"current_level"`
	TotalLevels  int    `json:"total_levels"`
}

type completionPayload struct {
	UserID          userID `json:"user_id"`
	AllLevelsPassed bool   `json:"all_levels_passed"`
	LevelsPassed    int    `json:"levels_passed"`
	TotalLevels     int    `json:"total_levels"`
}

type passPayload struct {
	Level int `json:"level"`
}

type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

// userID accepts both string and numeric identifiers.
type userID string

func (u *userID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*u = userID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user_id: %w", err)
	}
	*u = userID(n.String())
	return nil
}

// toLevel converts the payload into a validated level. requested is used
// when the payload omits level_number.
func (p levelPayload) toLevel(requested int) (turtle.Level, error) {
	lvl := turtle.Level{Number: p.LevelNumber}
	if lvl.Number == 0 {
		lvl.Number = requested
	}

	var err error
	if lvl.Source, err = decodeCode(p.Code); err != nil {
		return turtle.Level{}, err
	}
	if lvl.Movements, err = decodeMovements(p.Movements); err != nil {
		return turtle.Level{}, err
	}
	cursor, err := decodeCursor(p.Cursor)
	if err != nil {
		return turtle.Level{}, err
	}
	lvl.CursorMap = alignCursor(cursor, len(lvl.Movements), len(lvl.Source))

	if err := lvl.Validate(); err != nil {
		return turtle.Level{}, err
	}
	return lvl, nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeCode(raw json.RawMessage) ([]string, error) {
	if isNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.Split(strings.TrimRight(s, "\n"), "\n"), nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode code: %w", err)
	}
	return lines, nil
}

func decodeMovements(raw json.RawMessage) ([]core.Action, error) {
	if isNull(raw) {
		return nil, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		a, err := core.ParseMovement(single)
		if err != nil {
			return nil, fmt.Errorf("decode movements: %w", err)
		}
		return []core.Action{a}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode movements: %w", err)
	}
	actions := make([]core.Action, 0, len(items))
	for i, item := range items {
		a, err := decodeMovement(item)
		if err != nil {
			return nil, fmt.Errorf("decode movement %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func decodeMovement(raw json.RawMessage) (core.Action, error) {
	var token string
	if err := json.Unmarshal(raw, &token); err == nil {
		return core.ParseMovement(token)
	}
	var obj movementObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return core.ActionNone, err
	}
	if obj.Action != "" {
		return core.ParseMovement(obj.Action)
	}
	return core.ParseMovement(obj.Key)
}

func decodeCursor(raw json.RawMessage) ([]int, error) {
	if isNull(raw) {
		return nil, nil
	}
	var single int
	if err := json.Unmarshal(raw, &single); err == nil {
		return []int{single}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			out = append(out, turtle.NoHighlight)
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(string(item)))
		if err != nil {
			return nil, fmt.Errorf("decode cursor: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

// alignCursor pads or truncates cursor to n entries and replaces entries
// that point past the source with NoHighlight.
func alignCursor(cursor []int, n, lines int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = turtle.NoHighlight
		if i < len(cursor) && cursor[i] >= 0 && cursor[i] < lines {
			out[i] = cursor[i]
		}
	}
	return out
}

// decodeDetail extracts the detail field from an error body. FastAPI sends
// a string for HTTP errors and a list of objects for validation errors.
func decodeDetail(body []byte) string {
	var p errorPayload
	if err := json.Unmarshal(body, &p); err != nil || isNull(p.Detail) {
		return strings.TrimSpace(string(body))
	}
	var s string
	if err := json.Unmarshal(p.Detail, &s); err == nil {
		return s
	}
	return string(p.Detail)
}

package core

import "testing"

func TestActionForKey(t *testing.T) {
	tests := []struct {
		key      Key
		expected Action
	}{
		{KeySpace, ActionForward},
		{KeyDown, ActionForward},
		{KeyLeft, ActionTurnLeft},
		{KeyRight, ActionTurnRight},
		{KeyOther, ActionNone},
	}

	for _, tc := range tests {
		if got := ActionForKey(tc.key); got != tc.expected {
			t.Errorf("ActionForKey(%v) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		expected Key
	}{
		{" ", KeySpace},
		{"space", KeySpace},
		{"left", KeyLeft},
		{"ArrowLeft", KeyLeft},
		{"right", KeyRight},
		{"ArrowRight", KeyRight},
		{"down", KeyDown},
		{"ArrowDown", KeyDown},
		{"up", KeyOther},
		{"a", KeyOther},
	}

	for _, tc := range tests {
		if got := ParseKey(tc.name); got != tc.expected {
			t.Errorf("ParseKey(%q) = %v, expected %v", tc.name, got, tc.expected)
		}
	}
}

func TestParseMovement(t *testing.T) {
	tests := []struct {
		token    string
		expected Action
		wantErr  bool
	}{
		{"space", ActionForward, false},
		{"down", ActionForward, false},
		{"forward", ActionForward, false},
		{" ", ActionForward, false},
		{"ArrowDown", ActionForward, false},
		{"left", ActionTurnLeft, false},
		{"ArrowLeft", ActionTurnLeft, false},
		{"turn-left", ActionTurnLeft, false},
		{"RIGHT", ActionTurnRight, false},
		{"turnright", ActionTurnRight, false},
		{"up", ActionNone, true},
		{"", ActionNone, true},
	}

	for _, tc := range tests {
		got, err := ParseMovement(tc.token)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMovement(%q) error = %v, wantErr %v", tc.token, err, tc.wantErr)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseMovement(%q) = %v, expected %v", tc.token, got, tc.expected)
		}
	}
}

func TestTurnDegrees(t *testing.T) {
	if ActionTurnLeft.TurnDegrees() != -90 {
		t.Error("turn-left should be -90")
	}
	if ActionTurnRight.TurnDegrees() != 90 {
		t.Error("turn-right should be 90")
	}
	if ActionForward.TurnDegrees() != 0 {
		t.Error("forward should not turn")
	}
}

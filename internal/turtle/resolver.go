package turtle

import "github.com/vovakirdan/toxic-turtle/internal/core"

// Verdict classifies a key press against the pending expected action.
type Verdict int

const (
	VerdictIgnored Verdict = iota
	VerdictCorrect
	VerdictIncorrect
)

// String returns the verdict name, used as a metrics label.
func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	default:
		return "ignored"
	}
}

// Resolution is the result of resolving one key press.
type Resolution struct {
	Verdict Verdict
	Action  core.Action // Candidate action for the key, ActionNone if unmapped
	// Recognized reports whether the key is a gameplay key whose default
	// handling must be suppressed, whatever the verdict.
	Recognized bool
}

// Resolve maps a key to a candidate action and checks it against expected.
// pending is false when there is nothing to match (no level loaded or the
// attempt is complete); every key is then ignored.
func Resolve(key core.Key, expected core.Action, pending bool) Resolution {
	action := core.ActionForKey(key)
	res := Resolution{
		Action:     action,
		Recognized: action != core.ActionNone,
	}

	switch {
	case !res.Recognized || !pending:
		res.Verdict = VerdictIgnored
	case action == expected:
		res.Verdict = VerdictCorrect
	default:
		res.Verdict = VerdictIncorrect
	}
	return res
}

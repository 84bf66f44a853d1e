package devserver

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/vovakirdan/toxic-turtle/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed levels/default.yaml
var defaultPackYAML []byte

// PackLevel is one level as written in a pack file.
type PackLevel struct {
	Code      []string `yaml:"code"`
	Movements []string `yaml:"movements"`
	Cursor    []int    `yaml:"cursor"`
}

// Pack is an ordered list of levels; level N is Levels[N-1].
type Pack struct {
	Levels []PackLevel `yaml:"levels"`
}

// Total returns the number of levels.
func (p Pack) Total() int {
	return len(p.Levels)
}

// Level returns level n (1-based).
func (p Pack) Level(n int) (PackLevel, bool) {
	if n < 1 || n > len(p.Levels) {
		return PackLevel{}, false
	}
	return p.Levels[n-1], true
}

// Validate checks every level's movements and cursor entries.
func (p Pack) Validate() error {
	if len(p.Levels) == 0 {
		return fmt.Errorf("devserver: pack has no levels")
	}
	for i, l := range p.Levels {
		if len(l.Movements) != len(l.Cursor) {
			return fmt.Errorf("devserver: level %d: %d movements but %d cursor entries",
				i+1, len(l.Movements), len(l.Cursor))
		}
		for _, m := range l.Movements {
			if _, err := core.ParseMovement(m); err != nil {
				return fmt.Errorf("devserver: level %d: %w", i+1, err)
			}
		}
		for _, c := range l.Cursor {
			if c < -1 || c >= len(l.Code) {
				return fmt.Errorf("devserver: level %d: cursor %d outside %d code lines", i+1, c, len(l.Code))
			}
		}
	}
	return nil
}

// DefaultPack returns the built-in levels.
func DefaultPack() (Pack, error) {
	return parsePack(defaultPackYAML)
}

// LoadPack reads a pack file, or the built-in pack when path is empty.
func LoadPack(path string) (Pack, error) {
	if path == "" {
		return DefaultPack()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, fmt.Errorf("devserver: read pack %s: %w", path, err)
	}
	return parsePack(data)
}

func parsePack(data []byte) (Pack, error) {
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pack{}, fmt.Errorf("devserver: parse pack: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Pack{}, err
	}
	return p, nil
}

// payload renders the level the way the game backend does: code as one
// string, and single-entry movements and cursor lists collapsed to scalars.
func (l PackLevel) payload() (code string, movements, cursor any) {
	code = strings.Join(l.Code, "\n")
	if len(l.Movements) == 1 {
		movements = l.Movements[0]
	} else {
		movements = l.Movements
	}
	if len(l.Cursor) == 1 {
		cursor = l.Cursor[0]
	} else {
		cursor = l.Cursor
	}
	return code, movements, cursor
}

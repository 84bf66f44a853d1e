// Package config provides YAML-based configuration loading for the turtle
// client, its SSH server and the local development backend.
package config

import (
	"time"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// Config is the complete configuration tree.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Game      GameConfig      `yaml:"game"`
	Log       LogConfig       `yaml:"log"`
	SSH       SSHConfig       `yaml:"ssh"`
	Redis     RedisConfig     `yaml:"redis"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// APIConfig locates the game backend.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// GameConfig defines gameplay and rendering parameters.
type GameConfig struct {
	CanvasSize      int           `yaml:"canvas_size"`
	GridUnit        float64       `yaml:"grid_unit"`
	CompletionDelay time.Duration `yaml:"completion_delay"`
	Sprite          string        `yaml:"sprite"` // Image file for the turtle, empty for the built-in shape
	Sound           SoundMode     `yaml:"sound"`
}

// SoundMode selects how feedback cues are played.
type SoundMode string

const (
	SoundSpeaker SoundMode = "speaker" // Synthesized tones on the local audio device
	SoundBell    SoundMode = "bell"    // Terminal bell
	SoundOff     SoundMode = "off"
)

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file for interactive sessions
}

// SSHConfig configures `turtle serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConfig enables the level cache when Addr is set.
type RedisConfig struct {
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DevServerConfig configures `turtle devserver`.
type DevServerConfig struct {
	Addr   string `yaml:"addr"`
	DB     string `yaml:"db"`
	Levels string `yaml:"levels"` // Level pack file, empty for the built-in pack
}

// Runtime converts the game section into the view runtime config.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Game.CanvasSize > 0 {
		rc.CanvasSize = c.Game.CanvasSize
	}
	if c.Game.GridUnit > 0 {
		rc.GridUnit = c.Game.GridUnit
	}
	if c.Game.CompletionDelay > 0 {
		rc.CompletionDelay = c.Game.CompletionDelay
	}
	return rc
}

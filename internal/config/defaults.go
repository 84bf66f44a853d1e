package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/turtle.yaml
var defaultTurtleYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			URL:     "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Game: GameConfig{
			CanvasSize:      500,
			GridUnit:        50,
			CompletionDelay: 2 * time.Second,
			Sound:           SoundSpeaker,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.turtle/turtle.log",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Redis: RedisConfig{
			TTL: time.Hour,
		},
		DevServer: DevServerConfig{
			Addr: ":8000",
			DB:   "~/.turtle/devserver.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTurtleYAML
}

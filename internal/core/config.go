package core

import "time"

// RuntimeConfig contains configuration passed to the gameplay view at mount.
type RuntimeConfig struct {
	ScreenW         int           // Screen width in characters
	ScreenH         int           // Screen height in characters
	CanvasSize      int           // Canvas edge length in canvas units (square)
	GridUnit        float64       // Distance of one forward move, also the grid spacing
	CompletionDelay time.Duration // Time the completion banner stays up before leaving
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:         80,
		ScreenH:         24,
		CanvasSize:      500,
		GridUnit:        50,
		CompletionDelay: 2 * time.Second,
	}
}

// Origin returns the starting pose: canvas centre, facing up.
func (c RuntimeConfig) Origin() Pose {
	half := float64(c.CanvasSize) / 2
	return Pose{X: half, Y: half, Heading: HeadingUp}
}

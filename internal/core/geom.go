// Package core provides fundamental types for the turtle game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Headings in degrees, clockwise from up.
const (
	HeadingUp    = 0
	HeadingRight = 90
	HeadingDown  = 180
	HeadingLeft  = 270
)

// NormalizeHeading wraps degrees into [0, 360), so -90 becomes 270.
func NormalizeHeading(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Pose is the turtle's position in canvas units and its heading.
type Pose struct {
	X, Y    float64
	Heading int
}

// Forward returns the pose one unit ahead along the current heading.
// Canvas y grows downward, so heading up decreases y.
func (p Pose) Forward(unit float64) Pose {
	next := p
	switch NormalizeHeading(p.Heading) {
	case HeadingUp:
		next.Y -= unit
	case HeadingRight:
		next.X += unit
	case HeadingDown:
		next.Y += unit
	case HeadingLeft:
		next.X -= unit
	}
	return next
}

// Turn returns the pose rotated by delta degrees.
func (p Pose) Turn(delta int) Pose {
	p.Heading = NormalizeHeading(p.Heading + delta)
	return p
}

// Radians returns the heading as a clockwise rotation in radians.
func (p Pose) Radians() float64 {
	return float64(p.Heading) * math.Pi / 180
}

// Segment is one drawn line, recorded once per forward move.
type Segment struct {
	StartX, StartY float64
	EndX, EndY     float64
}

// SegmentBetween builds the segment walked from a to b.
func SegmentBetween(a, b Pose) Segment {
	return Segment{StartX: a.X, StartY: a.Y, EndX: b.X, EndY: b.Y}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Package canvas draws the turtle scene into an RGBA raster: background,
// grid, the accumulated path and the turtle itself. The raster can be
// downsampled into terminal cells or exported as PNG.
package canvas

import (
	"image"
	"image/draw"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// Fixed drawing parameters.
const (
	GridWidth   = 1
	PathWidth   = 3
	SpriteSize  = 40
	DefaultSize = 500
)

// Scene is everything one frame depends on.
type Scene struct {
	Pose     core.Pose
	Segments []core.Segment
	Sprite   image.Image // nil draws the fallback silhouette
}

// sceneKey identifies a frame. Segments are append-only within an attempt,
// so their count stands in for the whole path. Callers starting a new
// attempt must Invalidate the surface.
type sceneKey struct {
	pose      core.Pose
	segments  int
	hasSprite bool
}

func (s Scene) key() sceneKey {
	return sceneKey{pose: s.Pose, segments: len(s.Segments), hasSprite: s.Sprite != nil}
}

// Surface is a square raster that redraws only when the scene changes.
type Surface struct {
	img     *image.RGBA
	unit    float64
	paint   *painter
	last    sceneKey
	valid   bool
	redraws int
}

// New creates a surface size pixels square with grid lines every unit pixels.
func New(size int, unit float64) *Surface {
	if size <= 0 {
		size = DefaultSize
	}
	if unit <= 0 {
		unit = 50
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s := &Surface{img: img, unit: unit, paint: newPainter(img)}
	s.clear()
	return s
}

// Image returns the backing raster. It is overwritten by the next redraw.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the edge length in pixels.
func (s *Surface) Size() int {
	return s.img.Bounds().Dx()
}

// Redraws returns how many frames have actually been painted.
func (s *Surface) Redraws() int {
	return s.redraws
}

// Invalidate forces the next Draw to repaint.
func (s *Surface) Invalidate() {
	s.valid = false
}

// Draw paints the scene and reports whether anything was repainted.
func (s *Surface) Draw(sc Scene) bool {
	k := sc.key()
	if s.valid && k == s.last {
		return false
	}

	s.clear()
	s.drawGrid()
	s.drawPath(sc.Segments)
	s.drawTurtle(sc.Pose, sc.Sprite)

	s.last = k
	s.valid = true
	s.redraws++
	return true
}

func (s *Surface) clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(core.ColorBackground), image.Point{}, draw.Src)
}

func (s *Surface) drawGrid() {
	b := s.img.Bounds()
	size := b.Dx()
	for v := 0.0; v <= float64(size); v += s.unit {
		line := min(int(v), size-GridWidth)
		for i := 0; i < GridWidth; i++ {
			for j := 0; j < size; j++ {
				s.img.Set(line+i, j, core.ColorGrid)
				s.img.Set(j, line+i, core.ColorGrid)
			}
		}
	}
}

func (s *Surface) drawPath(segments []core.Segment) {
	if len(segments) == 0 {
		return
	}
	p := s.paint
	p.tf = identity
	p.fill(core.ColorPath, func() {
		for _, seg := range segments {
			p.stroke(seg.StartX, seg.StartY, seg.EndX, seg.EndY, PathWidth)
		}
	})
}

func (s *Surface) drawTurtle(pose core.Pose, sprite image.Image) {
	if sprite != nil {
		blitSprite(s.img, sprite, pose)
		return
	}
	p := s.paint
	p.tf = turtleTransform(pose.X, pose.Y, pose.Radians())
	drawFallback(p)
	p.tf = identity
}

// drawFallback paints the built-in turtle facing up around the local origin.
func drawFallback(p *painter) {
	p.fill(core.ColorShell, func() { p.ellipse(0, 0, 15, 20, false) })
	p.fill(core.ColorShellEdge, func() { p.ring(0, 0, 12, 17, 2) })
	p.fill(core.ColorHead, func() { p.circle(0, -22, 8) })
	p.fill(core.ColorEye, func() {
		p.circle(-4, -24, 3)
		p.circle(4, -24, 3)
	})
	p.fill(core.ColorPupil, func() {
		p.circle(-4, -24, 1.5)
		p.circle(4, -24, 1.5)
	})
}

package canvas

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// curveSteps is the number of polygon edges used to approximate an ellipse.
const curveSteps = 48

// transform is a rotation followed by a translation, mapping turtle-local
// coordinates onto the surface.
type transform struct {
	cos, sin float64
	dx, dy   float64
}

var identity = transform{cos: 1}

// turtleTransform places the origin at (x, y) rotated clockwise by rad.
func turtleTransform(x, y, rad float64) transform {
	return transform{cos: math.Cos(rad), sin: math.Sin(rad), dx: x, dy: y}
}

func (t transform) apply(x, y float64) (float32, float32) {
	return float32(t.cos*x - t.sin*y + t.dx), float32(t.sin*x + t.cos*y + t.dy)
}

// painter fills paths onto an RGBA image. Every closed path is wound the same
// way, so overlapping shapes in one fill union instead of cancelling; a path
// built with reverse set punches a hole.
type painter struct {
	dst  *image.RGBA
	rast *vector.Rasterizer
	tf   transform
}

func newPainter(dst *image.RGBA) *painter {
	b := dst.Bounds()
	return &painter{dst: dst, rast: vector.NewRasterizer(b.Dx(), b.Dy()), tf: identity}
}

// fill rasterizes whatever build adds to the path and composites it in col.
func (p *painter) fill(col color.Color, build func()) {
	b := p.dst.Bounds()
	p.rast.Reset(b.Dx(), b.Dy())
	build()
	p.rast.Draw(p.dst, b, image.NewUniform(col), image.Point{})
}

func (p *painter) moveTo(x, y float64) {
	p.rast.MoveTo(p.tf.apply(x, y))
}

func (p *painter) lineTo(x, y float64) {
	p.rast.LineTo(p.tf.apply(x, y))
}

// ellipse adds a closed ellipse centred on (cx, cy).
func (p *painter) ellipse(cx, cy, rx, ry float64, reverse bool) {
	for i := 0; i <= curveSteps; i++ {
		a := 2 * math.Pi * float64(i) / curveSteps
		if reverse {
			a = -a
		}
		x, y := cx+rx*math.Cos(a), cy+ry*math.Sin(a)
		if i == 0 {
			p.moveTo(x, y)
			continue
		}
		p.lineTo(x, y)
	}
	p.rast.ClosePath()
}

func (p *painter) circle(cx, cy, r float64) {
	p.ellipse(cx, cy, r, r, false)
}

// ring adds an elliptical outline of the given stroke width.
func (p *painter) ring(cx, cy, rx, ry, width float64) {
	h := width / 2
	p.ellipse(cx, cy, rx+h, ry+h, false)
	p.ellipse(cx, cy, rx-h, ry-h, true)
}

// stroke adds a line of the given width with round caps.
func (p *painter) stroke(x0, y0, x1, y1, width float64) {
	h := width / 2
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx, ny := -dy/length*h, dx/length*h
		p.moveTo(x0-nx, y0-ny)
		p.lineTo(x1-nx, y1-ny)
		p.lineTo(x1+nx, y1+ny)
		p.lineTo(x0+nx, y0+ny)
		p.rast.ClosePath()
	}
	p.circle(x0, y0, h)
	p.circle(x1, y1, h)
}

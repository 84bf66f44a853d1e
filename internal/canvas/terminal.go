package canvas

import (
	"image"
	"image/color"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

// HalfBlock is drawn in every terminal cell: the foreground paints the upper
// half, the background the lower half.
const HalfBlock = '▀'

// inkThreshold is the fraction of a block (in tenths) that must be covered
// before its colour wins over the background.
const inkThreshold = 1

// FitCells returns the largest cell area that shows a square raster within
// cols×rows terminal cells. Each cell holds two vertical pixels.
func FitCells(cols, rows int) (w, h int) {
	side := min(cols, rows*2)
	if side < 2 {
		return 0, 0
	}
	return side, side / 2
}

// Rasterize downsamples img into scr using half-block cells.
func Rasterize(img image.Image, scr *core.Screen) {
	w, h := scr.Width(), scr.Height()
	if w == 0 || h == 0 {
		return
	}
	b := img.Bounds()
	rows := h * 2

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			x0 := b.Min.X + cx*b.Dx()/w
			x1 := b.Min.X + (cx+1)*b.Dx()/w
			upper := blockColor(img, x0, x1, b.Min.Y+(2*cy)*b.Dy()/rows, b.Min.Y+(2*cy+1)*b.Dy()/rows)
			lower := blockColor(img, x0, x1, b.Min.Y+(2*cy+1)*b.Dy()/rows, b.Min.Y+(2*cy+2)*b.Dy()/rows)
			scr.Set(cx, cy, core.Cell{Rune: HalfBlock, FG: upper, BG: lower})
		}
	}
}

// blockColor picks a representative colour for a pixel block. Path and
// turtle pixels win when they cover enough of the block, then the grid,
// then the background.
func blockColor(img image.Image, x0, x1, y0, y1 int) core.Color {
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)

	var ink, grid, total int
	var r, g, b int
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			total++
			c := pixelAt(img, x, y)
			switch c {
			case core.ColorBackground:
			case core.ColorGrid:
				grid++
			default:
				ink++
				r += int(c.R)
				g += int(c.G)
				b += int(c.B)
			}
		}
	}

	switch {
	case ink > 0 && ink*10 >= total*inkThreshold:
		return core.RGB(uint8(r/ink), uint8(g/ink), uint8(b/ink))
	case grid > 0 && grid*10 >= total*inkThreshold:
		return core.ColorGrid
	default:
		return core.ColorBackground
	}
}

func pixelAt(img image.Image, x, y int) core.Color {
	if rgba, ok := img.(*image.RGBA); ok {
		p := rgba.RGBAAt(x, y)
		return core.RGB(p.R, p.G, p.B)
	}
	return core.FromColor(color.NRGBAModel.Convert(img.At(x, y)))
}

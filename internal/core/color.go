package core

import (
	"fmt"
	"image/color"
)

// Color is an opaque 24-bit RGB color used by screen cells.
// Terminal output renders it as a true-color hex value.
type Color struct {
	R, G, B uint8
}

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// FromColor converts any image/color value to a Color, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// RGBA implements color.Color so palette entries can be used as image sources.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Palette used by the canvas and the terminal views.
var (
	ColorBackground = RGB(0xf0, 0xf8, 0xff)
	ColorGrid       = RGB(0xe0, 0xe0, 0xe0)
	ColorPath       = RGB(0x34, 0x98, 0xdb)
	ColorShell      = RGB(0x2e, 0xcc, 0x71)
	ColorShellEdge  = RGB(0x27, 0xae, 0x60)
	ColorHead       = RGB(0x16, 0xa0, 0x85)
	ColorEye        = RGB(0xff, 0xff, 0xff)
	ColorPupil      = RGB(0x00, 0x00, 0x00)
	ColorHighlight  = RGB(0xff, 0xd9, 0x3d)
)

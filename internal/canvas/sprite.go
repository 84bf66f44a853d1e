package canvas

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/vovakirdan/toxic-turtle/internal/core"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
)

// ErrNoSprite is returned by LoadSprite when no sprite path is configured.
var ErrNoSprite = errors.New("canvas: no sprite configured")

// LoadSprite decodes the turtle image at path. PNG, JPEG, GIF and WebP are
// supported.
func LoadSprite(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoSprite
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("canvas: open sprite: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("canvas: decode sprite %s: %w", path, err)
	}
	return img, nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("canvas: encode png: %w", err)
	}
	return nil
}

// blitSprite draws src scaled to SpriteSize, centred on the pose and rotated
// by its heading.
func blitSprite(dst draw.Image, src image.Image, pose core.Pose) {
	b := src.Bounds()
	if b.Empty() {
		return
	}
	half := float64(SpriteSize) / 2
	sx := float64(SpriteSize) / float64(b.Dx())
	sy := float64(SpriteSize) / float64(b.Dy())

	m := translate(-float64(b.Min.X), -float64(b.Min.Y))
	m = mul(scale(sx, sy), m)
	m = mul(translate(-half, -half), m)
	m = mul(rotate(pose.Radians()), m)
	m = mul(translate(pose.X, pose.Y), m)

	draw.CatmullRom.Transform(dst, m, src, b, draw.Over, nil)
}

func translate(x, y float64) f64.Aff3 {
	return f64.Aff3{1, 0, x, 0, 1, y}
}

func scale(x, y float64) f64.Aff3 {
	return f64.Aff3{x, 0, 0, 0, y, 0}
}

func rotate(rad float64) f64.Aff3 {
	t := turtleTransform(0, 0, rad)
	return f64.Aff3{t.cos, -t.sin, 0, t.sin, t.cos, 0}
}

// mul returns a·b, the transform applying b first.
func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

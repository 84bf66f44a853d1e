package canvas

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/toxic-turtle/internal/core"
)

func rgbAt(img *image.RGBA, x, y int) core.Color {
	p := img.RGBAAt(x, y)
	return core.RGB(p.R, p.G, p.B)
}

func centre() core.Pose {
	return core.Pose{X: 250, Y: 250, Heading: core.HeadingUp}
}

func TestEmptySceneHasBackgroundAndGrid(t *testing.T) {
	s := New(500, 50)
	s.Draw(Scene{Pose: core.Pose{X: -100, Y: -100}})
	img := s.Image()

	tests := []struct {
		name     string
		x, y     int
		expected core.Color
	}{
		{"background", 25, 25, core.ColorBackground},
		{"vertical grid line", 50, 25, core.ColorGrid},
		{"horizontal grid line", 25, 100, core.ColorGrid},
		{"origin corner", 0, 0, core.ColorGrid},
		{"far edge", 499, 25, core.ColorGrid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rgbAt(img, tc.x, tc.y); got != tc.expected {
				t.Errorf("pixel (%d,%d) = %s, expected %s", tc.x, tc.y, got.Hex(), tc.expected.Hex())
			}
		})
	}
}

func TestSegmentsDrawnInPathColor(t *testing.T) {
	s := New(500, 50)
	segs := []core.Segment{
		{StartX: 250, StartY: 250, EndX: 250, EndY: 200},
		{StartX: 250, StartY: 200, EndX: 300, EndY: 200},
	}
	s.Draw(Scene{Pose: core.Pose{X: -100, Y: -100}, Segments: segs})
	img := s.Image()

	for _, p := range []image.Point{{250, 225}, {275, 200}, {250, 240}, {249, 240}} {
		if got := rgbAt(img, p.X, p.Y); got != core.ColorPath {
			t.Errorf("pixel %v = %s, expected path color", p, got.Hex())
		}
	}
	// The stroke edge is anti-aliased: partly covered, neither path nor background.
	if got := rgbAt(img, 251, 240); got == core.ColorPath || got == core.ColorBackground {
		t.Errorf("edge pixel (251,240) = %s, expected a blend", got.Hex())
	}
	// Off the path stays background.
	if got := rgbAt(img, 275, 225); got != core.ColorBackground {
		t.Errorf("pixel (275,225) = %s, expected background", got.Hex())
	}
}

func TestFallbackTurtleFollowsHeading(t *testing.T) {
	tests := []struct {
		heading int
		head    image.Point // centre of the head circle after rotation
	}{
		{core.HeadingUp, image.Point{250, 228}},
		{core.HeadingRight, image.Point{272, 250}},
		{core.HeadingDown, image.Point{250, 272}},
		{core.HeadingLeft, image.Point{228, 250}},
	}

	for _, tc := range tests {
		s := New(500, 50)
		pose := centre()
		pose.Heading = tc.heading
		s.Draw(Scene{Pose: pose})

		if got := rgbAt(s.Image(), tc.head.X, tc.head.Y); got != core.ColorHead {
			t.Errorf("heading %d: head pixel %v = %s, expected head color", tc.heading, tc.head, got.Hex())
		}
		if got := rgbAt(s.Image(), 250, 250); got != core.ColorShell {
			t.Errorf("heading %d: body pixel = %s, expected shell color", tc.heading, got.Hex())
		}
	}
}

func TestRedrawSkippedWhenSceneUnchanged(t *testing.T) {
	s := New(500, 50)
	sc := Scene{Pose: centre()}

	if !s.Draw(sc) {
		t.Fatal("first draw should paint")
	}
	if s.Draw(sc) {
		t.Error("identical scene should not repaint")
	}

	sc.Segments = []core.Segment{{StartX: 250, StartY: 250, EndX: 250, EndY: 200}}
	sc.Pose.Y = 200
	if !s.Draw(sc) {
		t.Error("new segment should repaint")
	}

	sc.Sprite = image.NewRGBA(image.Rect(0, 0, 8, 8))
	if !s.Draw(sc) {
		t.Error("sprite arrival should repaint")
	}

	s.Invalidate()
	if !s.Draw(sc) {
		t.Error("invalidated surface should repaint")
	}
	if s.Redraws() != 4 {
		t.Errorf("redraws = %d, expected 4", s.Redraws())
	}
}

func TestSpriteBlittedAtPose(t *testing.T) {
	sprite := image.NewRGBA(image.Rect(0, 0, 10, 10))
	red := color.RGBA{R: 0xff, A: 0xff}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			sprite.Set(x, y, red)
		}
	}

	s := New(500, 50)
	s.Draw(Scene{Pose: core.Pose{X: 100, Y: 100}, Sprite: sprite})

	if got := rgbAt(s.Image(), 100, 100); got != core.RGB(0xff, 0, 0) {
		t.Errorf("sprite centre = %s, expected red", got.Hex())
	}
	if got := rgbAt(s.Image(), 130, 130); got != core.ColorBackground {
		t.Errorf("outside sprite = %s, expected background", got.Hex())
	}
}

func TestLoadSprite(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSprite(context.Background(), "")
	if !errors.Is(err, ErrNoSprite) {
		t.Errorf("empty path error = %v, expected ErrNoSprite", err)
	}

	if _, err := LoadSprite(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSprite(context.Background(), bad); err == nil {
		t.Error("garbage file should fail to decode")
	}

	good := filepath.Join(dir, "turtle.png")
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 6))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(good, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	img, err := LoadSprite(context.Background(), good)
	if err != nil {
		t.Fatalf("LoadSprite() error = %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 6 {
		t.Errorf("sprite bounds = %v", img.Bounds())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadSprite(ctx, good); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled load error = %v", err)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	s := New(100, 50)
	s.Draw(Scene{Pose: core.Pose{X: 50, Y: 50}})

	var buf bytes.Buffer
	if err := EncodePNG(&buf, s.Image()); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != s.Image().Bounds() {
		t.Errorf("bounds = %v, expected %v", img.Bounds(), s.Image().Bounds())
	}
}

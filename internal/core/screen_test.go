package core

import "testing"

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	// Check that it's initialized with blank cells
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Errorf("New screen should be filled with spaces, got %q at (%d, %d)", s.GetCell(x, y).Rune, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	cell := Cell{Rune: '▀', FG: ColorPath, BG: ColorGrid}
	s.Set(5, 5, cell)
	if s.GetCell(5, 5) != cell {
		t.Errorf("GetCell(5, 5) = %+v, expected %+v", s.GetCell(5, 5), cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, cell)  // Should not panic
	s.Set(100, 0, cell) // Should not panic
	s.Set(0, -1, cell)  // Should not panic
	s.Set(0, 100, cell) // Should not panic

	// Out of bounds get should return blank
	if s.GetCell(-1, 0).Rune != ' ' {
		t.Error("Out of bounds GetCell should return blank")
	}
	if s.GetCell(100, 0).Rune != ' ' {
		t.Error("Out of bounds GetCell should return blank")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			s.Set(x, y, Cell{Rune: 'X'})
		}
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if s.GetCell(x, y).Rune != ' ' {
				t.Errorf("After Clear, expected space at (%d, %d), got %q", x, y, s.GetCell(x, y).Rune)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Resize(20, 8)

	if s.Width() != 20 || s.Height() != 8 {
		t.Errorf("Resize() gave %dx%d, expected 20x8", s.Width(), s.Height())
	}

	// Setting the last cell must not panic after growth
	s.Set(19, 7, Cell{Rune: 'Z'})
	if s.GetCell(19, 7).Rune != 'Z' {
		t.Error("expected Z in the resized corner")
	}
}

func TestColorHex(t *testing.T) {
	if ColorPath.Hex() != "#3498db" {
		t.Errorf("Hex() = %s, expected #3498db", ColorPath.Hex())
	}
	if FromColor(ColorHighlight) != ColorHighlight {
		t.Error("FromColor should round-trip palette colors")
	}
}

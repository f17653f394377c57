package core

import (
	"strings"
	"testing"
)

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)

	s.Set(3, 2, 'X')
	if got := s.Get(3, 2); got != 'X' {
		t.Errorf("Get(3, 2) = %q, expected 'X'", got)
	}

	// Unset cells are spaces
	if got := s.Get(0, 0); got != ' ' {
		t.Errorf("Get(0, 0) = %q, expected space", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 5)

	s.SetWithColor(1, 1, 'o', ColorGreen)
	cell := s.GetCell(1, 1)
	if cell.Rune != 'o' || cell.Color != ColorGreen {
		t.Errorf("GetCell(1, 1) = %+v, expected green 'o'", cell)
	}

	// Set uses the default color
	s.Set(2, 2, '*')
	if got := s.GetCell(2, 2).Color; got != ColorDefault {
		t.Errorf("Set should use default color, got %v", got)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)

	// Should not panic
	s.Set(-1, 0, 'X')
	s.Set(0, -1, 'X')
	s.Set(10, 0, 'X')
	s.Set(0, 5, 'X')

	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get out of bounds = %q, expected space", got)
	}
	if got := s.GetCell(100, 100); got.Rune != ' ' {
		t.Errorf("GetCell out of bounds = %+v, expected space cell", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.Fill('#')
	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("cell (%d,%d) not cleared", x, y)
			}
		}
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(2, 2, 'A')

	s.Resize(20, 10)
	if s.Width() != 20 || s.Height() != 10 {
		t.Fatalf("Resize dimensions = %dx%d, expected 20x10", s.Width(), s.Height())
	}

	// Content preserved where possible
	if got := s.Get(2, 2); got != 'A' {
		t.Errorf("content lost on grow: Get(2, 2) = %q", got)
	}

	// Shrinking clips
	s.Resize(2, 2)
	if got := s.Get(2, 2); got != ' ' {
		t.Errorf("Get outside shrunk screen = %q, expected space", got)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(2, 1, "hi")

	if s.Get(2, 1) != 'h' || s.Get(3, 1) != 'i' {
		t.Errorf("DrawText did not place runes, row = %q", s.Row(1))
	}

	// Clipped text must not panic
	s.DrawText(8, 1, "long text")
	if s.Get(9, 1) != 'o' {
		t.Errorf("clipped DrawText: Get(9, 1) = %q, expected 'o'", s.Get(9, 1))
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'a')
	s.Set(2, 1, 'b')

	got := s.String()
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("String() produced %d lines, expected 2", len(lines))
	}
	if lines[0] != "a  " || lines[1] != "  b" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 6)
	s.DrawRect(NewRect(1, 1, 3, 2), '#', ColorRed)

	for y := 1; y < 3; y++ {
		for x := 1; x < 4; x++ {
			cell := s.GetCell(x, y)
			if cell.Rune != '#' || cell.Color != ColorRed {
				t.Fatalf("cell (%d,%d) = %+v, expected red '#'", x, y, cell)
			}
		}
	}
	if s.Get(4, 1) != ' ' {
		t.Error("DrawRect wrote outside its bounds")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "wxyz")

	if got := s.Row(0); got != "wxyz" {
		t.Errorf("Row(0) = %q, expected \"wxyz\"", got)
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row out of bounds = %q, expected spaces", got)
	}
}

package render

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNewGrid(t *testing.T) {
	width, height := 80, 24
	g := NewGrid(width, height)

	if g.Width() != width {
		t.Errorf("Expected width %d, got %d", width, g.Width())
	}
	if g.Height() != height {
		t.Errorf("Expected height %d, got %d", height, g.Height())
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c, err := g.Get(x, y)
			if err != nil {
				t.Fatalf("Get(%d, %d) failed: %v", x, y, err)
			}
			if c != BlankCell {
				t.Fatalf("Expected blank cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestGridSetGetRoundTrip(t *testing.T) {
	g := NewGrid(10, 10)
	cell := Cell{
		Glyph: "A",
		Width: 1,
		Style: Style{Fg: tcell.ColorRed, Attrs: AttrBold},
	}

	if err := g.Set(5, 5, cell); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := g.Get(5, 5)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != cell {
		t.Errorf("Expected %+v, got %+v", cell, got)
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid(10, 5)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", 10, 0},
		{"y at height", 0, 5},
		{"far away", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.Set(tt.x, tt.y, BlankCell); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Set: expected ErrOutOfBounds, got %v", err)
			}
			if _, err := g.Get(tt.x, tt.y); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("Get: expected ErrOutOfBounds, got %v", err)
			}
		})
	}
}

func TestGridFill(t *testing.T) {
	g := NewGrid(7, 3)
	fill := Cell{Glyph: "#", Width: 1, Style: Style{Bg: tcell.ColorBlue}}
	g.Fill(fill)

	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			if c, _ := g.Get(x, y); c != fill {
				t.Fatalf("Expected fill cell at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestGridZeroSize(t *testing.T) {
	g := NewGrid(0, 0)
	g.Fill(BlankCell)
	if err := g.Set(0, 0, BlankCell); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds on empty grid, got %v", err)
	}
}

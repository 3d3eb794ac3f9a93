package render

import (
	"testing"
)

func TestCursorMoveToNoOp(t *testing.T) {
	c := NewCursorTracker(80, 24)

	if seq := string(c.MoveTo(3, 4)); seq != "\x1b[5;4H" {
		t.Errorf("Expected CUP to row 5 col 4, got %q", seq)
	}
	if seq := c.MoveTo(3, 4); seq != nil {
		t.Errorf("Expected no-op for known position, got %q", seq)
	}
}

func TestCursorMoveToClamps(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"negative", -5, -1, "\x1b[1;1H"},
		{"past right and bottom", 200, 99, "\x1b[24;80H"},
		{"past right only", 80, 0, "\x1b[1;80H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursorTracker(80, 24)
			if got := string(c.MoveTo(tt.x, tt.y)); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCursorClampedPositionIsNoOp(t *testing.T) {
	c := NewCursorTracker(10, 5)
	c.MoveTo(9, 4)
	if seq := c.MoveTo(50, 50); seq != nil {
		t.Errorf("Expected clamped move onto known position to be a no-op, got %q", seq)
	}
}

func TestCursorForwardWhenShorter(t *testing.T) {
	c := NewCursorTracker(80, 24)
	c.MoveTo(10, 3)

	if got := string(c.MoveTo(12, 3)); got != "\x1b[2C" {
		t.Errorf("Expected CUF 2, got %q", got)
	}
	if got := string(c.MoveTo(13, 3)); got != "\x1b[C" {
		t.Errorf("Expected CUF 1, got %q", got)
	}
	// Moving left always uses absolute positioning
	if got := string(c.MoveTo(5, 3)); got != "\x1b[4;6H" {
		t.Errorf("Expected CUP for backward move, got %q", got)
	}
}

func TestCursorAdvance(t *testing.T) {
	c := NewCursorTracker(10, 2)
	c.MoveTo(2, 0)
	c.Advance(3)

	x, y, ok := c.Position()
	if !ok || x != 5 || y != 0 {
		t.Errorf("Expected known (5,0), got (%d,%d) ok=%v", x, y, ok)
	}
	if seq := c.MoveTo(5, 0); seq != nil {
		t.Errorf("Expected no-op after advance, got %q", seq)
	}

	// Writing into the last column leaves the cursor in pending-wrap state
	c.Advance(5)
	if _, _, ok := c.Position(); ok {
		t.Error("Expected unknown position after reaching right edge")
	}
}

func TestCursorInvalidate(t *testing.T) {
	c := NewCursorTracker(10, 2)
	c.MoveTo(1, 1)
	c.Invalidate()
	if seq := c.MoveTo(1, 1); seq == nil {
		t.Error("Expected move to be emitted after invalidate")
	}

	c.Resize(20, 4)
	if _, _, ok := c.Position(); ok {
		t.Error("Expected unknown position after resize")
	}
}

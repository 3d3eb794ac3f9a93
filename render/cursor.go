// @lixen: #focus{sys[render,cursor]}
package render

// CursorTracker remembers the last known physical cursor position so that
// repositioning is emitted only when needed. Owned exclusively by a Renderer
type CursorTracker struct {
	width  int
	height int

	x, y  int
	known bool
}

// NewCursorTracker creates a tracker with unknown position
func NewCursorTracker(width, height int) *CursorTracker {
	return &CursorTracker{width: width, height: height}
}

// Resize updates the clamping bounds, position becomes unknown
func (c *CursorTracker) Resize(width, height int) {
	c.width = width
	c.height = height
	c.known = false
}

// Invalidate forgets the position after anything that may have moved the cursor
func (c *CursorTracker) Invalidate() {
	c.known = false
}

// Position returns the known position, ok is false when unknown
func (c *CursorTracker) Position() (x, y int, ok bool) {
	return c.x, c.y, c.known
}

// MoveTo returns the bytes that place the cursor at (x, y), clamped to the grid,
// or nil when the cursor is already there
func (c *CursorTracker) MoveTo(x, y int) []byte {
	x, y = c.clamp(x, y)
	if c.known && c.x == x && c.y == y {
		return nil
	}

	var seq []byte
	cup := appendCursorPos(make([]byte, 0, 12), x, y)
	if c.known && c.y == y && x > c.x {
		if fwd := appendCursorForward(make([]byte, 0, 8), x-c.x); len(fwd) < len(cup) {
			seq = fwd
		}
	}
	if seq == nil {
		seq = cup
	}

	c.x, c.y, c.known = x, y, true
	return seq
}

// Advance records that n columns were printed at the known position
// Reaching the right edge leaves the terminal in pending-wrap state, which is ambiguous
func (c *CursorTracker) Advance(n int) {
	if !c.known {
		return
	}
	c.x += n
	if c.x >= c.width {
		c.known = false
	}
}

func (c *CursorTracker) clamp(x, y int) (int, int) {
	if x >= c.width {
		x = c.width - 1
	}
	if y >= c.height {
		y = c.height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

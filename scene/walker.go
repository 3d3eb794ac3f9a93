package scene

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cellterm/render"
)

var (
	walkerBackground = render.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	walkerStyle      = render.StyleDefault.Foreground(tcell.ColorGold)
)

// Walker is a two-column block moved over a patterned background
// X counts block positions, so the block's left column is 2*X
type Walker struct {
	X, Y int
}

// Move shifts the block and clamps it to the grid, reporting whether it hit an edge
func (w *Walker) Move(dx, dy, width, height int) (bumped bool) {
	nx, ny := w.X+dx, w.Y+dy
	maxX, maxY := max(width/2-1, 0), max(height-1, 0)

	cx := min(max(nx, 0), maxX)
	cy := min(max(ny, 0), maxY)
	bumped = cx != nx || cy != ny
	w.X, w.Y = cx, cy
	return bumped
}

// Clamp pulls the block back inside a grid that shrank
func (w *Walker) Clamp(width, height int) {
	w.Move(0, 0, width, height)
}

// Draw composes the background and the block
func (w *Walker) Draw(c Canvas) {
	c.Clear()
	width, height := c.Size()
	row := render.Repeat("▒", 1, width)
	for y := range height {
		c.WriteGlyphs(0, y, row, walkerBackground)
	}
	c.Write(w.X*2, w.Y, "██", walkerStyle)
}

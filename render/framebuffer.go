// @lixen: #focus{sys[render,buffer]}
package render

import (
	"iter"
	"unicode"
)

// Change is one cell of the back buffer that differs from the front buffer
type Change struct {
	X, Y int
	Cell Cell
}

// FrameBuffer owns the front grid (last flushed state) and the back grid (pending frame)
// Both grids always share dimensions
type FrameBuffer struct {
	front *Grid
	back  *Grid

	// fullRedraw makes the next diff report every back cell regardless of equality
	fullRedraw bool
}

// NewFrameBuffer allocates both grids; the first commit is a full redraw since the
// physical terminal contents are unknown
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		front:      NewGrid(width, height),
		back:       NewGrid(width, height),
		fullRedraw: true,
	}
}

// Width returns the column count of both grids
func (f *FrameBuffer) Width() int { return f.back.width }

// Height returns the row count of both grids
func (f *FrameBuffer) Height() int { return f.back.height }

// Back exposes the pending grid
func (f *FrameBuffer) Back() *Grid { return f.back }

// Front exposes the last committed grid
func (f *FrameBuffer) Front() *Grid { return f.front }

// Resize reallocates both grids without preserving content and schedules a full redraw
func (f *FrameBuffer) Resize(width, height int) {
	f.front = NewGrid(width, height)
	f.back = NewGrid(width, height)
	f.fullRedraw = true
}

// Invalidate schedules a full redraw without touching either grid
func (f *FrameBuffer) Invalidate() {
	f.fullRedraw = true
}

// FullRedrawPending reports whether the next diff covers every cell
func (f *FrameBuffer) FullRedrawPending() bool {
	return f.fullRedraw
}

// ClearBack resets the back grid to blank cells, front is untouched
func (f *FrameBuffer) ClearBack() {
	f.back.Fill(BlankCell)
}

// Write places text into the back grid starting at (x, y), one column per rune
// Returns the number of columns written; text past the right edge is discarded
func (f *FrameBuffer) Write(x, y int, text string, style Style) (int, error) {
	if !f.back.InBounds(x, y) {
		return 0, outOfBounds(x, y, f.back.width, f.back.height)
	}
	col := x
	for _, r := range text {
		if col >= f.back.width {
			break
		}
		f.place(col, y, Cell{Glyph: glyphText(r), Width: 1, Style: style})
		col++
	}
	return col - x, nil
}

// WriteGlyphs places glyphs with caller-declared widths starting at (x, y)
// A glyph that does not fit entirely before the right edge ends the write
func (f *FrameBuffer) WriteGlyphs(x, y int, glyphs []Glyph, style Style) (int, error) {
	if !f.back.InBounds(x, y) {
		return 0, outOfBounds(x, y, f.back.width, f.back.height)
	}
	col := x
	for _, g := range glyphs {
		w := g.Width
		if w < 1 {
			w = 1
		}
		if col+w > f.back.width {
			break
		}
		text := g.Text
		if text == "" {
			text = " "
		}
		f.place(col, y, Cell{Glyph: text, Width: w, Style: style})
		col += w
	}
	return col - x, nil
}

// place stores a lead cell and its continuation columns, releasing any wide glyph
// whose claim overlaps the written span
func (f *FrameBuffer) place(x, y int, c Cell) {
	for i := 0; i < c.Width; i++ {
		f.release(x+i, y)
	}
	f.back.put(x, y, c)
	cont := Cell{Width: 0, Style: c.Style}
	for i := 1; i < c.Width; i++ {
		f.back.put(x+i, y, cont)
	}
}

// release blanks the whole wide glyph covering (x, y), if any
func (f *FrameBuffer) release(x, y int) {
	c := f.back.at(x, y)
	lead := x
	switch {
	case c.Width == 0:
		for lead > 0 && f.back.at(lead, y).Width == 0 {
			lead--
		}
	case c.Width > 1:
	default:
		return
	}

	w := f.back.at(lead, y).Width
	if w < 1 {
		// Orphaned continuation at column 0
		w = 1
	}
	for i := 0; i < w && lead+i < f.back.width; i++ {
		f.back.put(lead+i, y, BlankCell)
	}
}

// Diff yields, in row-major order, every back cell that differs from the front cell
// at the same position, or every back cell while a full redraw is pending
// The sequence is single-use: ranging over it a second time yields nothing
func (f *FrameBuffer) Diff() iter.Seq[Change] {
	consumed := false
	full := f.fullRedraw
	front, back := f.front, f.back

	return func(yield func(Change) bool) {
		if consumed {
			return
		}
		consumed = true

		for y := 0; y < back.height; y++ {
			rowStart := y * back.width
			for x := 0; x < back.width; x++ {
				c := back.cells[rowStart+x]
				if !full && c == front.cells[rowStart+x] {
					continue
				}
				if !yield(Change{X: x, Y: y, Cell: c}) {
					return
				}
			}
		}
	}
}

// Commit copies the back grid into the front grid and clears the full-redraw flag
// Called once per flush after the diff has been written out
func (f *FrameBuffer) Commit() {
	f.front.CopyFrom(f.back)
	f.fullRedraw = false
}

// glyphText converts a rune into cell text, control characters render as blanks
func glyphText(r rune) string {
	if r == 0 || unicode.IsControl(r) {
		return " "
	}
	return string(r)
}

package render

import (
	"github.com/gdamore/tcell/v2"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Style is the styling token carried by every cell
// Zero value renders with the terminal's default colors and no attributes
type Style struct {
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs Attr
}

// StyleDefault is the zero style
var StyleDefault = Style{}

// Foreground returns a copy of s with the foreground color replaced
func (s Style) Foreground(c tcell.Color) Style {
	s.Fg = c
	return s
}

// Background returns a copy of s with the background color replaced
func (s Style) Background(c tcell.Color) Style {
	s.Bg = c
	return s
}

// With returns a copy of s with the given attributes added
func (s Style) With(a Attr) Style {
	s.Attrs |= a
	return s
}

// Cell represents a single terminal column
// Width is the number of columns the glyph claims, 0 marks the continuation
// column of a wide glyph whose lead cell sits to its left
type Cell struct {
	Glyph string
	Width int
	Style Style
}

// BlankCell is a space with default style
var BlankCell = Cell{Glyph: " ", Width: 1}

// IsContinuation reports whether the cell is covered by a wide glyph to its left
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// Glyph is a unit of text with a caller-declared column width
type Glyph struct {
	Text  string
	Width int
}

package render

// Grid is a dense row-major array of cells: cells[y*width + x]
// Not safe for concurrent mutation
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid allocates a grid with every cell set to BlankCell
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	g.Fill(BlankCell)
	return g
}

// Width returns the number of columns
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set stores a cell, failing with ErrOutOfBounds outside the grid
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return outOfBounds(x, y, g.width, g.height)
	}
	g.cells[y*g.width+x] = c
	return nil
}

// Get returns the cell at (x, y), failing with ErrOutOfBounds outside the grid
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, outOfBounds(x, y, g.width, g.height)
	}
	return g.cells[y*g.width+x], nil
}

// Fill resets every cell using exponential copy
func (g *Grid) Fill(c Cell) {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = c
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}

// CopyFrom overwrites g with the contents of src, dimensions must match
func (g *Grid) CopyFrom(src *Grid) {
	if src.width != g.width || src.height != g.height {
		panic("render: CopyFrom dimension mismatch")
	}
	copy(g.cells, src.cells)
}

// at is the unchecked accessor for in-package callers that already validated bounds
func (g *Grid) at(x, y int) Cell {
	return g.cells[y*g.width+x]
}

func (g *Grid) put(x, y int, c Cell) {
	g.cells[y*g.width+x] = c
}

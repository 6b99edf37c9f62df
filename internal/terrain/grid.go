package terrain

// ClassGrid stores the binary soil/grass classification in row-major order.
// True marks soil.
type ClassGrid struct {
	Rows, Cols int
	cells      []bool
}

// NewClassGrid allocates a grid with the given dimensions.
func NewClassGrid(rows, cols int) *ClassGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &ClassGrid{Rows: rows, Cols: cols, cells: make([]bool, rows*cols)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ClassGrid) Cells() []bool { return g.cells }

// Index returns the linear slice index for cell (r, c).
func (g *ClassGrid) Index(r, c int) int { return r*g.Cols + c }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *ClassGrid) Wrap(r, c int) (int, int) {
	r = (r%g.Rows + g.Rows) % g.Rows
	c = (c%g.Cols + g.Cols) % g.Cols
	return r, c
}

// At reads cell (r, c) with toroidal wrapping.
func (g *ClassGrid) At(r, c int) bool {
	r, c = g.Wrap(r, c)
	return g.cells[g.Index(r, c)]
}

// Set writes cell (r, c) without wrapping.
func (g *ClassGrid) Set(r, c int, v bool) { g.cells[g.Index(r, c)] = v }

// Count returns the number of true (soil) cells.
func (g *ClassGrid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

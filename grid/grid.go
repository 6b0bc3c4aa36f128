package grid

// Grid is the fixed-capacity ring buffer of spec.md §3/§4.2: rows live at
// absolute index (Offset + logicalRow) mod NumRows; View is the scroll
// position, and the viewport is the TermRows rows starting at View.
//
// NewGrid allocates every row up front; a row dropped with FreeRow stays
// nil until RowAbs next touches it. This type never grows its Rows slice.
type Grid struct {
	Rows     []*Row
	Offset   int
	View     int
	NumRows  int
	NumCols  int
	TermRows int // visible rows (<= NumRows; NumRows-TermRows is scrollback)
}

// NewGrid allocates a ring with numRows capacity (numRows >= termRows) and
// numCols columns, with every row pre-allocated blank. The alternate grid
// is constructed with numRows == termRows (spec.md §3: "no scrollback").
func NewGrid(numCols, termRows, numRows int) *Grid {
	if numRows < termRows {
		numRows = termRows
	}
	g := &Grid{
		Rows:     make([]*Row, numRows),
		NumRows:  numRows,
		NumCols:  numCols,
		TermRows: termRows,
	}
	for i := range g.Rows {
		g.Rows[i] = NewRow(numCols)
	}
	return g
}

func (g *Grid) mod(i int) int {
	i %= g.NumRows
	if i < 0 {
		i += g.NumRows
	}
	return i
}

// RowAbs returns the row at absolute ring index i (mod NumRows), allocating
// it first if it is still nil.
func (g *Grid) RowAbs(i int) *Row {
	idx := g.mod(i)
	if g.Rows[idx] == nil {
		g.Rows[idx] = NewRow(g.NumCols)
	}
	return g.Rows[idx]
}

// RowInView returns the row at viewport-relative position r (0 <= r <
// TermRows): absolute index (View + r) mod NumRows.
func (g *Grid) RowInView(r int) *Row {
	return g.RowAbs(g.View + r)
}

// RowLogical returns the row at emulator-logical index r: absolute index
// (Offset + r) mod NumRows, per spec.md §3's "Logical row r ... lives at
// index (offset + r) mod num_rows".
func (g *Grid) RowLogical(r int) *Row {
	return g.RowAbs(g.Offset + r)
}

// ViewEnd returns the absolute index of the last viewport row,
// spec.md §4.2's view_end := (view + term_rows - 1) mod num_rows.
func (g *Grid) ViewEnd() int {
	return g.mod(g.View + g.TermRows - 1)
}

// ViewWraps reports whether the viewport wraps past the top of the ring —
// spec.md §4.2's "wrap detection is view_end < view".
func (g *Grid) ViewWraps() bool {
	return g.ViewEnd() < g.View
}

// InView reports whether absolute ring index abs falls within the current
// viewport, handling the wrap case.
func (g *Grid) InView(abs int) bool {
	abs = g.mod(abs)
	end := g.ViewEnd()
	if g.ViewWraps() {
		return abs >= g.View || abs <= end
	}
	return abs >= g.View && abs <= end
}

// AllocRow forces (re)allocation of the row at absolute index i, discarding
// any existing content and giving it numCols blank cells.
func (g *Grid) AllocRow(i int, numCols int) *Row {
	row := NewRow(numCols)
	g.Rows[g.mod(i)] = row
	return row
}

// FreeRow drops the row at absolute index i back to nil, to be lazily
// reallocated on next touch. Grids are destroyed only on terminal teardown
// (spec.md §3's lifecycle note); Resizer does not call FreeRow, it builds
// fresh grids with NewGrid.
func (g *Grid) FreeRow(i int) {
	g.Rows[g.mod(i)] = nil
}

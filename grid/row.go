package grid

// Row is one logical line of the grid (spec.md §3).
type Row struct {
	Cells []Cell

	// Dirty summarizes "some cell in this row has Clean unset". It is a
	// permissible over-approximation (spec.md §3): a worker must still
	// honor each cell's own Clean bit, never repaint solely because Dirty
	// is set.
	Dirty bool

	// Linebreak marks a hard line break, reserved for a future line-aware
	// reflow (spec.md §9); the current column-truncating Resizer does not
	// consult it, but clears/copies it like any other row field.
	Linebreak bool
}

// NewRow allocates a row of numCols blank, dirty cells.
func NewRow(numCols int) *Row {
	cells := make([]Cell, numCols)
	for i := range cells {
		cells[i] = EmptyCell()
	}
	return &Row{Cells: cells, Dirty: true}
}

// MarkDirty sets the row-level dirty summary bit. Cell mutators should call
// this on their row after calling Cell.MarkDirty/SetRune/SetAttr.
func (r *Row) MarkDirty() { r.Dirty = true }

// RecomputeDirty scans every cell and sets Dirty to whether any cell is not
// clean. Used after a worker finishes a row (to clear the summary once
// every cell it covers is clean) and by tests asserting invariant 1 of
// spec.md §8.
func (r *Row) RecomputeDirty() {
	for i := range r.Cells {
		if !r.Cells[i].IsClean() {
			r.Dirty = true
			return
		}
	}
	r.Dirty = false
}

// AllClean reports whether every cell in the row is clean.
func (r *Row) AllClean() bool {
	for i := range r.Cells {
		if !r.Cells[i].IsClean() {
			return false
		}
	}
	return true
}

package render

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/phroun/waylterm/grid"
	"github.com/phroun/waylterm/wlext"
)

// Cursor is the subset of term.Terminal's cursor state Resizer needs to
// clamp after a resize: its logical grid position.
type Cursor struct {
	Row, Col int
}

// Clamp pins the cursor inside [0, rows) x [0, cols).
func (c *Cursor) Clamp(rows, cols int) {
	if c.Row >= rows {
		c.Row = rows - 1
	}
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Col >= cols {
		c.Col = cols - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
}

// ResizeResult is the rebuilt state a successful Resize produces.
type ResizeResult struct {
	Normal, Alt           *grid.Grid
	CellWidthPx, CellHeightPx int
	Cols, Rows            int
}

// Resizer rebuilds both ring grids for a new (width_px, height_px, scale),
// spec.md §4.6. BaseCellWidth/BaseCellHeight are the unscaled logical cell
// size; the actual pixel cell size is BaseCell* × scale, computed with the
// *new* scale per DESIGN.md's Open Question decision (adopt the incoming
// scale before multiplying dimensions — spec.md §9 flags the ordering as
// ambiguous in the original).
type Resizer struct {
	Signaler        wlext.WindowSizeSignaler
	BaseCellWidth   int
	BaseCellHeight  int
	ScrollbackLines int

	log *log.Logger
}

// NewResizer constructs a Resizer. signaler may be nil, in which case the
// PTY window-size notification step is skipped (useful for tests that
// don't care about PTY plumbing).
func NewResizer(signaler wlext.WindowSizeSignaler, baseCellWidth, baseCellHeight, scrollbackLines int) *Resizer {
	return &Resizer{
		Signaler:        signaler,
		BaseCellWidth:   baseCellWidth,
		BaseCellHeight:  baseCellHeight,
		ScrollbackLines: scrollbackLines,
		log:             log.With("component", "resizer"),
	}
}

// Resize rebuilds oldNormal/oldAlt at the new pixel dimensions and scale,
// reflows their content by column truncation, clamps cursor in place, and
// signals the new geometry over the Signaler. A WindowSizeSignalFailed
// error is logged and swallowed (spec.md §7: "log; continue"); Resize
// itself only returns an error if the computed geometry is degenerate.
func (rz *Resizer) Resize(oldNormal, oldAlt *grid.Grid, cursor *Cursor, widthPx, heightPx, scale int) (ResizeResult, error) {
	if scale < 1 {
		scale = 1
	}
	cellW := rz.BaseCellWidth * scale
	cellH := rz.BaseCellHeight * scale
	if cellW <= 0 || cellH <= 0 {
		return ResizeResult{}, fmt.Errorf("render: invalid cell size %dx%d", cellW, cellH)
	}

	cols := widthPx / cellW
	rows := heightPx / cellH
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	newNormal := grid.NewGrid(cols, rows, rows+rz.ScrollbackLines)
	newAlt := grid.NewGrid(cols, rows, rows)

	reflow(oldNormal, newNormal)
	reflow(oldAlt, newAlt)

	if cursor != nil {
		cursor.Clamp(rows, cols)
	}

	if rz.Signaler != nil {
		if err := rz.Signaler.Signal(rows, cols, widthPx, heightPx); err != nil {
			rz.log.Error("window size signal failed", "err", fmt.Errorf("%w: %v", ErrWindowSizeSignalFailed, err))
		}
	}

	return ResizeResult{
		Normal: newNormal, Alt: newAlt,
		CellWidthPx: cellW, CellHeightPx: cellH,
		Cols: cols, Rows: rows,
	}, nil
}

// reflow implements spec.md §4.6's column-truncation reflow: for each
// logical row present in both grids, copy min(new_cols, old_cols) cells at
// the same logical index and zero-fill the tail. Structured so a future
// wrap-aware reflow can replace this loop body without touching Resize.
func reflow(old, new *grid.Grid) {
	if old == nil || new == nil {
		return
	}
	n := min(old.NumRows, new.NumRows)
	copyCols := min(old.NumCols, new.NumCols)
	for r := 0; r < n; r++ {
		oldRow := old.RowLogical(r)
		newRow := new.RowLogical(r)
		for c := 0; c < copyCols; c++ {
			newRow.Cells[c] = oldRow.Cells[c]
		}
		for c := copyCols; c < len(newRow.Cells); c++ {
			newRow.Cells[c] = grid.EmptyCell()
		}
		newRow.Linebreak = oldRow.Linebreak
		newRow.MarkDirty()
	}
}

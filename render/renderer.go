package render

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/phroun/waylterm/color"
	"github.com/phroun/waylterm/compositor"
	"github.com/phroun/waylterm/grid"
	"github.com/phroun/waylterm/wlext"
)

// RenderState is the cross-frame memory of spec.md §3: which buffer was
// last committed, where the cursor was last drawn, and whether flash was
// active — so the next frame can erase stale overlays precisely.
type RenderState struct {
	LastBuf *wlext.Buffer

	LastCursor struct {
		Active    bool
		AbsRow    int // grid-absolute ring index the cursor cell lives at
		Col       int
		InViewRow int // viewport-relative row, for repainting
	}

	WasFlashing          bool
	FrameCallbackPending bool
}

// Renderer is the frame driver of spec.md §4.4, orchestrating one call to
// RenderFrame per compositor frame callback.
type Renderer struct {
	Grid       *grid.Grid
	Damage     *grid.DamageLog
	Compositor *compositor.CellCompositor
	Pool       wlext.BufferPool
	Surface    wlext.CompositorSurface
	Workers    *WorkerPool
	Blink      *BlinkClock

	CursorRow, CursorCol int
	CursorStyle          compositor.CursorStyle
	HideCursor           bool
	Selection            compositor.Selection
	Scale                int
	FlashActive          bool

	State RenderState

	log *log.Logger
}

// NewRenderer wires a frame driver together. workerCount == 0 renders
// inline on the calling goroutine (spec.md §4.5).
func NewRenderer(g *grid.Grid, damage *grid.DamageLog, cc *compositor.CellCompositor, pool wlext.BufferPool, surface wlext.CompositorSurface, blink *BlinkClock, workerCount int) *Renderer {
	r := &Renderer{
		Grid:       g,
		Damage:     damage,
		Compositor: cc,
		Pool:       pool,
		Surface:    surface,
		Blink:      blink,
		Scale:      1,
		log:        log.With("component", "renderer"),
	}
	r.State.LastCursor.AbsRow = -1
	r.State.LastCursor.Col = -1
	r.Workers = NewWorkerPool(workerCount, r.renderRow)
	return r
}

func (r *Renderer) bufWidth() int  { return r.Grid.NumCols * r.Compositor.CellWidth }
func (r *Renderer) bufHeight() int { return r.Grid.TermRows * r.Compositor.CellHeight }

// renderRow paints every dirty cell of viewport row viewRow against buf,
// honoring each cell's own Clean bit (spec.md §9: row Dirty is a hint
// only). It is the WorkerPool.RenderRowFunc bound at construction.
func (r *Renderer) renderRow(buf *wlext.Buffer, viewRow int) {
	row := r.Grid.RowInView(viewRow)
	params := compositor.Params{
		Row:     viewRow,
		View:    r.Grid.View,
		NumRows: r.Grid.NumRows,
		Selection: r.Selection,
	}
	if r.Blink != nil && r.Blink.Phase() == PhaseOff {
		params.BlinkPhase = compositor.BlinkOff
	}
	for c := 0; c < len(row.Cells); {
		params.Col = c
		n := r.Compositor.Paint(&row.Cells[c], params)
		if n < 1 {
			n = 1
		}
		c += n
	}
	row.RecomputeDirty()
}

// RenderFrame runs the 13-step frame of spec.md §4.4.
func (r *Renderer) RenderFrame() error {
	// 1. Acquire buffer.
	buf, err := r.Pool.Acquire(r.bufWidth(), r.bufHeight(), 1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBufferAcquireFailed, err)
	}
	r.Compositor.Surface = &PixelBufferSurface{Buf: buf}

	// 2. all_clean seed.
	allClean := r.Damage.Empty()

	blinkPhase := compositor.BlinkOn
	if r.Blink != nil && r.Blink.Phase() == PhaseOff {
		blinkPhase = compositor.BlinkOff
	}

	// 3. Erase previous cursor.
	if r.State.LastCursor.Active {
		cellRow := r.Grid.RowAbs(r.State.LastCursor.AbsRow)
		cell := &cellRow.Cells[r.State.LastCursor.Col]
		if cell.IsClean() {
			cell.MarkDirty()
			n := r.Compositor.Paint(cell, compositor.Params{
				Col: r.State.LastCursor.Col, Row: r.State.LastCursor.InViewRow,
				View: r.Grid.View, NumRows: r.Grid.NumRows,
				Selection: r.Selection, BlinkPhase: blinkPhase,
			})
			r.damageCell(r.State.LastCursor.Col, r.State.LastCursor.InViewRow, n)
		}
	}
	curAbs := mod(r.Grid.Offset+r.CursorRow, r.Grid.NumRows)
	if !r.State.LastCursor.Active || curAbs != r.State.LastCursor.AbsRow || r.CursorCol != r.State.LastCursor.Col {
		allClean = false
	}

	// 4. Flash / new-buffer / flash-just-ended full refresh.
	flashJustEnded := r.State.WasFlashing && !r.FlashActive
	isNewBuffer := buf != r.State.LastBuf
	if r.FlashActive || isNewBuffer || flashJustEnded {
		r.fillMargins(buf)
		r.markFullViewportDirty()
		allClean = false
	}

	// 5. Apply scroll damage.
	for _, rec := range r.Damage.Drain() {
		r.applyScrollDamage(buf, rec)
		allClean = false
	}

	// 6. Dispatch dirty rows.
	var rows []int
	for v := 0; v < r.Grid.TermRows; v++ {
		row := r.Grid.RowInView(v)
		if row.Dirty {
			rows = append(rows, v)
			row.Dirty = false
			r.Surface.Damage(0, v*r.Compositor.CellHeight, buf.Width, r.Compositor.CellHeight)
		}
	}
	r.Workers.Dispatch(buf, rows)

	// 7. Recompute blink activity.
	r.updateBlinkArm()

	// 8. Cursor visibility.
	visible := r.Grid.InView(curAbs)

	// 9. Fence.
	r.Workers.Fence()

	// 10. Paint cursor overlay.
	if visible && !r.HideCursor {
		inViewRow := mod(curAbs-r.Grid.View, r.Grid.NumRows)
		cellRow := r.Grid.RowAbs(curAbs)
		cell := &cellRow.Cells[r.CursorCol]
		cell.MarkDirty()
		n := r.Compositor.Paint(cell, compositor.Params{
			Col: r.CursorCol, Row: inViewRow,
			View: r.Grid.View, NumRows: r.Grid.NumRows,
			Selection: r.Selection, BlinkPhase: blinkPhase,
			HasCursor: true, CursorStyle: r.CursorStyle,
		})
		r.damageCell(r.CursorCol, inViewRow, n)
		r.State.LastCursor.Active = true
		r.State.LastCursor.AbsRow = curAbs
		r.State.LastCursor.Col = r.CursorCol
		r.State.LastCursor.InViewRow = inViewRow
	} else {
		r.State.LastCursor.Active = false
	}

	// 11. Early-out on an unchanged frame.
	if allClean {
		r.Pool.Release(buf)
		return nil
	}

	// 12. Flash tint.
	if r.FlashActive {
		r.paintFlashTint(buf)
	}

	// 13. Attach, commit.
	r.Surface.SetBufferScale(r.Scale)
	r.Surface.Attach(buf)
	r.Surface.Commit()
	r.State.LastBuf = buf
	r.State.WasFlashing = r.FlashActive
	return nil
}

func (r *Renderer) damageCell(col, viewRow, cellCols int) {
	if cellCols < 1 {
		cellCols = 1
	}
	r.Surface.Damage(col*r.Compositor.CellWidth, viewRow*r.Compositor.CellHeight, cellCols*r.Compositor.CellWidth, r.Compositor.CellHeight)
}

func (r *Renderer) markFullViewportDirty() {
	for v := 0; v < r.Grid.TermRows; v++ {
		row := r.Grid.RowInView(v)
		for i := range row.Cells {
			row.Cells[i].MarkDirty()
		}
		row.MarkDirty()
	}
}

// fillMargins paints any buffer area beyond the exact grid pixel extent —
// letterboxing from a window size that is not an exact multiple of the
// cell size — in the background color.
func (r *Renderer) fillMargins(buf *wlext.Buffer) {
	gw, gh := r.bufWidth(), r.bufHeight()
	if buf.Width <= gw && buf.Height <= gh {
		return
	}
	surf := &PixelBufferSurface{Buf: buf}
	bg := r.Compositor.Palette.Bg
	if buf.Width > gw {
		surf.FillRect(compositor.OpSrc, bg, compositor.Rect{X: gw, Y: 0, W: buf.Width - gw, H: buf.Height})
		r.Surface.Damage(gw, 0, buf.Width-gw, buf.Height)
	}
	if buf.Height > gh {
		surf.FillRect(compositor.OpSrc, bg, compositor.Rect{X: 0, Y: gh, W: buf.Width, H: buf.Height - gh})
		r.Surface.Damage(0, gh, buf.Width, buf.Height-gh)
	}
}

// applyScrollDamage implements spec.md §4.3: a memmove of the moved band
// within the pixel buffer, followed by a damage rectangle over the
// destination.
func (r *Renderer) applyScrollDamage(buf *wlext.Buffer, rec grid.ScrollDamage) {
	srcStart, dstStart, moved := rec.SrcDst()
	if moved <= 0 {
		return
	}
	ch := r.Compositor.CellHeight
	length := moved * ch * buf.Stride
	srcOff := srcStart * ch * buf.Stride
	dstOff := dstStart * ch * buf.Stride
	if srcOff < 0 || dstOff < 0 || srcOff+length > len(buf.Pix) || dstOff+length > len(buf.Pix) {
		return
	}
	copy(buf.Pix[dstOff:dstOff+length], buf.Pix[srcOff:srcOff+length])
	r.Surface.Damage(0, dstStart*ch, buf.Width, moved*ch)
}

func (r *Renderer) updateBlinkArm() {
	if r.Blink == nil {
		return
	}
	anyBlink := false
	for v := 0; v < r.Grid.TermRows && !anyBlink; v++ {
		row := r.Grid.RowInView(v)
		for i := range row.Cells {
			if row.Cells[i].Has(grid.Blink) {
				anyBlink = true
				break
			}
		}
	}
	if anyBlink {
		_ = r.Blink.Arm(0)
	} else {
		r.Blink.Disarm()
	}
}

// paintFlashTint OVER-composites a full-surface translucent yellow tint,
// spec.md §4.4 step 12's visual bell.
func (r *Renderer) paintFlashTint(buf *wlext.Buffer) {
	surf := &PixelBufferSurface{Buf: buf}
	tint := color.WithAlpha(color.Opaque(255, 255, 0), 0x4000)
	surf.FillRect(compositor.OpOver, tint, compositor.Rect{X: 0, Y: 0, W: buf.Width, H: buf.Height})
	r.Surface.Damage(0, 0, buf.Width, buf.Height)
}

// Shutdown stops the worker pool's goroutines.
func (r *Renderer) Shutdown() { r.Workers.Shutdown() }

func mod(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Package term implements Terminal, the aggregate spec.md §3 names but
// gives no operations for: two ring grids (normal/alternate), one active
// pointer, palette, cursor, selection, blink/flash state, and DPI scale.
// Grounded on the teacher's Buffer (buffer.go) — the single largest file
// in the teacher — generalized from "one screen + scrollback" to "two ring
// grids + one active pointer", keeping its mutex-guarded getter/setter
// shape.
package term

import (
	"sync"

	"github.com/phroun/waylterm/color"
	"github.com/phroun/waylterm/compositor"
	"github.com/phroun/waylterm/grid"
	"github.com/phroun/waylterm/render"
)

// CursorStyle is an alias of compositor.CursorStyle, re-exported with its
// constants so this package does not force every caller to import
// compositor just to set a cursor style.
type CursorStyle = compositor.CursorStyle

const (
	CursorBlock     = compositor.CursorBlock
	CursorUnderline = compositor.CursorUnderline
	CursorBar       = compositor.CursorBar
)

// Coord is a grid-absolute (row, col) selection endpoint, spec.md §3.
type Coord struct {
	Row, Col int
}

// Terminal owns both grids, the active palette, cursor, selection, and
// blink/flash state — spec.md §3's "Terminal" type.
type Terminal struct {
	mu sync.RWMutex

	normal *grid.Grid
	alt    *grid.Grid
	active *grid.Grid

	// savedNormalCursor holds the normal-grid cursor while alt is active,
	// restored on SwitchToNormal — grounded on buffer_scrollback.go's
	// save/restore-cursor-position pattern (generalized from
	// scrollback-relative save to alt-screen save).
	savedNormalCursor Coord
	usingAlt          bool

	Palette color.Palette

	CursorRow, CursorCol int
	CursorStyle          CursorStyle
	HideCursor           bool

	selection       compositor.Selection
	selectionActive bool

	blink *render.BlinkClock

	FlashActive bool

	Scale                 int
	CellWidth, CellHeight int

	damage *grid.DamageLog
}

// Option configures a Terminal at construction, functional-options style
// (SPEC_FULL.md §2's ambient config pattern — no config-file parsing
// belongs in this core).
type Option func(*Terminal)

// WithPalette overrides the default palette.
func WithPalette(p color.Palette) Option { return func(t *Terminal) { t.Palette = p } }

// WithCellSize sets the unscaled logical cell size in pixels.
func WithCellSize(w, h int) Option {
	return func(t *Terminal) { t.CellWidth, t.CellHeight = w, h }
}

// WithScrollback overrides the default scrollback line count.
func WithScrollback(lines int) Option {
	return func(t *Terminal) { t.normal = grid.NewGrid(t.normal.NumCols, t.normal.TermRows, t.normal.TermRows+lines) }
}

// NewTerminal constructs a Terminal with a fresh normal grid (with
// scrollback) and alternate grid (without), both cols x rows, blink
// disarmed, cursor at the origin.
func NewTerminal(cols, rows int, opts ...Option) (*Terminal, error) {
	const defaultScrollback = 1000
	t := &Terminal{
		normal:     grid.NewGrid(cols, rows, rows+defaultScrollback),
		alt:        grid.NewGrid(cols, rows, rows),
		Palette:    color.DefaultPalette(),
		CursorStyle: CursorBlock,
		Scale:      1,
		CellWidth:  8,
		CellHeight: 16,
		damage:     &grid.DamageLog{},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.active = t.normal

	blink, err := render.NewBlinkClock(0)
	if err != nil {
		return nil, err
	}
	t.blink = blink

	return t, nil
}

// Grid returns the active grid (normal or alternate).
func (t *Terminal) Grid() *grid.Grid {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Damage returns the scroll-damage log shared by the active grid's
// Renderer.
func (t *Terminal) Damage() *grid.DamageLog { return t.damage }

// Blink returns the terminal's BlinkClock, for wiring into a Renderer.
func (t *Terminal) Blink() *render.BlinkClock { return t.blink }

// UsingAlt reports whether the alternate screen is active.
func (t *Terminal) UsingAlt() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.usingAlt
}

// SwitchToAlt activates the alternate grid (DEC private mode 1049's
// trigger; parsing the escape sequence itself is the state machine's job,
// external to this core). The normal grid's cursor is saved and the
// cursor repositioned to the alt grid's origin.
func (t *Terminal) SwitchToAlt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.usingAlt {
		return
	}
	t.savedNormalCursor = Coord{Row: t.CursorRow, Col: t.CursorCol}
	t.active = t.alt
	t.usingAlt = true
	t.CursorRow, t.CursorCol = 0, 0
}

// SwitchToNormal deactivates the alternate grid, restoring the cursor
// position the normal grid had when SwitchToAlt was called.
func (t *Terminal) SwitchToNormal() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.usingAlt {
		return
	}
	t.active = t.normal
	t.usingAlt = false
	t.CursorRow, t.CursorCol = t.savedNormalCursor.Row, t.savedNormalCursor.Col
}

// SetSelection sets both selection endpoints together, enforcing spec.md
// §3's invariant that selection is always either both-set or both-unset —
// grounded on buffer_selection.go's selStartX/Y, selEndX/Y pair, which the
// teacher likewise only ever mutates together.
func (t *Terminal) SetSelection(start, end Coord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = compositor.Selection{
		Start: compositor.Coord{Row: start.Row, Col: start.Col},
		End:   compositor.Coord{Row: end.Row, Col: end.Col},
	}
	t.selectionActive = true
}

// ClearSelection unsets both endpoints.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection = compositor.Selection{Start: compositor.Coord{Col: -1}, End: compositor.Coord{Col: -1}}
	t.selectionActive = false
}

// Selection returns the current selection for a Renderer/CellCompositor
// frame; inactive selections carry the col==-1 sentinel on both ends.
func (t *Terminal) Selection() compositor.Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selectionActive {
		return compositor.Selection{Start: compositor.Coord{Col: -1}, End: compositor.Coord{Col: -1}}
	}
	return t.selection
}

// ArmBlink arms the blink clock at its default 500ms period (spec.md
// §4.5); no-op if already armed.
func (t *Terminal) ArmBlink() error { return t.blink.Arm(0) }

// DisarmBlink stops the blink clock and resets phase to On.
func (t *Terminal) DisarmBlink() { t.blink.Disarm() }

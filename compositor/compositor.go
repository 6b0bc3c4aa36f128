package compositor

import (
	"github.com/phroun/waylterm/color"
	"github.com/phroun/waylterm/grid"
)

// CursorStyle selects the cursor decoration, spec.md §9.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorUnderline
	CursorBar
)

// BlinkPhase is the terminal-wide blink phase, spec.md §3.
type BlinkPhase int

const (
	BlinkOn BlinkPhase = iota
	BlinkOff
)

// Coord is a grid-absolute coordinate (not viewport-relative), spec.md §3.
type Coord struct {
	Col, Row int
}

// Selection is the closed grid-space interval of spec.md §3/§4.1. Col ==
// -1 on either end means "inactive" (spec.md's invariant: both set or both
// unset).
type Selection struct {
	Start, End Coord
}

// Active reports whether the selection is set.
func (s Selection) Active() bool { return s.Start.Col != -1 && s.End.Col != -1 }

// normalized returns (start, end) with start <= end lexicographically by
// (row, col), per spec.md §4.1's "Normalize so start <= end".
func (s Selection) normalized() (start, end Coord) {
	if s.Start.Row < s.End.Row || (s.Start.Row == s.End.Row && s.Start.Col <= s.End.Col) {
		return s.Start, s.End
	}
	return s.End, s.Start
}

// Contains reports whether grid-absolute coordinate probe is inside the
// selection, per spec.md §4.1's single-row/first-row/last-row/
// intermediate-row membership rules.
func (s Selection) Contains(probe Coord) bool {
	if !s.Active() {
		return false
	}
	start, end := s.normalized()
	if probe.Row < start.Row || probe.Row > end.Row {
		return false
	}
	if start.Row == end.Row {
		return probe.Row == start.Row && probe.Col >= start.Col && probe.Col <= end.Col
	}
	switch probe.Row {
	case start.Row:
		return probe.Col >= start.Col
	case end.Row:
		return probe.Col <= end.Col
	default:
		return true
	}
}

// Params bundles the per-paint inputs that are not already on the Cell
// itself: viewport position, cursor/blink/selection state, and the view
// offset needed to turn a viewport row into the grid-absolute row the
// selection is anchored in (spec.md §4.1: "the probed coord is
// (col, row+view) mod num_rows").
type Params struct {
	Col, Row int // viewport-relative

	HasCursor   bool
	CursorStyle CursorStyle
	BlinkPhase  BlinkPhase
	Selection   Selection

	View    int
	NumRows int
}

// CellCompositor is the pure per-cell painter of spec.md §4.1. Apart from
// Surface, which the caller points at the current frame's pixel buffer, it
// holds no per-frame state of its own; every other per-paint input arrives
// through Paint's arguments.
type CellCompositor struct {
	Font    Font
	Surface PixelSurface

	Palette *color.Palette

	CellWidth, CellHeight int
}

// Paint paints one cell and returns the number of grid columns it wrote
// (>=1), so the caller can emit a surface-damage rectangle covering the
// full glyph extent. It is a no-op (returns 0) if the cell is already
// clean.
func (cc *CellCompositor) Paint(cell *grid.Cell, p Params) int {
	if cell.IsClean() {
		return 0
	}

	probe := Coord{Col: p.Col, Row: mod(p.Row+p.View, p.NumRows)}
	selected := p.Selection.Contains(probe)
	blockCursor := p.HasCursor && p.CursorStyle == CursorBlock

	fg, bg := cc.resolveColors(cell)

	// Triple-XOR reverse: an even count of "reversing" sources cancels.
	flip := blockCursor
	if cell.Has(grid.Reverse) {
		flip = !flip
	}
	if selected {
		flip = !flip
	}
	if flip {
		fg, bg = bg, fg
	}

	if cell.Has(grid.Blink) && p.BlinkPhase == BlinkOff {
		fg = bg
	}

	bgAlpha := cc.Palette.Alpha
	if blockCursor {
		bgAlpha = 0xffff
	}
	bgColor := color.WithAlpha(bg, bgAlpha)

	if cell.Has(grid.Dim) {
		fg = fg.Dim()
	}

	if blockCursor && cc.Palette.HasCursorOverride {
		fg = cc.Palette.CursorText
		bgColor = cc.Palette.CursorCursor
	}

	cellX := p.Col * cc.CellWidth
	cellY := p.Row * cc.CellHeight

	cellCols := 1
	glyph, haveGlyph := cc.glyphFor(cell)
	if haveGlyph {
		cellCols = glyph.Cols
		if cellCols < 1 {
			cellCols = 1
		}
	}

	cc.Surface.FillRect(OpSrc, bgColor, Rect{X: cellX, Y: cellY, W: cc.CellWidth * cellCols, H: cc.CellHeight})

	if haveGlyph && cell.WC != 0 && !cell.Has(grid.Conceal) && !(cell.Has(grid.Blink) && p.BlinkPhase == BlinkOff) {
		cc.Surface.CompositeGlyph(OpOver, glyph, fg, Rect{
			X: cellX + glyph.X, Y: cellY + glyph.Y, W: glyph.Width, H: glyph.Height,
		})
	}

	if cell.Has(grid.Underline) {
		cc.paintUnderline(cc.Font.Underline(), fg, cellX, cellY, cc.CellWidth)
	}
	if cell.Has(grid.Strikethrough) {
		cc.paintUnderline(cc.Font.Strikeout(), fg, cellX, cellY, cc.CellWidth)
	}

	if p.HasCursor {
		cursorColor := fg
		if cc.Palette.HasCursorOverride {
			cursorColor = cc.Palette.CursorText
		}
		cc.paintCursorDecoration(p.CursorStyle, cursorColor, cellX, cellY, cellCols)
	}

	cell.MarkClean()
	return cellCols
}

// resolveColors implements spec.md §4.1 step 1: pick each channel's source
// (the cell's own color or the palette default). cell.Reverse is
// deliberately NOT consulted here — it is folded into Paint's XOR flip
// exactly once; factoring it in here too would cancel itself out for any
// cell using palette-default colors, breaking the XOR law of spec.md §8
// invariant 5.
func (cc *CellCompositor) resolveColors(cell *grid.Cell) (fg, bg color.Color) {
	if cell.Has(grid.HaveFg) {
		fg = color.Opaque(cell.Fg.R, cell.Fg.G, cell.Fg.B)
	} else {
		fg = cc.Palette.Fg
	}
	if cell.Has(grid.HaveBg) {
		bg = color.Opaque(cell.Bg.R, cell.Bg.G, cell.Bg.B)
	} else {
		bg = cc.Palette.Bg
	}
	return fg, bg
}

func (cc *CellCompositor) glyphFor(cell *grid.Cell) (Glyph, bool) {
	if cell.WC == 0 {
		return Glyph{}, false
	}
	g, ok := cc.Font.GlyphFor(cell.WC)
	if !ok {
		// spec.md §7 GlyphMissing: background+cursor only, cell_cols=1.
		return Glyph{}, false
	}
	return g, true
}

func (cc *CellCompositor) paintUnderline(m Metrics, fg color.Color, cellX, cellY, width int) {
	ext := cc.Font.Extents()
	baseline := cellY + ext.Ascent
	y := baseline - m.Position - m.Thickness/2
	cc.Surface.FillRect(OpOver, fg, Rect{X: cellX, Y: y, W: width, H: m.Thickness})
}

func (cc *CellCompositor) paintCursorDecoration(style CursorStyle, cursorColor color.Color, cellX, cellY, cellCols int) {
	switch style {
	case CursorBar:
		cc.Surface.FillRect(OpOver, cursorColor, Rect{X: cellX, Y: cellY, W: 1, H: cc.CellHeight})
	case CursorUnderline:
		m := cc.Font.Underline()
		ext := cc.Font.Extents()
		baseline := cellY + ext.Ascent
		y := baseline - m.Position - m.Thickness/2
		cc.Surface.FillRect(OpOver, cursorColor, Rect{X: cellX, Y: y, W: cc.CellWidth * cellCols, H: m.Thickness})
	case CursorBlock:
		// Handled entirely via the fg/bg swap in Paint; no overlay here.
	}
}

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

package compositor

import (
	"testing"

	"github.com/phroun/waylterm/color"
	"github.com/phroun/waylterm/grid"
	"github.com/stretchr/testify/require"
)

// fakeFont is a minimal Font double: every printable rune has a 1-col
// alpha-mask glyph, used only to exercise CellCompositor's own logic.
type fakeFont struct{}

func (fakeFont) GlyphFor(wc rune) (Glyph, bool) {
	if wc == 0 {
		return Glyph{}, false
	}
	if wc == 'X' { // sentinel for "missing glyph"
		return Glyph{}, false
	}
	return Glyph{Pix: []byte{0xff}, Width: 1, Height: 1, Cols: 1, Format: AlphaMask}, true
}
func (fakeFont) Underline() Metrics { return Metrics{Position: 2, Thickness: 1} }
func (fakeFont) Strikeout() Metrics { return Metrics{Position: 5, Thickness: 1} }
func (fakeFont) Extents() Extents   { return Extents{Height: 16, Ascent: 12, Descent: 4} }

// fakeSurface records every fill/composite call for assertions.
type fakeSurface struct {
	fills      []fillCall
	composites []compositeCall
}
type fillCall struct {
	op  Op
	c   color.Color
	r   Rect
}
type compositeCall struct {
	op  Op
	g   Glyph
	fg  color.Color
	dst Rect
}

func (s *fakeSurface) FillRect(op Op, c color.Color, r Rect) {
	s.fills = append(s.fills, fillCall{op, c, r})
}
func (s *fakeSurface) CompositeGlyph(op Op, g Glyph, fg color.Color, dst Rect) {
	s.composites = append(s.composites, compositeCall{op, g, fg, dst})
}

func newCompositor(surf *fakeSurface) *CellCompositor {
	pal := color.DefaultPalette()
	return &CellCompositor{
		Font:       fakeFont{},
		Surface:    surf,
		Palette:    &pal,
		CellWidth:  8,
		CellHeight: 16,
	}
}

func TestCompositorSkipsCleanCell(t *testing.T) {
	surf := &fakeSurface{}
	cc := newCompositor(surf)
	cell := grid.Cell{WC: 'a'}
	cell.MarkClean()

	n := cc.Paint(&cell, Params{NumRows: 24})
	require.Equal(t, 0, n)
	require.Empty(t, surf.fills)
	require.Empty(t, surf.composites)
}

func TestCompositorPaintsAndMarksClean(t *testing.T) {
	surf := &fakeSurface{}
	cc := newCompositor(surf)
	cell := grid.Cell{WC: 'a'}

	n := cc.Paint(&cell, Params{Col: 3, Row: 2, NumRows: 24})
	require.Equal(t, 1, n)
	require.True(t, cell.IsClean())
	require.Len(t, surf.fills, 1)
	require.Len(t, surf.composites, 1)
	require.Equal(t, Rect{X: 24, Y: 32, W: 8, H: 16}, surf.fills[0].r)
}

func TestReverseXORLaw(t *testing.T) {
	pal := color.DefaultPalette()
	base := func(blockCursor, cellReverse, selected bool) (fg, bg color.Color) {
		cell := grid.Cell{WC: 'a'}
		if cellReverse {
			cell.SetAttr(grid.Reverse, true)
		}
		surf := &fakeSurface{}
		cc := &CellCompositor{Font: fakeFont{}, Surface: surf, Palette: &pal, CellWidth: 8, CellHeight: 16}
		sel := Selection{Start: Coord{-1, -1}, End: Coord{-1, -1}}
		style := CursorUnderline
		hasCursor := false
		if blockCursor {
			style = CursorBlock
			hasCursor = true
		}
		if selected {
			sel = Selection{Start: Coord{0, 0}, End: Coord{0, 0}}
		}
		cc.Paint(&cell, Params{Col: 0, Row: 0, NumRows: 24, HasCursor: hasCursor, CursorStyle: style, Selection: sel})
		// Background fill color tells us whether fg/bg were swapped.
		return color.Color{}, surf.fills[0].c
	}

	combos := []struct{ blockCursor, reverse, selected bool }{
		{false, false, false}, // 0 trues -> even -> no swap
		{true, false, false},  // 1 -> odd -> swap
		{false, true, false},
		{false, false, true},
		{true, true, false}, // 2 -> even -> no swap
		{true, false, true},
		{false, true, true},
		{true, true, true}, // 3 -> odd -> swap
	}

	pal2 := color.DefaultPalette()
	_, noSwapBg := base(false, false, false)
	require.Equal(t, pal2.Bg, noSwapBg)

	for _, c := range combos {
		trues := 0
		for _, b := range []bool{c.blockCursor, c.reverse, c.selected} {
			if b {
				trues++
			}
		}
		_, bg := base(c.blockCursor, c.reverse, c.selected)
		if trues%2 == 0 {
			require.Equalf(t, pal2.Bg, bg, "%+v expected no swap", c)
		} else {
			require.Equalf(t, pal2.Fg, bg, "%+v expected swap", c)
		}
	}
}

func TestBlinkOffEqualsBackgroundOnly(t *testing.T) {
	pal := color.DefaultPalette()

	renderBlinkOff := func() *fakeSurface {
		cell := grid.Cell{WC: 'a'}
		cell.SetAttr(grid.Blink, true)
		surf := &fakeSurface{}
		cc := &CellCompositor{Font: fakeFont{}, Surface: surf, Palette: &pal, CellWidth: 8, CellHeight: 16}
		cc.Paint(&cell, Params{NumRows: 24, BlinkPhase: BlinkOff})
		return surf
	}
	renderBgOnly := func() *fakeSurface {
		cell := grid.Cell{WC: 0}
		surf := &fakeSurface{}
		cc := &CellCompositor{Font: fakeFont{}, Surface: surf, Palette: &pal, CellWidth: 8, CellHeight: 16}
		cc.Paint(&cell, Params{NumRows: 24})
		return surf
	}

	blinkOff := renderBlinkOff()
	bgOnly := renderBgOnly()
	require.Equal(t, bgOnly.fills, blinkOff.fills)
	require.Empty(t, blinkOff.composites)
	require.Empty(t, bgOnly.composites)
}

func TestSelectionToggleIdempotent(t *testing.T) {
	pal := color.DefaultPalette()
	run := func(selected bool) color.Color {
		cell := grid.Cell{WC: 'a'}
		surf := &fakeSurface{}
		cc := &CellCompositor{Font: fakeFont{}, Surface: surf, Palette: &pal, CellWidth: 8, CellHeight: 16}
		sel := Selection{Start: Coord{-1, -1}, End: Coord{-1, -1}}
		if selected {
			sel = Selection{Start: Coord{0, 0}, End: Coord{0, 0}}
		}
		cc.Paint(&cell, Params{NumRows: 24, Selection: sel})
		return surf.fills[0].c
	}

	first := run(true)
	second := run(true)
	require.Equal(t, first, second)

	baseline := run(false)
	toggledTwice := run(true)
	toggledTwice = run(false)
	require.Equal(t, baseline, toggledTwice)
}

func TestGlyphMissingRendersBackgroundOnlyWithCellColsOne(t *testing.T) {
	surf := &fakeSurface{}
	cc := newCompositor(surf)
	cell := grid.Cell{WC: 'X'} // fakeFont reports no glyph for 'X'

	n := cc.Paint(&cell, Params{NumRows: 24})
	require.Equal(t, 1, n)
	require.Len(t, surf.fills, 1)
	require.Empty(t, surf.composites)
}

func TestSelectionMembershipMultiRow(t *testing.T) {
	sel := Selection{Start: Coord{Col: 5, Row: 2}, End: Coord{Col: 4, Row: 6}}
	require.True(t, sel.Contains(Coord{Col: 5, Row: 2}))
	require.True(t, sel.Contains(Coord{Col: 79, Row: 2}))
	require.False(t, sel.Contains(Coord{Col: 4, Row: 2}))
	require.True(t, sel.Contains(Coord{Col: 0, Row: 4}))
	require.True(t, sel.Contains(Coord{Col: 4, Row: 6}))
	require.False(t, sel.Contains(Coord{Col: 5, Row: 6}))
}

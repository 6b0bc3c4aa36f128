package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGridAllocatesAllRows(t *testing.T) {
	g := NewGrid(80, 24, 1000)
	require.Equal(t, 1000, g.NumRows)
	require.Equal(t, 80, g.NumCols)
	for i := 0; i < g.NumRows; i++ {
		require.NotNil(t, g.Rows[i])
	}
}

func TestAlternateGridHasNoScrollback(t *testing.T) {
	g := NewGrid(80, 24, 24)
	require.Equal(t, 24, g.NumRows)
}

func TestRowInViewModuloIndexing(t *testing.T) {
	g := NewGrid(10, 5, 8)
	g.View = 6 // wraps: rows 6,7,0,1,2
	for r := 0; r < g.TermRows; r++ {
		row := g.RowInView(r)
		require.NotNil(t, row)
	}
	require.True(t, g.ViewWraps())
	require.Equal(t, 2, g.ViewEnd())
}

func TestViewWrapsFalseWhenContiguous(t *testing.T) {
	g := NewGrid(10, 5, 8)
	g.View = 1
	require.False(t, g.ViewWraps())
	require.Equal(t, 5, g.ViewEnd())
}

func TestInViewHandlesWrap(t *testing.T) {
	g := NewGrid(10, 5, 8)
	g.View = 6
	require.True(t, g.InView(7))
	require.True(t, g.InView(0))
	require.True(t, g.InView(2))
	require.False(t, g.InView(3))
	require.False(t, g.InView(5))
}

func TestRowLogicalUsesOffset(t *testing.T) {
	g := NewGrid(10, 5, 8)
	g.Offset = 3
	row := g.RowLogical(0)
	other := g.RowAbs(3)
	require.Same(t, other, row)
}

func TestAllocRowReplacesContent(t *testing.T) {
	g := NewGrid(10, 5, 8)
	row := g.RowAbs(0)
	row.Cells[0].SetRune('x')
	fresh := g.AllocRow(0, 10)
	require.Equal(t, ' ', rune(fresh.Cells[0].WC))
	require.NotSame(t, row, fresh)
}

func TestFreeRowThenRowAbsReallocates(t *testing.T) {
	g := NewGrid(10, 5, 8)
	g.FreeRow(2)
	require.Nil(t, g.Rows[2])
	row := g.RowAbs(2)
	require.NotNil(t, row)
}

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetRuneClearsClean(t *testing.T) {
	c := EmptyCell()
	c.MarkClean()
	require.True(t, c.IsClean())
	c.SetRune('A')
	require.False(t, c.IsClean())
}

func TestSetAttrClearsCleanExceptForCleanItself(t *testing.T) {
	c := EmptyCell()
	c.MarkClean()
	c.SetAttr(Bold, true)
	require.False(t, c.IsClean())
	require.True(t, c.Has(Bold))

	c.MarkClean()
	c.SetAttr(Clean, false)
	require.False(t, c.IsClean())
}

func TestRowRecomputeDirty(t *testing.T) {
	r := NewRow(4)
	for i := range r.Cells {
		r.Cells[i].MarkClean()
	}
	r.RecomputeDirty()
	require.False(t, r.Dirty)

	r.Cells[2].SetRune('x')
	r.RecomputeDirty()
	require.True(t, r.Dirty)
	require.False(t, r.AllClean())
}

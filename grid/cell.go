// Package grid implements the logical character grid: cells with glyphs and
// attributes, rows that summarize per-cell dirtiness, and a fixed-capacity
// ring buffer of rows with a scrollback view, per spec.md §3–§4.2.
package grid

// Attrs is the per-cell attribute bitmask of spec.md §3. Attrs.Clean is the
// single bit the rest of the system treats as ground truth (spec.md §9):
// a cell is repainted if and only if Clean is unset.
type Attrs uint16

const (
	Bold Attrs = 1 << iota
	Italic
	Underline
	Strikethrough
	Blink
	Reverse
	Dim
	Conceal
	HaveFg
	HaveBg
	Clean
	URL
)

// UnderlineStyle is carried separately from the Underline bit, without
// consuming extra Attrs bits for a property only meaningful when Underline
// is set. The compositor does not consult it: every style is drawn as the
// same single underline rectangle. Generalized from
// phroun-purfecterm/cell.go's UnderlineStyle enum.
type UnderlineStyle uint8

const (
	UnderlineSingle UnderlineStyle = iota
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// RGB is a plain 24-bit color as stored on a Cell; it carries no alpha and
// is not premultiplied — that conversion happens once, in the compositor,
// from whichever of a Cell's colors or the active Palette wins color
// resolution (spec.md §4.1 step 1).
type RGB struct {
	R, G, B uint8
}

// Cell is one character slot in the grid (spec.md §3).
type Cell struct {
	WC    rune
	Attrs Attrs

	Fg, Bg RGB // meaningful only when Attrs&HaveFg / Attrs&HaveBg is set

	UnderlineStyle UnderlineStyle
}

// IsClean reports whether the cell's pixel region already matches its
// current attributes.
func (c *Cell) IsClean() bool { return c.Attrs&Clean != 0 }

// MarkClean sets the clean bit. Called by the compositor after a
// successful repaint, and nowhere else in this package.
func (c *Cell) MarkClean() { c.Attrs |= Clean }

// MarkDirty clears the clean bit. Any mutation of WC or of an attribute
// field must call this — spec.md §3's "mutation ... must clear clean".
func (c *Cell) MarkDirty() { c.Attrs &^= Clean }

// SetRune replaces the code point and clears Clean.
func (c *Cell) SetRune(wc rune) {
	c.WC = wc
	c.MarkDirty()
}

// SetAttr sets or clears one attribute bit and clears Clean (unless the bit
// being touched is Clean itself, which callers should use MarkClean/
// MarkDirty for directly).
func (c *Cell) SetAttr(bit Attrs, on bool) {
	if on {
		c.Attrs |= bit
	} else {
		c.Attrs &^= bit
	}
	if bit != Clean {
		c.MarkDirty()
	}
}

// Has reports whether the given attribute bit(s) are all set.
func (c *Cell) Has(bits Attrs) bool { return c.Attrs&bits == bits }

// EmptyCell returns a blank, dirty cell — the default contents of a freshly
// allocated row.
func EmptyCell() Cell {
	return Cell{WC: ' '}
}

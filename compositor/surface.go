package compositor

import "github.com/phroun/waylterm/color"

// Op is a compositing operator, spec.md §6: at minimum SRC (opaque copy)
// and OVER (alpha composite).
type Op int

const (
	OpSrc Op = iota
	OpOver
)

// Rect is a pixel-space rectangle.
type Rect struct {
	X, Y, W, H int
}

// PixelSurface is the opaque pixel-writable target of spec.md §6: the
// shared-memory buffer's pixels, as exposed to CellCompositor. A real
// implementation backs a Wayland wl_buffer; render.PixelBufferSurface
// writes into a wlext.Buffer's byte slice, which is what the render tests
// and the demo paint into.
type PixelSurface interface {
	// FillRect paints a solid color rectangle.
	FillRect(op Op, c color.Color, r Rect)
	// CompositeGlyph paints a glyph at dst's origin: for an AlphaMask
	// glyph, fg is used as the solid source color multiplied by the
	// glyph's per-pixel coverage; for a ColorBitmap glyph, fg is ignored
	// and the glyph's own RGBA is composited directly.
	CompositeGlyph(op Op, g Glyph, fg color.Color, dst Rect)
}

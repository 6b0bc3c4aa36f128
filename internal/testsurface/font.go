// Package testsurface provides software-only doubles for compositor.Font,
// wlext.BufferPool, wlext.CompositorSurface, and wlext.WindowSizeSignaler —
// no cgo, no real Wayland connection, no GPU. Used by the render package's
// tests and by cmd/waylterm-demo.
package testsurface

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/phroun/waylterm/compositor"
)

// BasicFont adapts golang.org/x/image/font/basicfont.Face7x13 to
// compositor.Font: one alpha-mask glyph per code point in the face's
// range, width 1 cell, with plausible underline/strikeout metrics.
type BasicFont struct {
	Face *basicfont.Face
}

// NewBasicFont constructs a BasicFont over the stock 7x13 bitmap face.
func NewBasicFont() *BasicFont {
	return &BasicFont{Face: basicfont.Face7x13}
}

func (f *BasicFont) GlyphFor(wc rune) (compositor.Glyph, bool) {
	if wc == 0 {
		return compositor.Glyph{}, false
	}
	dr, mask, maskp, _, ok := f.Face.Glyph(fixed.Point26_6{}, wc)
	if !ok || dr.Empty() {
		return compositor.Glyph{}, false
	}

	w, h := dr.Dx(), dr.Dy()
	pix := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			pix[y*w+x] = byte(a >> 8)
		}
	}
	return compositor.Glyph{
		Pix: pix, Width: w, Height: h,
		X: dr.Min.X, Y: dr.Min.Y, Cols: 1, Format: compositor.AlphaMask,
	}, true
}

func (f *BasicFont) Underline() compositor.Metrics { return compositor.Metrics{Position: 2, Thickness: 1} }
func (f *BasicFont) Strikeout() compositor.Metrics  { return compositor.Metrics{Position: 6, Thickness: 1} }
func (f *BasicFont) Extents() compositor.Extents {
	m := f.Face.Metrics()
	return compositor.Extents{
		Height:  m.Height.Round(),
		Ascent:  m.Ascent.Round(),
		Descent: m.Descent.Round(),
	}
}

package render

import (
	"github.com/phroun/waylterm/color"
	"github.com/phroun/waylterm/compositor"
	"github.com/phroun/waylterm/wlext"
)

// PixelBufferSurface adapts a wlext.Buffer (a raw shared-memory pixel
// region, stride and all) to compositor.PixelSurface, assuming the
// buffer's native format is premultiplied 32-bit BGRA — the layout
// wl_shm's WL_SHM_FORMAT_ARGB8888 stores in native (little-endian) byte
// order. A fresh adapter is bound to whichever buffer the pool hands back
// at the top of each frame (buffers are not reused surface-to-surface).
type PixelBufferSurface struct {
	Buf *wlext.Buffer
}

func (s *PixelBufferSurface) offset(x, y int) int { return y*s.Buf.Stride + x*4 }

func (s *PixelBufferSurface) FillRect(op compositor.Op, c color.Color, r compositor.Rect) {
	red, green, blue, alpha := c.RGBA8()
	for y := r.Y; y < r.Y+r.H; y++ {
		if y < 0 || y*s.Buf.Stride >= len(s.Buf.Pix) {
			continue
		}
		for x := r.X; x < r.X+r.W; x++ {
			off := s.offset(x, y)
			if off < 0 || off+4 > len(s.Buf.Pix) {
				continue
			}
			s.blendPixel(off, red, green, blue, alpha, op)
		}
	}
}

func (s *PixelBufferSurface) blendPixel(off int, red, green, blue, alpha uint8, op compositor.Op) {
	px := s.Buf.Pix
	if op == compositor.OpSrc || alpha == 0xff {
		px[off+0] = blue
		px[off+1] = green
		px[off+2] = red
		px[off+3] = alpha
		return
	}
	inv := uint32(0xff - alpha)
	px[off+0] = uint8((uint32(blue)*uint32(alpha) + uint32(px[off+0])*inv) / 0xff)
	px[off+1] = uint8((uint32(green)*uint32(alpha) + uint32(px[off+1])*inv) / 0xff)
	px[off+2] = uint8((uint32(red)*uint32(alpha) + uint32(px[off+2])*inv) / 0xff)
	px[off+3] = uint8(uint32(alpha) + uint32(px[off+3])*inv/0xff)
}

// CompositeGlyph paints an AlphaMask glyph (coverage × fg) or a
// ColorBitmap glyph (its own RGBA, OVER-composited) into dst.
func (s *PixelBufferSurface) CompositeGlyph(op compositor.Op, g compositor.Glyph, fg color.Color, dst compositor.Rect) {
	fgR, fgG, fgB, _ := fg.RGBA8()
	for row := 0; row < dst.H && row < g.Height; row++ {
		for col := 0; col < dst.W && col < g.Width; col++ {
			x := dst.X + col
			y := dst.Y + row
			off := s.offset(x, y)
			if off < 0 || off+4 > len(s.Buf.Pix) {
				continue
			}
			switch g.Format {
			case compositor.AlphaMask:
				coverage := g.Pix[row*g.Width+col]
				s.blendPixel(off, fgR, fgG, fgB, coverage, compositor.OpOver)
			case compositor.ColorBitmap:
				i := (row*g.Width + col) * 4
				s.blendPixel(off, g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3], compositor.OpOver)
			}
		}
	}
}

package color

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpaqueRoundTripsRGBA8(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{212, 212, 212},
		{1, 128, 254},
	}
	for _, c := range cases {
		got := Opaque(c.r, c.g, c.b)
		r, g, b, a := got.RGBA8()
		require.Equal(t, c.r, r)
		require.Equal(t, c.g, g)
		require.Equal(t, c.b, b)
		require.Equal(t, uint8(0xff), a)
	}
}

func TestDimHalvesChannelsNotAlpha(t *testing.T) {
	c := Opaque(200, 100, 40)
	d := c.Dim()
	require.Equal(t, c.A, d.A)
	require.Equal(t, c.R/2, d.R)
	require.Equal(t, c.G/2, d.G)
	require.Equal(t, c.B/2, d.B)
}

func TestWithAlphaScalesChannels(t *testing.T) {
	c := Opaque(255, 255, 255)
	half := WithAlpha(c, 0x7fff)
	require.Equal(t, uint16(0x7fff), half.A)
	require.InDelta(t, float64(half.A), float64(half.R), 2)
}

func TestFromARGB32(t *testing.T) {
	c := FromARGB32(0x00AABBCC, 0xffff)
	r, g, b, _ := c.RGBA8()
	require.Equal(t, uint8(0xAA), r)
	require.Equal(t, uint8(0xBB), g)
	require.Equal(t, uint8(0xCC), b)
}

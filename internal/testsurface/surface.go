package testsurface

import "github.com/phroun/waylterm/wlext"

// DamageRect records one Damage() call, for test assertions.
type DamageRect struct{ X, Y, W, H int }

// CompositorSurface is an in-memory wlext.CompositorSurface double: it
// records damage/attach/commit calls instead of talking to a real Wayland
// compositor, and completes frame callbacks synchronously.
type CompositorSurface struct {
	Damages  []DamageRect
	Attached *wlext.Buffer
	Commits  int
	Scale    int
}

func (s *CompositorSurface) Damage(x, y, w, h int) {
	s.Damages = append(s.Damages, DamageRect{x, y, w, h})
}
func (s *CompositorSurface) Attach(buf *wlext.Buffer) { s.Attached = buf }
func (s *CompositorSurface) Commit()                  { s.Commits++ }
func (s *CompositorSurface) SetBufferScale(k int)     { s.Scale = k }

// FrameCallback returns an already-closed channel: in this software
// double, the "next frame" is always immediately available, matching a
// compositor running as fast as the test can drive it.
func (s *CompositorSurface) FrameCallback() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// Reset clears recorded damage/commit state between simulated frames,
// keeping the attached buffer (a real compositor would keep showing it).
func (s *CompositorSurface) Reset() {
	s.Damages = nil
	s.Commits = 0
}

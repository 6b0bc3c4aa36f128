// Package wlext declares the external collaborator interfaces the
// rendering core only calls through, per spec.md §6: the compositor
// surface, the shared-memory buffer pool, and the PTY window-size control.
// Nothing in this package talks to an actual Wayland socket or PTY device
// node except PTYSignaler, which wraps creack/pty's ioctl helper.
package wlext

// CompositorSurface is the Wayland-facing surface the renderer commits
// pixel buffers to, spec.md §6's "Compositor surface".
type CompositorSurface interface {
	// Damage records a pixel rectangle the compositor must redraw from the
	// attached buffer.
	Damage(x, y, w, h int)
	// Attach binds buf as the surface's next contents at offset (0, 0).
	Attach(buf *Buffer)
	// Commit submits the attached buffer and accumulated damage.
	Commit()
	// SetBufferScale sets the surface's buffer_scale (DPI multiplier).
	SetBufferScale(k int)
	// FrameCallback requests a one-shot "done" notification bound to the
	// next frame; done is closed when the compositor delivers it.
	FrameCallback() (done <-chan struct{})
}

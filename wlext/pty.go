package wlext

import (
	"os"

	"github.com/creack/pty"
)

// WindowSizeSignaler is the host OS "set window size" control of spec.md
// §6: informs the PTY slave of the new terminal geometry after a resize.
type WindowSizeSignaler interface {
	// Signal reports the new geometry. xpixel/ypixel are the pixel width
	// and height (Resizer passes the widthPx/heightPx it was given);
	// returning an error never aborts the resize (render.ErrWindowSizeSignalFailed's
	// "log and continue" policy).
	Signal(rows, cols, xpixel, ypixel int) error
}

// PTYSignaler is a WindowSizeSignaler backed by creack/pty, replacing the
// teacher's hand-rolled cgo ioctl(TIOCSWINSZ) (pty_unix.go) with the
// cgo-free ecosystem equivalent already used elsewhere in this pack.
type PTYSignaler struct {
	Master *os.File
}

// NewPTYSignaler wraps an already-open PTY master file descriptor.
func NewPTYSignaler(master *os.File) *PTYSignaler {
	return &PTYSignaler{Master: master}
}

// Signal implements WindowSizeSignaler via pty.Setsize.
func (p *PTYSignaler) Signal(rows, cols, xpixel, ypixel int) error {
	return pty.Setsize(p.Master, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
		X:    uint16(xpixel),
		Y:    uint16(ypixel),
	})
}

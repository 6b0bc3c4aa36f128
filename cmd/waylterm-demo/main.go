// Command waylterm-demo spawns a shell under a PTY and drives the
// rendering core (term.Terminal + render.Renderer) against the in-memory
// compositor/PTY doubles of internal/testsurface, proving the pipeline end
// to end without a real Wayland connection or GPU.
//
// Grounded on phroun-purfecterm/cli/terminal.go's main-loop shape (spawn
// PTY, read loop, render loop). The escape-sequence parser itself is out
// of this core's scope per spec.md §1 ("the PTY master and
// terminal-emulator state machine that mutates the grid" is an external
// collaborator): the byte-to-grid adapter below understands plain bytes,
// newlines, carriage returns and backspace, not ANSI — enough to prove the
// pipeline, not a second VT parser.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"

	"github.com/phroun/waylterm/compositor"
	"github.com/phroun/waylterm/grid"
	"github.com/phroun/waylterm/internal/testsurface"
	"github.com/phroun/waylterm/render"
	"github.com/phroun/waylterm/term"
)

func main() {
	cols := flag.Int("cols", 80, "terminal columns")
	rows := flag.Int("rows", 24, "terminal rows")
	workers := flag.Int("workers", 2, "render worker count")
	shell := flag.String("shell", defaultShell(), "shell to spawn")
	frameHz := flag.Int("fps", 30, "simulated compositor frame rate")
	flag.Parse()

	logger := log.With("component", "demo")

	t, err := term.NewTerminal(*cols, *rows)
	if err != nil {
		logger.Fatal("new terminal", "err", err)
	}

	font := testsurface.NewBasicFont()
	pool := testsurface.NewBufferPool(4)
	surf := &testsurface.CompositorSurface{}
	cc := &compositor.CellCompositor{
		Font:       font,
		Palette:    &t.Palette,
		CellWidth:  t.CellWidth,
		CellHeight: t.CellHeight,
	}

	renderer := render.NewRenderer(t.Grid(), t.Damage(), cc, pool, surf, t.Blink(), *workers)
	defer renderer.Shutdown()

	ptmx, cmd, err := spawnShell(*shell, *cols, *rows)
	if err != nil {
		logger.Fatal("spawn shell", "err", err)
	}
	defer ptmx.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	incoming := make(chan []byte, 64)
	go readLoop(ptmx, incoming, logger)

	ticker := time.NewTicker(time.Second / time.Duration(*frameHz))
	defer ticker.Stop()

	adapter := &byteGridAdapter{terminal: t}

	frames := 0
	for {
		select {
		case <-sig:
			logger.Info("shutting down")
			_ = cmd.Process.Kill()
			return
		case buf, ok := <-incoming:
			if !ok {
				logger.Info("shell exited")
				return
			}
			adapter.Feed(buf)
		case <-ticker.C:
			renderer.CursorRow, renderer.CursorCol = t.CursorRow, t.CursorCol
			renderer.CursorStyle = t.CursorStyle
			renderer.HideCursor = t.HideCursor
			renderer.Selection = t.Selection()
			renderer.FlashActive = t.FlashActive
			renderer.Scale = t.Scale
			if err := renderer.RenderFrame(); err != nil {
				logger.Warn("render frame", "err", err)
				continue
			}
			frames++
			if surf.Commits > 0 && frames%(*frameHz) == 0 {
				logger.Info("frame", "n", frames, "commits", surf.Commits, "damages", len(surf.Damages))
			}
			surf.Reset()
		}
	}
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func spawnShell(shell string, cols, rows int) (*os.File, *exec.Cmd, error) {
	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, nil, fmt.Errorf("pty start: %w", err)
	}
	return ptmx, cmd, nil
}

func readLoop(r io.Reader, out chan<- []byte, logger *log.Logger) {
	defer close(out)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			if err != io.EOF {
				logger.Debug("pty read", "err", err)
			}
			return
		}
	}
}

// byteGridAdapter is the minimal, non-ANSI byte-to-grid writer described
// in this file's doc comment: printable bytes advance the cursor and wrap
// at the right margin, '\n' moves down a logical row (scrolling the
// terminal's active grid's offset when already at the bottom), '\r'
// returns to column 0, and backspace moves left without erasing.
type byteGridAdapter struct {
	terminal *term.Terminal
}

func (a *byteGridAdapter) Feed(b []byte) {
	g := a.terminal.Grid()
	for _, by := range b {
		switch by {
		case '\n':
			a.newline(g)
		case '\r':
			a.terminal.CursorCol = 0
		case '\b', 0x7f:
			if a.terminal.CursorCol > 0 {
				a.terminal.CursorCol--
			}
		default:
			if by < 0x20 {
				continue
			}
			row := g.RowLogical(a.terminal.CursorRow)
			if a.terminal.CursorCol < len(row.Cells) {
				row.Cells[a.terminal.CursorCol].SetRune(rune(by))
				row.MarkDirty()
			}
			a.terminal.CursorCol++
			if a.terminal.CursorCol >= g.NumCols {
				a.terminal.CursorCol = 0
				a.newline(g)
			}
		}
	}
}

func (a *byteGridAdapter) newline(g *grid.Grid) {
	if a.terminal.CursorRow+1 < g.TermRows {
		a.terminal.CursorRow++
		return
	}
	// At the bottom of the viewport: advance the ring's write head by one
	// row and let the new logical bottom row start blank, the ring
	// equivalent of "scroll up by one" (spec.md §3's Grid ring). This demo
	// adapter does not bother emitting a DamageLog scroll record for the
	// memmove shortcut of spec.md §4.3 — it simply forces every viewport
	// cell dirty so the next frame repaints the shifted content at its new
	// pixel row, which is correct (if less efficient) for proving the
	// pipeline end to end.
	g.Offset = (g.Offset + 1) % g.NumRows
	g.View = g.Offset
	g.AllocRow(g.Offset+g.TermRows-1, g.NumCols)
	for v := 0; v < g.TermRows; v++ {
		row := g.RowInView(v)
		for i := range row.Cells {
			row.Cells[i].MarkDirty()
		}
		row.MarkDirty()
	}
}

package render

import "errors"

// Typed error kinds of spec.md §7. Where one is reported, it is wrapped
// with call-site context via fmt.Errorf("...: %w", ...); callers that only
// need to branch on kind use errors.Is against these sentinels.
var (
	// ErrTimerArmFailed names a blink-timer arm failure. Policy: log,
	// degrade blink to "always on", keep rendering. Nothing in this package
	// returns it: BlinkClock is built on time.Ticker, whose Reset cannot
	// fail, so NewBlinkClock and Arm always return a nil error.
	ErrTimerArmFailed = errors.New("render: blink timer arm failed")

	// ErrBufferAcquireFailed is returned by Renderer.RenderFrame when the
	// buffer pool is exhausted. Policy: skip this frame, retry next callback.
	ErrBufferAcquireFailed = errors.New("render: buffer pool exhausted")

	// ErrWindowSizeSignalFailed wraps the error Resizer.Resize gets when the
	// PTY window-size control call fails. Policy: log, continue — Resize
	// logs it and does not return it.
	ErrWindowSizeSignalFailed = errors.New("render: window size signal failed")

	// ErrGlyphMissing names the case of a font having no glyph for a code
	// point. Nothing in this module returns or logs it: compositor.glyphFor
	// handles the case by painting background and cursor only.
	ErrGlyphMissing = errors.New("render: glyph missing")
)

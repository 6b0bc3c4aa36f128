package render

import (
	"time"

	"github.com/charmbracelet/log"
)

// Phase is the terminal-wide blink phase, spec.md §3.
type Phase int

const (
	PhaseOn Phase = iota
	PhaseOff
)

// BlinkClock is the periodic blink timer of spec.md §4.5: fires at 500ms,
// toggling Phase; armed only while some visible cell is blinking, and
// disarmed (with Phase reset to On) once none remain.
//
// The concrete timer is a time.Ticker, armed/disarmed rather than
// stopped/recreated so TimerArmFailed can only occur once, at
// construction — mirroring the teacher's renderTicker ambient pattern for
// periodic redraw (cli/renderer.go).
type BlinkClock struct {
	ticker *time.Ticker
	period time.Duration
	active bool
	phase  Phase

	log *log.Logger
}

// NewBlinkClock constructs a disarmed clock. period defaults to 500ms
// (spec.md §4.5) if zero.
func NewBlinkClock(period time.Duration) (*BlinkClock, error) {
	if period <= 0 {
		period = 500 * time.Millisecond
	}
	t := time.NewTicker(period)
	t.Stop() // start disarmed; spec.md §4.5's "armed/disarmed" model
	return &BlinkClock{
		ticker: t,
		period: period,
		phase:  PhaseOn,
		log:    log.With("component", "blinkclock"),
	}, nil
}

// Arm starts the ticker if it is not already running, at period, or at the
// period given to NewBlinkClock if period is zero. The error result is
// always nil: resetting a time.Ticker cannot fail.
func (b *BlinkClock) Arm(period time.Duration) error {
	if b.active {
		return nil
	}
	if period <= 0 {
		period = b.period
	}
	b.ticker.Reset(period)
	b.active = true
	return nil
}

// Disarm stops the ticker and resets phase to On, per spec.md §4.5: "if
// blink.active but no visible cell has blink==1, disarm the timer and
// reset phase := On."
func (b *BlinkClock) Disarm() {
	if !b.active {
		return
	}
	b.ticker.Stop()
	b.active = false
	b.phase = PhaseOn
}

// Active reports whether the clock is currently armed.
func (b *BlinkClock) Active() bool { return b.active }

// Phase returns the current blink phase.
func (b *BlinkClock) Phase() Phase { return b.phase }

// C exposes the ticker channel for the render loop to select on; a
// receive should be followed by a call to Toggle.
func (b *BlinkClock) C() <-chan time.Time { return b.ticker.C }

// Toggle flips the phase on a timer fire.
func (b *BlinkClock) Toggle() {
	if b.phase == PhaseOn {
		b.phase = PhaseOff
	} else {
		b.phase = PhaseOn
	}
}

// DegradeToAlwaysOn implements the ErrTimerArmFailed policy: log the error
// and disarm the clock, which resets Phase to On so blinking text shows
// steadily while rendering continues. A later Arm call (Renderer arms on
// any frame with a visible blinking cell) starts the clock again.
func (b *BlinkClock) DegradeToAlwaysOn(err error) {
	b.log.Error("blink timer arm failed, degrading to always-on", "err", err)
	b.Disarm()
}

// Package pomodoro models the focus timer as an explicit state machine
// driven by Tick calls carrying wall-clock time. Nothing here owns a
// goroutine or a platform timer; callers decide when ticks happen, which
// keeps every transition deterministic and testable.
package pomodoro

import (
	"errors"
	"fmt"
	"time"
)

// State is the timer lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
	StateExpired State = "expired"
)

// Phase distinguishes focus sessions from breaks.
type Phase string

const (
	PhaseFocus Phase = "focus"
	PhaseBreak Phase = "break"
)

// ErrInvalidTransition is returned when an operation does not apply to the
// current state.
var ErrInvalidTransition = errors.New("invalid pomodoro transition")

// Config sets the phase lengths.
type Config struct {
	FocusDuration time.Duration
	BreakDuration time.Duration
}

// Timer is a single student's pomodoro. Not safe for concurrent use; the
// owning service serializes access.
type Timer struct {
	cfg       Config
	state     State
	phase     Phase
	remaining time.Duration
	lastTick  time.Time
}

// New returns an idle focus-phase timer.
func New(cfg Config) *Timer {
	if cfg.FocusDuration <= 0 {
		cfg.FocusDuration = 25 * time.Minute
	}
	if cfg.BreakDuration <= 0 {
		cfg.BreakDuration = 5 * time.Minute
	}
	return &Timer{
		cfg:       cfg,
		state:     StateIdle,
		phase:     PhaseFocus,
		remaining: cfg.FocusDuration,
	}
}

func (t *Timer) State() State             { return t.state }
func (t *Timer) Phase() Phase             { return t.phase }
func (t *Timer) Remaining() time.Duration { return t.remaining }

// Clock renders the remaining time as MM:SS.
func (t *Timer) Clock() string {
	total := int(t.remaining.Round(time.Second).Seconds())
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Start begins the countdown. From expired it starts the queued phase.
func (t *Timer) Start(now time.Time) error {
	switch t.state {
	case StateIdle, StateExpired:
		t.state = StateRunning
		t.lastTick = now
		return nil
	default:
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, t.state)
	}
}

// Pause suspends a running countdown, banking elapsed time first.
func (t *Timer) Pause(now time.Time) error {
	if t.state != StateRunning {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, t.state)
	}
	t.Tick(now)
	if t.state == StateRunning {
		t.state = StatePaused
	}
	return nil
}

// Resume continues a paused countdown.
func (t *Timer) Resume(now time.Time) error {
	if t.state != StatePaused {
		return fmt.Errorf("%w: resume from %s", ErrInvalidTransition, t.state)
	}
	t.state = StateRunning
	t.lastTick = now
	return nil
}

// Reset returns the timer to an idle focus phase from any state.
func (t *Timer) Reset() {
	t.state = StateIdle
	t.phase = PhaseFocus
	t.remaining = t.cfg.FocusDuration
	t.lastTick = time.Time{}
}

// Tick advances a running timer to now. When the countdown reaches zero the
// timer expires and queues the opposite phase: a finished focus session
// lines up a break, a finished break lines up the next focus session.
// Ticks in any other state are no-ops.
func (t *Timer) Tick(now time.Time) {
	if t.state != StateRunning {
		return
	}
	elapsed := now.Sub(t.lastTick)
	if elapsed <= 0 {
		return
	}
	t.lastTick = now
	t.remaining -= elapsed
	if t.remaining > 0 {
		return
	}

	t.state = StateExpired
	if t.phase == PhaseFocus {
		t.phase = PhaseBreak
		t.remaining = t.cfg.BreakDuration
	} else {
		t.phase = PhaseFocus
		t.remaining = t.cfg.FocusDuration
	}
}

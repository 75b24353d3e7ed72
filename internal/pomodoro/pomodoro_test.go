package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestTimer() *Timer {
	return New(Config{FocusDuration: 25 * time.Minute, BreakDuration: 5 * time.Minute})
}

func TestNewTimerIsIdleFocus(t *testing.T) {
	timer := newTestTimer()

	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, PhaseFocus, timer.Phase())
	assert.Equal(t, "25:00", timer.Clock())
}

func TestStartPauseResume(t *testing.T) {
	timer := newTestTimer()
	require.NoError(t, timer.Start(epoch))
	assert.Equal(t, StateRunning, timer.State())

	require.NoError(t, timer.Pause(epoch.Add(10*time.Minute)))
	assert.Equal(t, StatePaused, timer.State())
	assert.Equal(t, 15*time.Minute, timer.Remaining())

	// Time passing while paused must not drain the countdown.
	require.NoError(t, timer.Resume(epoch.Add(2*time.Hour)))
	timer.Tick(epoch.Add(2*time.Hour + 5*time.Minute))
	assert.Equal(t, 10*time.Minute, timer.Remaining())
}

func TestInvalidTransitions(t *testing.T) {
	timer := newTestTimer()

	assert.ErrorIs(t, timer.Pause(epoch), ErrInvalidTransition)
	assert.ErrorIs(t, timer.Resume(epoch), ErrInvalidTransition)

	require.NoError(t, timer.Start(epoch))
	assert.ErrorIs(t, timer.Start(epoch), ErrInvalidTransition)
}

func TestFocusExpiryQueuesBreak(t *testing.T) {
	timer := newTestTimer()
	require.NoError(t, timer.Start(epoch))

	timer.Tick(epoch.Add(26 * time.Minute))

	assert.Equal(t, StateExpired, timer.State())
	assert.Equal(t, PhaseBreak, timer.Phase())
	assert.Equal(t, 5*time.Minute, timer.Remaining())
}

func TestBreakExpiryQueuesFocus(t *testing.T) {
	timer := newTestTimer()
	require.NoError(t, timer.Start(epoch))
	timer.Tick(epoch.Add(25 * time.Minute))
	require.Equal(t, PhaseBreak, timer.Phase())

	require.NoError(t, timer.Start(epoch.Add(30*time.Minute)))
	timer.Tick(epoch.Add(36 * time.Minute))

	assert.Equal(t, StateExpired, timer.State())
	assert.Equal(t, PhaseFocus, timer.Phase())
	assert.Equal(t, 25*time.Minute, timer.Remaining())
}

func TestTickIgnoredWhenNotRunning(t *testing.T) {
	timer := newTestTimer()
	timer.Tick(epoch.Add(time.Hour))
	assert.Equal(t, 25*time.Minute, timer.Remaining())

	require.NoError(t, timer.Start(epoch))
	require.NoError(t, timer.Pause(epoch.Add(time.Minute)))
	timer.Tick(epoch.Add(time.Hour))
	assert.Equal(t, 24*time.Minute, timer.Remaining())
}

func TestResetFromAnyState(t *testing.T) {
	timer := newTestTimer()
	require.NoError(t, timer.Start(epoch))
	timer.Tick(epoch.Add(26 * time.Minute))
	require.Equal(t, StateExpired, timer.State())

	timer.Reset()

	assert.Equal(t, StateIdle, timer.State())
	assert.Equal(t, PhaseFocus, timer.Phase())
	assert.Equal(t, 25*time.Minute, timer.Remaining())
}

func TestClockFormatting(t *testing.T) {
	timer := newTestTimer()
	require.NoError(t, timer.Start(epoch))
	timer.Tick(epoch.Add(24*time.Minute + 51*time.Second))
	assert.Equal(t, "00:09", timer.Clock())
}

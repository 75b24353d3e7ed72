package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/pkg/config"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

func newPomodoroFixture() (*PomodoroService, *time.Time) {
	svc := NewPomodoroService(config.PomodoroConfig{
		FocusDuration: 25 * time.Minute,
		BreakDuration: 5 * time.Minute,
	}, nil)
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestPomodoroServiceLifecycle(t *testing.T) {
	svc, clock := newPomodoroFixture()

	state := svc.State("stu-1")
	require.Equal(t, "idle", state.State)
	require.Equal(t, "focus", state.Phase)
	require.Equal(t, "25:00", state.Clock)

	state, err := svc.Start("stu-1")
	require.NoError(t, err)
	require.Equal(t, "running", state.State)

	*clock = clock.Add(10 * time.Minute)
	state = svc.State("stu-1")
	require.Equal(t, "15:00", state.Clock)

	state, err = svc.Pause("stu-1")
	require.NoError(t, err)
	require.Equal(t, "paused", state.State)

	// Paused time does not drain the countdown.
	*clock = clock.Add(time.Hour)
	state = svc.State("stu-1")
	require.Equal(t, "15:00", state.Clock)

	state, err = svc.Resume("stu-1")
	require.NoError(t, err)
	require.Equal(t, "running", state.State)

	// Running past zero expires into the queued break.
	*clock = clock.Add(16 * time.Minute)
	state = svc.State("stu-1")
	require.Equal(t, "expired", state.State)
	require.Equal(t, "break", state.Phase)
	require.Equal(t, "05:00", state.Clock)

	state, err = svc.Start("stu-1")
	require.NoError(t, err)
	require.Equal(t, "running", state.State)
	require.Equal(t, "break", state.Phase)
}

func TestPomodoroServiceInvalidTransitions(t *testing.T) {
	svc, _ := newPomodoroFixture()

	_, err := svc.Pause("stu-1")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.Resume("stu-1")
	require.Error(t, err)

	_, err = svc.Start("stu-1")
	require.NoError(t, err)
	_, err = svc.Start("stu-1")
	require.Error(t, err)
}

func TestPomodoroServiceReset(t *testing.T) {
	svc, clock := newPomodoroFixture()

	_, err := svc.Start("stu-1")
	require.NoError(t, err)
	*clock = clock.Add(5 * time.Minute)

	state := svc.Reset("stu-1")
	require.Equal(t, "idle", state.State)
	require.Equal(t, "focus", state.Phase)
	require.Equal(t, "25:00", state.Clock)
}

func TestPomodoroServiceTimersAreIsolated(t *testing.T) {
	svc, clock := newPomodoroFixture()

	_, err := svc.Start("stu-1")
	require.NoError(t, err)
	*clock = clock.Add(10 * time.Minute)

	require.Equal(t, "15:00", svc.State("stu-1").Clock)
	require.Equal(t, "25:00", svc.State("stu-2").Clock)
	require.Equal(t, "idle", svc.State("stu-2").State)
}

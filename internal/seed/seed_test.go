package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/timegrid"
)

func TestLoadParsesSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	payload := `[{"id":"evt-1","user_id":"stu-1","title":"Math AA HL","start":"2025-03-10T08:00:00Z","end":"2025-03-10T09:00:00Z","type":"subject"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	events, err := Load(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Math AA HL", events[0].Title)
}

func TestLoadRejectsMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDemoEventsLandInAnchorWeek(t *testing.T) {
	anchor := time.Date(2025, 3, 12, 15, 0, 0, 0, time.UTC) // a Wednesday
	events := DemoEvents("stu-1", anchor, time.Sunday)
	require.NotEmpty(t, events)

	week := timegrid.WeekOf(anchor, time.Sunday)
	weekEnd := week[0].AddDate(0, 0, timegrid.DaysPerWeek)
	for _, event := range events {
		require.Equal(t, "stu-1", event.UserID)
		require.True(t, event.End.After(event.Start))
		require.False(t, event.Start.Before(week[0]))
		require.True(t, event.Start.Before(weekEnd))
	}
}

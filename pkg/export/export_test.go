package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleWeek() WeekSchedule {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return WeekSchedule{
		Student:   "Ari Tan",
		WeekStart: monday.AddDate(0, 0, -1),
		Days: []Day{
			{Date: monday, Events: []Event{
				{Title: "Math AA HL", Category: "subject", Start: monday.Add(9 * time.Hour), End: monday.Add(10 * time.Hour)},
				{Title: "Chemistry IA", Category: "ia", Start: monday.Add(14 * time.Hour), End: monday.Add(15*time.Hour + 30*time.Minute)},
			}},
			{Date: monday.AddDate(0, 0, 1)},
		},
	}
}

func TestPDFExporterRender(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleWeek())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data[:5]), "%PDF-"))
}

func TestPDFExporterRejectsEmptyWeek(t *testing.T) {
	_, err := NewPDFExporter().Render(WeekSchedule{})
	require.Error(t, err)
}

func TestICSExporterRender(t *testing.T) {
	data, err := NewICSExporter().Render(sampleWeek())
	require.NoError(t, err)

	content := string(data)
	require.Contains(t, content, "BEGIN:VCALENDAR")
	require.Equal(t, 2, strings.Count(content, "BEGIN:VEVENT"))
	require.Contains(t, content, "SUMMARY:Math AA HL")
	// True event times survive into the feed.
	require.Contains(t, content, "20250310T090000Z")
}

func TestICSExporterRejectsEmptyWeek(t *testing.T) {
	_, err := NewICSExporter().Render(WeekSchedule{})
	require.Error(t, err)
}

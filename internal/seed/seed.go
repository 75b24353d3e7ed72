package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/timegrid"
)

// Load reads a JSON snapshot of timetable events from disk. The file is a
// plain array of events in the API's wire shape.
func Load(path string) ([]models.TimetableEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var events []models.TimetableEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return events, nil
}

type demoSlot struct {
	day      int // offset from the week's first day
	startHr  int
	startMin int
	duration time.Duration
	title    string
	kind     models.EventType
}

// Monday-anchored school week; offsets assume a Sunday first day.
var demoWeek = []demoSlot{
	{1, 8, 0, time.Hour, "Math AA HL", models.EventSubject},
	{1, 10, 0, time.Hour, "English A HL", models.EventSubject},
	{1, 14, 0, 90 * time.Minute, "Chemistry IA draft", models.EventIA},
	{2, 9, 0, time.Hour, "Chemistry HL", models.EventSubject},
	{2, 13, 0, time.Hour, "Spanish B SL", models.EventSubject},
	{2, 16, 0, time.Hour, "CAS: Football practice", models.EventCAS},
	{3, 8, 0, time.Hour, "History SL", models.EventSubject},
	{3, 11, 0, 2 * time.Hour, "EE research session", models.EventEE},
	{4, 9, 0, time.Hour, "Economics SL", models.EventSubject},
	{4, 15, 0, time.Hour, "Math AA unit test", models.EventTest},
	{5, 10, 0, time.Hour, "TOK seminar", models.EventSubject},
	{5, 17, 0, 30 * time.Minute, "Evening walk", models.EventWellbeing},
	{6, 10, 0, 2 * time.Hour, "Weekend revision", models.EventPersonal},
}

// DemoEvents builds a week of sample events for a fresh dev instance,
// anchored on the week containing anchor so the data always lands in view.
func DemoEvents(userID string, anchor time.Time, firstDay time.Weekday) []models.TimetableEvent {
	week := timegrid.WeekOf(anchor, firstDay)
	events := make([]models.TimetableEvent, 0, len(demoWeek))
	for i, slot := range demoWeek {
		day := week[slot.day]
		start := day.Add(time.Duration(slot.startHr)*time.Hour + time.Duration(slot.startMin)*time.Minute)
		events = append(events, models.TimetableEvent{
			ID:        fmt.Sprintf("demo-%02d", i+1),
			UserID:    userID,
			Title:     slot.title,
			Start:     start,
			End:       start.Add(slot.duration),
			Type:      slot.kind,
			CreatedAt: time.Now().UTC(),
		})
	}
	return events
}

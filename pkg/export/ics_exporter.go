package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICSExporter renders a week schedule as an iCalendar feed, one VEVENT per
// timetable entry with the true event times.
type ICSExporter struct {
	prodID string
}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{prodID: "-//ibhub//timetable//EN"}
}

// Render serializes the week into ICS bytes.
func (e *ICSExporter) Render(week WeekSchedule) ([]byte, error) {
	if len(week.Days) == 0 {
		return nil, fmt.Errorf("ics requires at least one day")
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.prodID)

	now := time.Now().UTC()
	weekTag := week.WeekStart.Format("20060102")
	n := 0
	for _, day := range week.Days {
		for _, event := range day.Events {
			n++
			uid := fmt.Sprintf("%s-%04d@ibhub", weekTag, n)
			ve := cal.AddEvent(uid)
			ve.SetDtStampTime(now)
			ve.SetStartAt(event.Start)
			ve.SetEndAt(event.End)
			ve.SetSummary(event.Title)
			if event.Category != "" {
				ve.SetDescription(fmt.Sprintf("Category: %s", event.Category))
			}
		}
	}

	return []byte(cal.Serialize()), nil
}

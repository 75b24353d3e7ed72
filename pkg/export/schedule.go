package export

import "time"

// Event is one timetable entry to render.
type Event struct {
	Title    string
	Category string
	Start    time.Time
	End      time.Time
}

// Day groups the events of a single calendar date.
type Day struct {
	Date   time.Time
	Events []Event
}

// WeekSchedule is the renderer-neutral shape of one exported week.
type WeekSchedule struct {
	Student   string
	WeekStart time.Time
	Days      []Day
}

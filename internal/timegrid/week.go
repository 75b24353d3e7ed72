package timegrid

import "time"

// DaysPerWeek is the number of columns in the week view.
const DaysPerWeek = 7

// WeekOf returns the 7 consecutive calendar dates spanning the week that
// contains anchor, starting on firstDay. Dates are truncated to local
// midnight and returned in ascending order. The result depends only on the
// week the anchor falls in, not on which day inside that week it is.
func WeekOf(anchor time.Time, firstDay time.Weekday) [DaysPerWeek]time.Time {
	day := Midnight(anchor)
	back := (int(day.Weekday()) - int(firstDay) + DaysPerWeek) % DaysPerWeek
	start := day.AddDate(0, 0, -back)

	var week [DaysPerWeek]time.Time
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// ShiftWeeks moves an anchor date by whole weeks. Week navigation always
// shifts the anchor itself so repeated prev/next cannot drift.
func ShiftWeeks(anchor time.Time, weeks int) time.Time {
	return anchor.AddDate(0, 0, weeks*DaysPerWeek)
}

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports calendar-day equality: same year, month and day in the
// timestamps' own locations.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

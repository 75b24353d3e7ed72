package dto

import "time"

// CreateEventRequest is the add-event form payload. Date and times arrive
// the way the form collects them: a calendar date plus two times of day on
// that same date.
type CreateEventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
	Type      string `json:"type" validate:"required,eventtype"`
}

// EventFormDefaults are the values the form resets to after a successful
// submission.
type EventFormDefaults struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Type      string `json:"type"`
}

// EventBlock is one positioned event inside a day column.
type EventBlock struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Label     string    `json:"label"`
	Top       float64   `json:"top"`
	Height    float64   `json:"height"`
	Truncated bool      `json:"truncated"`
	Completed bool      `json:"completed"`
}

// EventCategory pairs a category with its display color for the legend.
type EventCategory struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// WeekDay is a single column of the week view.
type WeekDay struct {
	Date    string       `json:"date"` // YYYY-MM-DD
	Weekday string       `json:"weekday"`
	IsToday bool         `json:"is_today"`
	Events  []EventBlock `json:"events"`
}

// WeekViewResponse is the full rendered week.
type WeekViewResponse struct {
	Anchor     string    `json:"anchor"`
	WeekStart  string    `json:"week_start"`
	WeekEnd    string    `json:"week_end"`
	PrevAnchor string    `json:"prev_anchor"`
	NextAnchor string    `json:"next_anchor"`
	Hours      []int     `json:"hours"`
	GridHeight float64   `json:"grid_height"`
	ScrollTop  float64   `json:"scroll_top"`
	AutoScroll bool      `json:"auto_scroll"`
	Days       []WeekDay `json:"days"`
}

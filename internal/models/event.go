package models

import (
	"fmt"
	"time"
)

// EventType classifies a timetable event. The category only selects a
// display color; it has no scheduling semantics.
type EventType string

const (
	EventSubject   EventType = "subject"
	EventIA        EventType = "ia"
	EventEE        EventType = "ee"
	EventCAS       EventType = "cas"
	EventExam      EventType = "exam"
	EventTest      EventType = "test"
	EventPersonal  EventType = "personal"
	EventWellbeing EventType = "wellbeing"
)

// EventTypes lists every valid category.
var EventTypes = []EventType{
	EventSubject, EventIA, EventEE, EventCAS,
	EventExam, EventTest, EventPersonal, EventWellbeing,
}

var eventColors = map[EventType]string{
	EventSubject:   "#3B82F6",
	EventIA:        "#8B5CF6",
	EventEE:        "#EC4899",
	EventCAS:       "#10B981",
	EventExam:      "#EF4444",
	EventTest:      "#F97316",
	EventPersonal:  "#64748B",
	EventWellbeing: "#14B8A6",
}

// Valid reports whether t is a member of the category enumeration.
func (t EventType) Valid() bool {
	_, ok := eventColors[t]
	return ok
}

// Color returns the display color token for a category. The mapping is
// total over the enumeration; anything else is an error rather than a
// silent default that would swallow a new category.
func (t EventType) Color() (string, error) {
	color, ok := eventColors[t]
	if !ok {
		return "", fmt.Errorf("no color defined for event type %q", t)
	}
	return color, nil
}

// TimetableEvent is one block on a student's weekly calendar.
type TimetableEvent struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	Start     time.Time `db:"start_at" json:"start"`
	End       time.Time `db:"end_at" json:"end"`
	Type      EventType `db:"event_type" json:"type"`
	Completed bool      `db:"completed" json:"completed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EventFilter narrows event listings to a half-open time range.
type EventFilter struct {
	UserID string
	From   time.Time
	To     time.Time
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

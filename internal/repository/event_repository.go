package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/timegrid"
)

// EventRepository persists timetable events in PostgreSQL. It honours the
// same contract as MemoryEventStore: inserts get fresh ids, listings come
// back ascending by start time.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert stores a new event, assigning id and creation time when absent.
func (r *EventRepository) Insert(ctx context.Context, event *models.TimetableEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO timetable_events (id, user_id, title, start_at, end_at, event_type, completed, created_at)
VALUES (:id, :user_id, :title, :start_at, :end_at, :event_type, :completed, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create timetable event: %w", err)
	}
	return nil
}

// ListOnDay returns the user's events for one calendar day, ascending by
// start time. Day bounds come from the date's own midnight, matching the
// calendar-day equality the in-memory store applies.
func (r *EventRepository) ListOnDay(ctx context.Context, userID string, day time.Time) ([]models.TimetableEvent, error) {
	from := timegrid.Midnight(day)
	return r.ListBetween(ctx, userID, from, from.AddDate(0, 0, 1))
}

// ListBetween returns events starting inside [from, to).
func (r *EventRepository) ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.TimetableEvent, error) {
	const query = `SELECT id, user_id, title, start_at, end_at, event_type, completed, created_at
FROM timetable_events WHERE user_id = $1 AND start_at >= $2 AND start_at < $3 ORDER BY start_at ASC`
	events := make([]models.TimetableEvent, 0)
	if err := r.db.SelectContext(ctx, &events, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list timetable events: %w", err)
	}
	return events, nil
}

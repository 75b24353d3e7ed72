package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/timegrid"
)

// MemoryEventStore keeps timetable events in memory, ordered by start time.
// It is the default store when no database is configured and the only place
// the event collection is mutated; readers always receive copies.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[string][]models.TimetableEvent
}

// NewMemoryEventStore returns an empty store.
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{events: make(map[string][]models.TimetableEvent)}
}

// Insert assigns a fresh id, appends the event and restores start-time
// order. Event counts per user are small, so a full re-sort is fine.
func (s *MemoryEventStore) Insert(_ context.Context, event *models.TimetableEvent) error {
	if event.UserID == "" {
		return fmt.Errorf("insert event: missing user id")
	}
	if !event.Type.Valid() {
		return fmt.Errorf("insert event: unknown type %q", event.Type)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.events[event.UserID], *event)
	sortByStart(list)
	s.events[event.UserID] = list
	return nil
}

// ListOnDay returns a fresh slice of the user's events whose start falls on
// the same calendar day as day, ascending by start time.
func (s *MemoryEventStore) ListOnDay(_ context.Context, userID string, day time.Time) ([]models.TimetableEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TimetableEvent, 0)
	for _, event := range s.events[userID] {
		if timegrid.SameDay(event.Start, day) {
			out = append(out, event)
		}
	}
	return out, nil
}

// ListBetween returns the user's events starting inside [from, to),
// ascending by start time.
func (s *MemoryEventStore) ListBetween(_ context.Context, userID string, from, to time.Time) ([]models.TimetableEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TimetableEvent, 0)
	for _, event := range s.events[userID] {
		if !event.Start.Before(from) && event.Start.Before(to) {
			out = append(out, event)
		}
	}
	return out, nil
}

// Seed loads the startup snapshot. Entries keep their ids when present so
// seed data stays addressable across restarts of a dev instance.
func (s *MemoryEventStore) Seed(events []models.TimetableEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, event := range events {
		if !event.Type.Valid() {
			return fmt.Errorf("seed event %q: unknown type %q", event.Title, event.Type)
		}
		if event.ID == "" {
			event.ID = uuid.NewString()
		}
		s.events[event.UserID] = append(s.events[event.UserID], event)
	}
	for userID := range s.events {
		sortByStart(s.events[userID])
	}
	return nil
}

// Count reports how many events a user has.
func (s *MemoryEventStore) Count(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events[userID])
}

func sortByStart(list []models.TimetableEvent) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Start.Before(list[j].Start)
	})
}

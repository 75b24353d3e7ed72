package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ibmastery/ibhub-api/internal/models"
)

func memEvent(userID, title string, start time.Time, d time.Duration) models.TimetableEvent {
	return models.TimetableEvent{
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    start.Add(d),
		Type:   models.EventPersonal,
	}
}

func TestMemoryEventStoreInsertAssignsIdentity(t *testing.T) {
	store := NewMemoryEventStore()
	event := memEvent("stu-1", "Revision", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), time.Hour)

	require.NoError(t, store.Insert(context.Background(), &event))
	require.NotEmpty(t, event.ID)
	require.False(t, event.Completed)
	require.False(t, event.CreatedAt.IsZero())
}

func TestMemoryEventStoreInsertRejectsBadInput(t *testing.T) {
	store := NewMemoryEventStore()

	noUser := memEvent("", "Revision", time.Now(), time.Hour)
	require.Error(t, store.Insert(context.Background(), &noUser))

	badType := memEvent("stu-1", "Revision", time.Now(), time.Hour)
	badType.Type = models.EventType("holiday")
	require.Error(t, store.Insert(context.Background(), &badType))
	require.Zero(t, store.Count("stu-1"))
}

func TestMemoryEventStoreListOnDayOrderedAscending(t *testing.T) {
	store := NewMemoryEventStore()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	late := memEvent("stu-1", "Evening study", day.Add(19*time.Hour), time.Hour)
	early := memEvent("stu-1", "Morning run", day.Add(7*time.Hour), 30*time.Minute)
	noon := memEvent("stu-1", "Math HL", day.Add(12*time.Hour), time.Hour)
	for _, e := range []*models.TimetableEvent{&late, &early, &noon} {
		require.NoError(t, store.Insert(context.Background(), e))
	}

	events, err := store.ListOnDay(context.Background(), "stu-1", day.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, []string{"Morning run", "Math HL", "Evening study"},
		[]string{events[0].Title, events[1].Title, events[2].Title})
}

func TestMemoryEventStoreListOnDayFiltersByCalendarDay(t *testing.T) {
	store := NewMemoryEventStore()
	monday := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	a := memEvent("stu-1", "Monday", monday, time.Hour)
	b := memEvent("stu-1", "Tuesday", tuesday, time.Hour)
	require.NoError(t, store.Insert(context.Background(), &a))
	require.NoError(t, store.Insert(context.Background(), &b))

	events, err := store.ListOnDay(context.Background(), "stu-1", monday)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Monday", events[0].Title)
}

func TestMemoryEventStoreListBetweenHalfOpen(t *testing.T) {
	store := NewMemoryEventStore()
	from := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	inside := memEvent("stu-1", "Inside", from.Add(36*time.Hour), time.Hour)
	atEnd := memEvent("stu-1", "Next week", to, time.Hour)
	require.NoError(t, store.Insert(context.Background(), &inside))
	require.NoError(t, store.Insert(context.Background(), &atEnd))

	events, err := store.ListBetween(context.Background(), "stu-1", from, to)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Inside", events[0].Title)
}

func TestMemoryEventStoreIsolatesUsers(t *testing.T) {
	store := NewMemoryEventStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	mine := memEvent("stu-1", "Mine", day, time.Hour)
	theirs := memEvent("stu-2", "Theirs", day, time.Hour)
	require.NoError(t, store.Insert(context.Background(), &mine))
	require.NoError(t, store.Insert(context.Background(), &theirs))

	events, err := store.ListOnDay(context.Background(), "stu-1", day)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Mine", events[0].Title)
}

func TestMemoryEventStoreSeedKeepsIDs(t *testing.T) {
	store := NewMemoryEventStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	seeded := memEvent("stu-1", "Seeded", day, time.Hour)
	seeded.ID = "seed-1"
	require.NoError(t, store.Seed([]models.TimetableEvent{seeded}))

	events, err := store.ListOnDay(context.Background(), "stu-1", day)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "seed-1", events[0].ID)
}

func TestMemoryEventStoreSeedRejectsUnknownType(t *testing.T) {
	store := NewMemoryEventStore()
	bad := memEvent("stu-1", "Bad", time.Now(), time.Hour)
	bad.Type = models.EventType("holiday")
	require.Error(t, store.Seed([]models.TimetableEvent{bad}))
}

func TestMemoryEventStoreReturnsCopies(t *testing.T) {
	store := NewMemoryEventStore()
	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	event := memEvent("stu-1", "Original", day, time.Hour)
	require.NoError(t, store.Insert(context.Background(), &event))

	first, err := store.ListOnDay(context.Background(), "stu-1", day)
	require.NoError(t, err)
	first[0].Title = "Mutated"

	second, err := store.ListOnDay(context.Background(), "stu-1", day)
	require.NoError(t, err)
	require.Equal(t, "Original", second[0].Title)
}

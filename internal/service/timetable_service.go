package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/timegrid"
	"github.com/ibmastery/ibhub-api/pkg/config"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	defaultStartTime = "09:00"
	defaultEndTime   = "10:00"
)

type eventStore interface {
	Insert(ctx context.Context, event *models.TimetableEvent) error
	ListOnDay(ctx context.Context, userID string, day time.Time) ([]models.TimetableEvent, error)
	ListBetween(ctx context.Context, userID string, from, to time.Time) ([]models.TimetableEvent, error)
}

// TimetableService renders the weekly calendar and accepts new events.
type TimetableService struct {
	store     eventStore
	cache     *CacheService
	grid      timegrid.Grid
	firstDay  time.Weekday
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTimetableService constructs the service.
func NewTimetableService(store eventStore, cache *CacheService, cfg config.CalendarConfig, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &TimetableService{
		store: store,
		cache: cache,
		grid: timegrid.Grid{
			StartHour:     cfg.StartHour,
			EndHour:       cfg.EndHour,
			PixelsPerHour: cfg.PixelsPerHour,
		},
		firstDay:  cfg.FirstDay,
		cacheTTL:  cfg.CacheTTL,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
		return models.EventType(fl.Field().String()).Valid()
	})
	return svc
}

// WeekView renders the week containing anchor for one student. Cached
// renders are reused per week start; the clock-dependent fields (today
// highlight, auto-scroll) are recomputed on every request so a cached
// response never points at yesterday.
func (s *TimetableService) WeekView(ctx context.Context, userID string, anchor time.Time) (*dto.WeekViewResponse, error) {
	week := timegrid.WeekOf(anchor, s.firstDay)
	now := s.now()

	key := weekViewKey(userID, week[0])
	var cached dto.WeekViewResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		s.refreshClockFields(&cached, week, now)
		return &cached, nil
	}

	resp, err := s.buildWeekView(ctx, userID, anchor, week, now)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.logger.Warn("week view cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return resp, nil
}

// AddEvent validates the add-event form and stores the event. Checks run in
// the order the form surfaces them: missing title first, then the time
// range. The stored week's cached view is invalidated so the new event is
// visible immediately.
func (s *TimetableService) AddEvent(ctx context.Context, userID string, req dto.CreateEventRequest) (*models.TimetableEvent, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}

	day, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	start, err := combine(day, req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM")
	}
	end, err := combine(day, req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	event := &models.TimetableEvent{
		UserID: userID,
		Title:  title,
		Start:  start,
		End:    end,
		Type:   models.EventType(req.Type),
	}
	if err := s.store.Insert(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store event")
	}

	weekStart := timegrid.WeekOf(start, s.firstDay)[0]
	if err := s.cache.Invalidate(ctx, weekViewKey(userID, weekStart)); err != nil {
		s.logger.Warn("week view cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("timetable event added",
		zap.String("user_id", userID),
		zap.String("event_id", event.ID),
		zap.String("type", string(event.Type)))
	return event, nil
}

// FormDefaults returns the values the add-event form opens with.
func (s *TimetableService) FormDefaults() dto.EventFormDefaults {
	return dto.EventFormDefaults{
		Date:      s.now().Format(dateLayout),
		StartTime: defaultStartTime,
		EndTime:   defaultEndTime,
		Type:      string(models.EventPersonal),
	}
}

// Categories returns every event category with its legend color.
func (s *TimetableService) Categories() ([]dto.EventCategory, error) {
	categories := make([]dto.EventCategory, 0, len(models.EventTypes))
	for _, t := range models.EventTypes {
		color, err := t.Color()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnknownCategory.Code, appErrors.ErrUnknownCategory.Status, appErrors.ErrUnknownCategory.Message)
		}
		categories = append(categories, dto.EventCategory{Type: string(t), Color: color})
	}
	return categories, nil
}

func (s *TimetableService) buildWeekView(ctx context.Context, userID string, anchor time.Time, week [timegrid.DaysPerWeek]time.Time, now time.Time) (*dto.WeekViewResponse, error) {
	events, err := s.store.ListBetween(ctx, userID, week[0], week[0].AddDate(0, 0, timegrid.DaysPerWeek))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable events")
	}

	days := make([]dto.WeekDay, 0, timegrid.DaysPerWeek)
	for _, day := range week {
		column := dto.WeekDay{
			Date:    day.Format(dateLayout),
			Weekday: day.Weekday().String(),
			IsToday: timegrid.SameDay(day, now),
			Events:  make([]dto.EventBlock, 0),
		}
		for _, event := range events {
			if !timegrid.SameDay(event.Start, day) {
				continue
			}
			block, visible := s.grid.Block(event.Start, event.End)
			if !visible {
				continue
			}
			color, err := event.Type.Color()
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrUnknownCategory, fmt.Sprintf("unknown event category %q", event.Type))
			}
			column.Events = append(column.Events, dto.EventBlock{
				ID:        event.ID,
				Title:     event.Title,
				Type:      string(event.Type),
				Color:     color,
				Start:     block.Start,
				End:       block.End,
				Label:     block.Label(),
				Top:       block.Top,
				Height:    block.Height,
				Truncated: block.Truncated,
				Completed: event.Completed,
			})
		}
		days = append(days, column)
	}

	resp := &dto.WeekViewResponse{
		Anchor:     timegrid.Midnight(anchor).Format(dateLayout),
		WeekStart:  week[0].Format(dateLayout),
		WeekEnd:    week[timegrid.DaysPerWeek-1].Format(dateLayout),
		PrevAnchor: timegrid.ShiftWeeks(timegrid.Midnight(anchor), -1).Format(dateLayout),
		NextAnchor: timegrid.ShiftWeeks(timegrid.Midnight(anchor), 1).Format(dateLayout),
		Hours:      s.grid.Hours(),
		GridHeight: s.grid.Height(),
		Days:       days,
	}
	s.refreshClockFields(resp, week, now)
	return resp, nil
}

// refreshClockFields recomputes everything that depends on the current
// instant rather than the requested week.
func (s *TimetableService) refreshClockFields(resp *dto.WeekViewResponse, week [timegrid.DaysPerWeek]time.Time, now time.Time) {
	viewingCurrentWeek := false
	for i, day := range week {
		if i < len(resp.Days) {
			resp.Days[i].IsToday = timegrid.SameDay(day, now)
		}
		if timegrid.SameDay(day, now) {
			viewingCurrentWeek = true
		}
	}

	resp.ScrollTop = 0
	resp.AutoScroll = false
	if viewingCurrentWeek {
		if offset, ok := s.grid.ScrollOffset(now); ok {
			resp.ScrollTop = offset
			resp.AutoScroll = true
		}
	}
}

func weekViewKey(userID string, weekStart time.Time) string {
	return fmt.Sprintf("weekview:%s:%s", userID, weekStart.Format(dateLayout))
}

func combine(day time.Time, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(timeLayout, clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

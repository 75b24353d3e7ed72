package service

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/pomodoro"
	"github.com/ibmastery/ibhub-api/pkg/config"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
)

// PomodoroService keeps one focus timer per student. Every request ticks the
// timer to the current instant before acting, so the countdown needs no
// server-side scheduler.
type PomodoroService struct {
	cfg    pomodoro.Config
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	timers map[string]*pomodoro.Timer
}

// NewPomodoroService constructs the service.
func NewPomodoroService(cfg config.PomodoroConfig, logger *zap.Logger) *PomodoroService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PomodoroService{
		cfg: pomodoro.Config{
			FocusDuration: cfg.FocusDuration,
			BreakDuration: cfg.BreakDuration,
		},
		logger: logger,
		now:    time.Now,
		timers: make(map[string]*pomodoro.Timer),
	}
}

// State reports the student's timer after advancing it to now.
func (s *PomodoroService) State(userID string) *dto.PomodoroStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := s.timer(userID)
	timer.Tick(s.now())
	return render(timer)
}

// Start begins the countdown.
func (s *PomodoroService) Start(userID string) (*dto.PomodoroStateResponse, error) {
	return s.transition(userID, func(t *pomodoro.Timer, now time.Time) error { return t.Start(now) })
}

// Pause suspends a running countdown.
func (s *PomodoroService) Pause(userID string) (*dto.PomodoroStateResponse, error) {
	return s.transition(userID, func(t *pomodoro.Timer, now time.Time) error { return t.Pause(now) })
}

// Resume continues a paused countdown.
func (s *PomodoroService) Resume(userID string) (*dto.PomodoroStateResponse, error) {
	return s.transition(userID, func(t *pomodoro.Timer, now time.Time) error { return t.Resume(now) })
}

// Reset returns the timer to an idle focus phase.
func (s *PomodoroService) Reset(userID string) *dto.PomodoroStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := s.timer(userID)
	timer.Reset()
	return render(timer)
}

func (s *PomodoroService) transition(userID string, op func(*pomodoro.Timer, time.Time) error) (*dto.PomodoroStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := s.timer(userID)
	now := s.now()
	timer.Tick(now)
	if err := op(timer, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, err.Error())
	}
	return render(timer), nil
}

// timer returns the student's timer, creating it on first use. Callers hold
// the mutex.
func (s *PomodoroService) timer(userID string) *pomodoro.Timer {
	timer, ok := s.timers[userID]
	if !ok {
		timer = pomodoro.New(s.cfg)
		s.timers[userID] = timer
	}
	return timer
}

func render(t *pomodoro.Timer) *dto.PomodoroStateResponse {
	return &dto.PomodoroStateResponse{
		State:            string(t.State()),
		Phase:            string(t.Phase()),
		Clock:            t.Clock(),
		RemainingSeconds: int(t.Remaining().Round(time.Second).Seconds()),
	}
}

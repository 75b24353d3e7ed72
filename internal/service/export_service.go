package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ibmastery/ibhub-api/internal/dto"
	"github.com/ibmastery/ibhub-api/internal/models"
	"github.com/ibmastery/ibhub-api/internal/timegrid"
	appErrors "github.com/ibmastery/ibhub-api/pkg/errors"
	"github.com/ibmastery/ibhub-api/pkg/export"
	"github.com/ibmastery/ibhub-api/pkg/jobs"
	"github.com/ibmastery/ibhub-api/pkg/storage"
)

type jobDispatcher interface {
	Enqueue(job jobs.Job) error
}

type exportUserDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ExportDownload is a resolved download: the file content plus metadata
// for the response headers.
type ExportDownload struct {
	Filename string
	Format   models.ExportFormat
	Data     []byte
}

// ExportService renders week timetables to files in the background. Job
// state lives in memory; the files and their signed download tokens are the
// durable part, and stale ones are swept by the cleanup loop.
type ExportService struct {
	store     eventStore
	users     exportUserDirectory
	queue     jobDispatcher
	files     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	pdf       *export.PDFExporter
	ics       *export.ICSExporter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	firstDay  time.Weekday
	resultTTL time.Duration
	now       func() time.Time

	mu   sync.RWMutex
	jobs map[string]*models.ExportJob
}

// ExportServiceConfig governs rendering and cleanup.
type ExportServiceConfig struct {
	FirstDay  time.Weekday
	ResultTTL time.Duration
}

// NewExportService constructs the export service.
func NewExportService(store eventStore, users exportUserDirectory, queue jobDispatcher, files *storage.LocalStorage, signer *storage.SignedURLSigner, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg ExportServiceConfig) *ExportService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		store:     store,
		users:     users,
		queue:     queue,
		files:     files,
		signer:    signer,
		pdf:       export.NewPDFExporter(),
		ics:       export.NewICSExporter(),
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		firstDay:  cfg.FirstDay,
		resultTTL: cfg.ResultTTL,
		now:       time.Now,
		jobs:      make(map[string]*models.ExportJob),
	}
}

// CreateJob registers an export job for the week containing the anchor date
// and enqueues its rendering.
func (s *ExportService) CreateJob(ctx context.Context, userID string, req dto.CreateExportRequest) (*dto.ExportJobResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	anchor, err := time.ParseInLocation(dateLayout, req.Anchor, time.Local)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "anchor must be YYYY-MM-DD")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		Format:    models.ExportFormat(req.Format),
		Status:    models.ExportStatusQueued,
		WeekStart: timegrid.WeekOf(anchor, s.firstDay)[0],
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(job.Format)}); err != nil {
		s.failJob(job.ID, "failed to enqueue export")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enqueue export job")
	}

	return s.jobResponse(job), nil
}

// GetStatus returns the job state, enforcing ownership.
func (s *ExportService) GetStatus(_ context.Context, userID, jobID string) (*dto.ExportJobResponse, error) {
	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	if job.UserID != userID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "export job belongs to another user")
	}
	return s.jobResponse(job), nil
}

// Process renders one queued job. It is the handler the job queue runs.
func (s *ExportService) Process(ctx context.Context, queued jobs.Job) error {
	s.mu.Lock()
	job, ok := s.jobs[queued.ID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("export job %s not registered", queued.ID)
	}
	job.Status = models.ExportStatusProcessing
	userID := job.UserID
	format := job.Format
	weekStart := job.WeekStart
	s.mu.Unlock()

	week, err := s.buildSchedule(ctx, userID, weekStart)
	if err != nil {
		s.failJob(queued.ID, err.Error())
		s.metrics.RecordExport(string(format), false)
		return err
	}

	var data []byte
	switch format {
	case models.ExportFormatPDF:
		data, err = s.pdf.Render(*week)
	case models.ExportFormatICS:
		data, err = s.ics.Render(*week)
	default:
		err = fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		s.failJob(queued.ID, err.Error())
		s.metrics.RecordExport(string(format), false)
		return err
	}

	relPath := fmt.Sprintf("%s/week-%s.%s", userID, weekStart.Format(dateLayout), format)
	if _, err := s.files.Save(relPath, data); err != nil {
		s.failJob(queued.ID, err.Error())
		s.metrics.RecordExport(string(format), false)
		return err
	}

	token, expiresAt, err := s.signer.Generate(queued.ID, relPath)
	if err != nil {
		s.failJob(queued.ID, err.Error())
		s.metrics.RecordExport(string(format), false)
		return err
	}
	downloadURL := "/api/v1/exports/download/" + token

	now := s.now().UTC()
	s.mu.Lock()
	job.Status = models.ExportStatusDone
	job.FilePath = relPath
	job.DownloadURL = &downloadURL
	job.ExpiresAt = &expiresAt
	job.FinishedAt = &now
	s.mu.Unlock()

	s.metrics.RecordExport(string(format), true)
	s.logger.Info("export rendered",
		zap.String("job_id", queued.ID),
		zap.String("format", string(format)),
		zap.String("file", relPath))
	return nil
}

// ResolveDownload validates a signed token and loads the rendered file.
func (s *ExportService) ResolveDownload(_ context.Context, token string) (*ExportDownload, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	s.mu.RLock()
	job, ok := s.jobs[jobID]
	s.mu.RUnlock()
	if !ok || job.Status != models.ExportStatusDone || job.FilePath != relPath {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}

	data, err := s.files.Read(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export file")
	}

	parts := strings.Split(relPath, "/")
	return &ExportDownload{
		Filename: parts[len(parts)-1],
		Format:   job.Format,
		Data:     data,
	}, nil
}

// RunCleanup starts the periodic sweep of expired files and finished jobs.
// It blocks until ctx is cancelled.
func (s *ExportService) RunCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupOnce()
		}
	}
}

func (s *ExportService) cleanupOnce() {
	deleted, err := s.files.CleanupOlderThan(s.resultTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	cutoff := s.now().UTC().Add(-s.resultTTL)

	s.mu.Lock()
	for id, job := range s.jobs {
		if job.FinishedAt != nil && job.FinishedAt.Before(cutoff) {
			delete(s.jobs, id)
		}
	}
	s.mu.Unlock()

	if len(deleted) > 0 {
		s.logger.Info("export cleanup", zap.Int("files_deleted", len(deleted)))
	}
}

func (s *ExportService) buildSchedule(ctx context.Context, userID string, weekStart time.Time) (*export.WeekSchedule, error) {
	events, err := s.store.ListBetween(ctx, userID, weekStart, weekStart.AddDate(0, 0, timegrid.DaysPerWeek))
	if err != nil {
		return nil, fmt.Errorf("load week events: %w", err)
	}

	student := ""
	if s.users != nil {
		if user, err := s.users.FindByID(ctx, userID); err == nil {
			student = strings.TrimSpace(user.FirstName + " " + user.LastName)
		}
	}

	week := &export.WeekSchedule{
		Student:   student,
		WeekStart: weekStart,
		Days:      make([]export.Day, 0, timegrid.DaysPerWeek),
	}
	for i := 0; i < timegrid.DaysPerWeek; i++ {
		date := weekStart.AddDate(0, 0, i)
		day := export.Day{Date: date}
		for _, event := range events {
			if !timegrid.SameDay(event.Start, date) {
				continue
			}
			day.Events = append(day.Events, export.Event{
				Title:    event.Title,
				Category: string(event.Type),
				Start:    event.Start,
				End:      event.End,
			})
		}
		week.Days = append(week.Days, day)
	}
	return week, nil
}

func (s *ExportService) failJob(id, message string) {
	now := s.now().UTC()
	s.mu.Lock()
	if job, ok := s.jobs[id]; ok {
		job.Status = models.ExportStatusFailed
		job.ErrorMessage = &message
		job.FinishedAt = &now
	}
	s.mu.Unlock()
}

func (s *ExportService) jobResponse(job *models.ExportJob) *dto.ExportJobResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &dto.ExportJobResponse{
		ID:          job.ID,
		Format:      string(job.Format),
		Status:      string(job.Status),
		WeekStart:   job.WeekStart.Format(dateLayout),
		DownloadURL: job.DownloadURL,
		ExpiresAt:   job.ExpiresAt,
		Error:       job.ErrorMessage,
		CreatedAt:   job.CreatedAt,
	}
}

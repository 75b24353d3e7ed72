package models

import "time"

// ExportFormat names a supported week export rendering.
type ExportFormat string

const (
	ExportFormatPDF ExportFormat = "pdf"
	ExportFormatICS ExportFormat = "ics"
)

// ExportStatus tracks the lifecycle of an export job.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "queued"
	ExportStatusProcessing ExportStatus = "processing"
	ExportStatusDone       ExportStatus = "done"
	ExportStatusFailed     ExportStatus = "failed"
)

// ExportJob is one asynchronous week export request.
type ExportJob struct {
	ID           string       `json:"id"`
	UserID       string       `json:"user_id"`
	Format       ExportFormat `json:"format"`
	Status       ExportStatus `json:"status"`
	WeekStart    time.Time    `json:"week_start"`
	FilePath     string       `json:"-"`
	DownloadURL  *string      `json:"download_url,omitempty"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
	ErrorMessage *string      `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	FinishedAt   *time.Time   `json:"finished_at,omitempty"`
}

package dto

import "time"

// CreateExportRequest asks for a rendering of one week of the timetable.
type CreateExportRequest struct {
	Anchor string `json:"anchor" validate:"required"` // YYYY-MM-DD, any day of the target week
	Format string `json:"format" validate:"required,oneof=pdf ics"`
}

// ExportJobResponse reports the lifecycle of an export job.
type ExportJobResponse struct {
	ID          string     `json:"id"`
	Format      string     `json:"format"`
	Status      string     `json:"status"`
	WeekStart   string     `json:"week_start"`
	DownloadURL *string    `json:"download_url,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

package models

import "time"

const (
	ExportPending = "pending"
	ExportRunning = "running"
	ExportDone    = "done"
	ExportFailed  = "failed"
)

// Export is a server-side PDF rendering of the notes document.
type Export struct {
	ID         string     `json:"id"`
	UserID     *int       `json:"user_id,omitempty"`
	Filter     Filter     `json:"filter"`
	Status     string     `json:"status"`
	FilePath   string     `json:"-"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type ExportRequest struct {
	Filter Filter `json:"filter"`
}

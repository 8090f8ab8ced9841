// Package state records the history of conversion runs in SQLite.
package state

import "time"

// RunStatus represents the status of a conversion run.
type RunStatus string

// Run status constants.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one recorded conversion.
type Run struct {
	ID          string     `json:"id"`
	Input       string     `json:"input"`
	Destination string     `json:"destination"`
	Dialect     string     `json:"dialect"`
	Status      RunStatus  `json:"status"`
	Tables      int        `json:"tables"`
	Rows        int64      `json:"rows"`
	Statements  int        `json:"statements"`
	Atomic      bool       `json:"atomic"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// Duration returns how long the run took, or zero while it is running.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// RunSummary carries the counters recorded when a run completes.
type RunSummary struct {
	Tables     int
	Rows       int64
	Statements int
	Atomic     bool
}

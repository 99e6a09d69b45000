// Package jobs tracks transcription job lifecycle and persists job state.
package jobs

import (
	"errors"
	"time"
)

// Status is a job lifecycle stage.
type Status string

const (
	StatusPending      Status = "pending"
	StatusChunking     Status = "chunking"
	StatusTranscribing Status = "transcribing"
	StatusMerging      Status = "merging"
	StatusSummarizing  Status = "summarizing"
	StatusDone         Status = "done"
	StatusFailed       Status = "failed"
)

// ErrNotFound is returned when a job ID is unknown to the store.
var ErrNotFound = errors.New("job not found")

// Job is one tracked transcription job.
type Job struct {
	ID        string    `json:"id"`
	MediaPath string    `json:"media_path"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed
}

// validTransition enforces the allowed state machine edges. Failed is
// reachable from every non-terminal stage; stages otherwise advance in
// pipeline order only.
func validTransition(from, to Status) bool {
	if to == StatusFailed {
		return !from.Terminal()
	}
	switch from {
	case StatusPending:
		return to == StatusChunking
	case StatusChunking:
		return to == StatusTranscribing
	case StatusTranscribing:
		return to == StatusMerging
	case StatusMerging:
		return to == StatusSummarizing || to == StatusDone
	case StatusSummarizing:
		return to == StatusDone
	default:
		return false
	}
}

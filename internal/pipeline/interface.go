// Package pipeline runs complete jobs: transcribe, write artifacts,
// summarize, tracking status at every stage.
package pipeline

import (
	"context"

	"podscribe/internal/jobs"
)

// Runner executes one job per media file from creation to a terminal
// status.
type Runner interface {
	// Run processes mediaPath end to end and returns the finished job.
	// The returned job is failed, with the cause as the error, when any
	// fatal stage breaks; degraded stages are absorbed upstream.
	Run(ctx context.Context, mediaPath string) (jobs.Job, error)
}

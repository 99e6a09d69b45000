package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"podscribe/internal/logger"
)

// Tracker creates jobs and applies validated status transitions,
// persisting every change through the configured Store.
type Tracker struct {
	store  Store
	logger logger.Logger
}

// NewTracker creates a Tracker. A nil store falls back to in-memory.
func NewTracker(store Store, log logger.Logger) *Tracker {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Tracker{store: store, logger: log}
}

// Create registers a new pending job for mediaPath.
func (t *Tracker) Create(ctx context.Context, mediaPath string) (Job, error) {
	now := time.Now().UTC()
	job := Job{
		ID:        uuid.NewString(),
		MediaPath: mediaPath,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.store.Save(ctx, job); err != nil {
		return Job{}, fmt.Errorf("save job: %w", err)
	}
	t.logger.Info(ctx, "Created job %s for %s", job.ID, mediaPath)
	return job, nil
}

// Transition advances the job to status, rejecting edges the state
// machine does not allow.
func (t *Tracker) Transition(ctx context.Context, id string, status Status) (Job, error) {
	job, err := t.store.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if job.Status == status {
		return job, nil
	}
	if !validTransition(job.Status, status) {
		return Job{}, fmt.Errorf("invalid transition: %s -> %s", job.Status, status)
	}

	job.Status = status
	job.UpdatedAt = time.Now().UTC()
	if err := t.store.Save(ctx, job); err != nil {
		return Job{}, fmt.Errorf("save job: %w", err)
	}
	t.logger.Debug(ctx, "Job %s -> %s", id, status)
	return job, nil
}

// Fail marks the job failed with the given cause. Failing a terminal
// job is rejected.
func (t *Tracker) Fail(ctx context.Context, id string, cause error) (Job, error) {
	job, err := t.store.Get(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if !validTransition(job.Status, StatusFailed) {
		return Job{}, fmt.Errorf("invalid transition: %s -> %s", job.Status, StatusFailed)
	}

	job.Status = StatusFailed
	if cause != nil {
		job.Error = cause.Error()
	}
	job.UpdatedAt = time.Now().UTC()
	if err := t.store.Save(ctx, job); err != nil {
		return Job{}, fmt.Errorf("save job: %w", err)
	}
	t.logger.Error(ctx, "Job %s failed: %v", id, cause)
	return job, nil
}

// Get returns the job by ID.
func (t *Tracker) Get(ctx context.Context, id string) (Job, error) {
	return t.store.Get(ctx, id)
}

// List returns all tracked jobs ordered by creation time.
func (t *Tracker) List(ctx context.Context) ([]Job, error) {
	return t.store.List(ctx)
}

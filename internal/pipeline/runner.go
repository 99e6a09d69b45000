package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"podscribe/internal/jobs"
	"podscribe/internal/summarize"
	"podscribe/internal/transcribe"
)

func (r *implRunner) Run(ctx context.Context, mediaPath string) (jobs.Job, error) {
	job, err := r.tracker.Create(ctx, mediaPath)
	if err != nil {
		return jobs.Job{}, fmt.Errorf("create job: %w", err)
	}

	if job, err = r.tracker.Transition(ctx, job.ID, jobs.StatusChunking); err != nil {
		return job, err
	}

	tr, err := r.transcriber.Transcribe(ctx, mediaPath, transcribe.Options{
		Language: r.language,
		Diarize:  r.diarize,
		Progress: r.stageProgress(ctx, job.ID),
	})
	if err != nil {
		return r.fail(ctx, job.ID, fmt.Errorf("transcribe: %w", err))
	}

	// No-op when the progress hook already advanced the status.
	if job, err = r.tracker.Transition(ctx, job.ID, jobs.StatusTranscribing); err != nil {
		return job, err
	}
	if job, err = r.tracker.Transition(ctx, job.ID, jobs.StatusMerging); err != nil {
		return job, err
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	if _, err := r.writer.WriteTranscript(ctx, base, tr); err != nil {
		return r.fail(ctx, job.ID, fmt.Errorf("write transcript: %w", err))
	}

	text := tr.PlainText()
	if r.summarizer == nil || strings.TrimSpace(text) == "" {
		if r.summarizer != nil {
			r.logger.Warn(ctx, "Transcript for %s is empty, skipping summarization", mediaPath)
		}
		return r.tracker.Transition(ctx, job.ID, jobs.StatusDone)
	}

	if job, err = r.tracker.Transition(ctx, job.ID, jobs.StatusSummarizing); err != nil {
		return job, err
	}

	summary, err := r.summarizer.Summarize(ctx, text, summarize.Options{
		Progress: r.stageProgress(ctx, job.ID),
	})
	if err != nil {
		return r.fail(ctx, job.ID, fmt.Errorf("summarize: %w", err))
	}

	if _, err := r.writer.WriteSummary(ctx, base, summary); err != nil {
		return r.fail(ctx, job.ID, fmt.Errorf("write summary: %w", err))
	}

	return r.tracker.Transition(ctx, job.ID, jobs.StatusDone)
}

// stageProgress logs stage progress and keeps the tracked status in step
// with the transcriber, which reports its first event once chunk
// extraction finishes.
func (r *implRunner) stageProgress(ctx context.Context, jobID string) func(current, total int, message string) {
	return func(current, total int, message string) {
		r.logger.Debug(ctx, "Job %s: %s (%d/%d)", jobID, message, current, total)
		if job, err := r.tracker.Get(ctx, jobID); err == nil && job.Status == jobs.StatusChunking {
			if _, err := r.tracker.Transition(ctx, jobID, jobs.StatusTranscribing); err != nil {
				r.logger.Warn(ctx, "Job %s: %v", jobID, err)
			}
		}
	}
}

func (r *implRunner) fail(ctx context.Context, jobID string, cause error) (jobs.Job, error) {
	job, err := r.tracker.Fail(ctx, jobID, cause)
	if err != nil {
		r.logger.Error(ctx, "Job %s: failed to record failure: %v", jobID, err)
	}
	return job, cause
}

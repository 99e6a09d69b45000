// Package media probes source files and slices them into time-bounded,
// transcription-ready audio segments using ffmpeg.
package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"podscribe/pkg/executor"
)

// Prober reports source media metadata.
type Prober interface {
	Duration(ctx context.Context, file string) (float64, error)
}

type implProber struct {
	executor executor.Executor
}

// NewProber creates a Prober backed by ffprobe.
func NewProber(exec executor.Executor) Prober {
	return &implProber{executor: exec}
}

// Duration returns the media duration in seconds.
func (p *implProber) Duration(ctx context.Context, file string) (float64, error) {
	out, err := p.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		file,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("ffprobe reported non-positive duration %v for %s", duration, file)
	}

	return duration, nil
}

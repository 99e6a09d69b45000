package summarize

import (
	"context"

	"podscribe/internal/progress"
)

// Options tunes one summarization run.
type Options struct {
	// Serial disables concurrent chunk summarization.
	Serial bool
	// Progress receives (completed, total, message) per summarized chunk.
	Progress progress.Func
}

// Summarizer produces a layered map-reduce summary of a long text.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts Options) (string, error)
}

package transcribe

import (
	"context"

	"podscribe/internal/progress"
	"podscribe/internal/transcript"
)

// Options tunes one transcription job.
type Options struct {
	// Language hint; empty means detect from the first segment.
	Language string
	// Diarize runs speaker assignment over the whole audio after merging.
	Diarize bool
	// Progress receives (completed, total, message) per transcribed segment.
	Progress progress.Func
}

// Transcriber converts a media file into a merged transcript via the
// chunked concurrent pipeline.
type Transcriber interface {
	Transcribe(ctx context.Context, mediaPath string, opts Options) (transcript.Transcript, error)
}

package stt

import (
	"context"

	"podscribe/internal/transcript"
)

// Result is the speech model's output for one audio file. Timestamps are
// local to that file; callers shift them into absolute media time.
type Result struct {
	Language string
	Segments []transcript.Segment
}

// Options tunes a single transcription call.
type Options struct {
	Language  string // empty = let the model detect
	BatchSize int
}

// Client is a speech-to-text service. Implementations must be safe for
// concurrent calls: the transcription workers share one client.
type Client interface {
	// Transcribe converts one audio file to timed text.
	Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error)
	// Align refines segment-level timestamps into word-level ones for the
	// given language. Returned segments are in the same local time domain
	// as the input.
	Align(ctx context.Context, segments []transcript.Segment, audioPath, language string) ([]transcript.Segment, error)
}

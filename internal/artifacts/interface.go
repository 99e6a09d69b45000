// Package artifacts renders finished jobs into output files: plain text,
// SRT, JSON and docx.
package artifacts

import (
	"context"

	"podscribe/internal/transcript"
)

// Writer renders job results into the output directory. File names are
// derived from the base name of the source media.
type Writer interface {
	// WriteTranscript writes base.txt, base.srt, base.json and base.docx
	// and returns the created paths.
	WriteTranscript(ctx context.Context, base string, tr transcript.Transcript) ([]string, error)
	// WriteSummary writes base_summary.md and base_summary.docx and
	// returns the created paths.
	WriteSummary(ctx context.Context, base, summary string) ([]string, error)
}

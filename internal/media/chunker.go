package media

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"podscribe/internal/logger"
	"podscribe/pkg/executor"
)

// Span is a half-open time window [Start, End) in absolute media seconds.
type Span struct {
	Start float64
	End   float64
}

// Segment is one materialized audio extract covering Span. Extracted is
// false when the segment points at the original source file, which must
// never be deleted by Cleanup.
type Segment struct {
	Path      string
	Span      Span
	Extracted bool
}

// SplitSpans partitions [0, duration) into consecutive chunkDuration-sized
// windows. Media at most 1.5x the chunk size is returned as a single span:
// the extraction overhead is not worth it for short recordings.
func SplitSpans(duration, chunkDuration float64) []Span {
	if duration <= 0 {
		return nil
	}
	if chunkDuration <= 0 || duration <= chunkDuration*1.5 {
		return []Span{{Start: 0, End: duration}}
	}

	count := int(math.Ceil(duration / chunkDuration))
	spans := make([]Span, 0, count)
	for start := 0.0; start < duration; start += chunkDuration {
		end := math.Min(start+chunkDuration, duration)
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// Chunker materializes spans of a media file as temporary WAV extracts.
type Chunker interface {
	// Extract splits file into transcription-ready segments. Segments are
	// contiguous, non-overlapping and cover the whole duration. The caller
	// owns the returned segments and must Cleanup them when done.
	Extract(ctx context.Context, file string, duration float64) ([]Segment, error)
	// Cleanup removes every extracted temp file, logging failures.
	Cleanup(ctx context.Context, segments []Segment)
}

type implChunker struct {
	executor      executor.Executor
	logger        logger.Logger
	chunkDuration float64
	sampleRate    int
	tempDir       string
}

// NewChunker creates a Chunker that writes extracts into tempDir.
func NewChunker(exec executor.Executor, log logger.Logger, chunkDuration float64, sampleRate int, tempDir string) Chunker {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &implChunker{
		executor:      exec,
		logger:        log,
		chunkDuration: chunkDuration,
		sampleRate:    sampleRate,
		tempDir:       tempDir,
	}
}

func (c *implChunker) Extract(ctx context.Context, file string, duration float64) ([]Segment, error) {
	spans := SplitSpans(duration, c.chunkDuration)
	if len(spans) == 0 {
		return nil, fmt.Errorf("no spans for duration %v", duration)
	}

	if len(spans) == 1 {
		return []Segment{{Path: file, Span: spans[0]}}, nil
	}

	if err := os.MkdirAll(c.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	segments := make([]Segment, 0, len(spans))

	for i, span := range spans {
		chunkPath := filepath.Join(c.tempDir, fmt.Sprintf("%s_chunk_%04d.wav", base, i))
		if err := c.extractSpan(ctx, file, chunkPath, span); err != nil {
			// Degrade to one unsplit span instead of failing the job when
			// ffmpeg is missing or errors on a cut.
			c.logger.Warn(ctx, "Audio extraction failed, falling back to unchunked transcription: %v", err)
			c.Cleanup(ctx, segments)
			return []Segment{{Path: file, Span: Span{Start: 0, End: duration}}}, nil
		}
		segments = append(segments, Segment{Path: chunkPath, Span: span, Extracted: true})
	}

	return segments, nil
}

// extractSpan cuts one span, resampled to mono 16-bit PCM at the configured
// rate so every segment reaches the speech model in a uniform format.
func (c *implChunker) extractSpan(ctx context.Context, file, out string, span Span) error {
	args := []string{
		"-i", file,
		"-ss", formatSeconds(span.Start),
		"-t", formatSeconds(span.End - span.Start),
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(c.sampleRate),
		"-ac", "1",
		"-y",
		out,
	}

	if _, err := c.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg extract span [%s, %s): %w",
			formatSeconds(span.Start), formatSeconds(span.End), err)
	}
	return nil
}

func (c *implChunker) Cleanup(ctx context.Context, segments []Segment) {
	for _, seg := range segments {
		if !seg.Extracted {
			continue
		}
		if err := os.Remove(seg.Path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn(ctx, "Failed to cleanup temp segment %s: %v", seg.Path, err)
		} else {
			c.logger.Debug(ctx, "Cleaned up temp segment: %s", seg.Path)
		}
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

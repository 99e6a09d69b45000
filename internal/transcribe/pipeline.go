package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"podscribe/internal/diarize"
	"podscribe/internal/media"
	"podscribe/internal/progress"
	"podscribe/internal/stt"
	"podscribe/internal/transcript"
	"podscribe/pkg/parallel"
)

// Transcribe runs the chunked pipeline: probe, extract segments,
// transcribe them concurrently, merge by absolute time, then optionally
// diarize the whole original audio. One failed segment degrades to an
// empty contribution; probe and extraction setup failures are fatal.
func (t *implTranscriber) Transcribe(ctx context.Context, mediaPath string, opts Options) (transcript.Transcript, error) {
	if _, err := os.Stat(mediaPath); err != nil {
		return transcript.Transcript{}, fmt.Errorf("media file: %w", err)
	}

	report := progress.OrNop(opts.Progress)

	duration, err := t.prober.Duration(ctx, mediaPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("probe media: %w", err)
	}

	segments, err := t.chunker.Extract(ctx, mediaPath, duration)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("extract segments: %w", err)
	}
	defer t.chunker.Cleanup(ctx, segments)

	total := len(segments)
	t.logger.Info(ctx, "Transcribing %s: %.1fs in %d segment(s)", mediaPath, duration, total)
	report(0, total, fmt.Sprintf("extracted %d audio segment(s)", total))

	// With no language hint, transcribe the first segment eagerly and
	// reuse its detected language everywhere: per-segment detection could
	// disagree between segments of the same recording.
	language := opts.Language
	results := make([]transcript.Result, total)
	done := 0

	if language == "" {
		results[0] = t.transcribeSegment(ctx, segments[0], "")
		language = results[0].Language
		if language == transcript.LanguageUnknown {
			// Keep detection on for the remaining segments; Merge picks up
			// the first language any of them reports.
			t.logger.Warn(ctx, "Language detection failed on first segment")
			language = ""
		} else {
			t.logger.Info(ctx, "Detected language: %s", language)
		}
		done = 1
		report(1, total, fmt.Sprintf("transcribed 1/%d segments", total))
	}

	remaining := segments[done:]
	completed := int64(done)
	rest := parallel.Map(ctx, remaining, t.workers, func(ctx context.Context, idx int, seg media.Segment) transcript.Result {
		result := t.transcribeSegment(ctx, seg, language)
		n := int(atomic.AddInt64(&completed, 1))
		report(n, total, fmt.Sprintf("transcribed %d/%d segments", n, total))
		return result
	})
	copy(results[done:], rest)

	merged := transcript.Merge(results)
	report(total, total, "merging transcription results")

	if opts.Diarize {
		merged = t.diarizeWhole(ctx, mediaPath, merged, report)
	}

	return merged, nil
}

// transcribeSegment transcribes one audio segment and returns its
// contribution in absolute media time. All work up to the final shift
// happens in the segment-local time domain, so the shift is applied
// exactly once whether or not alignment ran.
func (t *implTranscriber) transcribeSegment(ctx context.Context, seg media.Segment, language string) transcript.Result {
	res, err := t.stt.Transcribe(ctx, seg.Path, stt.Options{
		Language:  language,
		BatchSize: t.batchSize,
	})
	if err != nil {
		// A single bad segment must not abort the job.
		t.logger.Error(ctx, "Segment [%.1f, %.1f) transcription failed: %v", seg.Span.Start, seg.Span.End, err)
		return transcript.Result{Language: transcript.LanguageUnknown}
	}

	lang := res.Language
	if lang == "" {
		lang = transcript.LanguageUnknown
	}

	local := res.Segments
	if t.align && lang != transcript.LanguageUnknown {
		local = t.alignSegments(ctx, local, seg.Path, lang)
	}

	shifted := make([]transcript.Segment, len(local))
	for i, s := range local {
		shifted[i] = s.ShiftBy(seg.Span.Start)
	}

	return transcript.Result{Language: lang, Segments: shifted}
}

// alignSegments runs the word-level alignment pass over the non-empty
// segments. On failure it falls back to the unaligned segments with any
// invalid word timestamps stripped.
func (t *implTranscriber) alignSegments(ctx context.Context, segments []transcript.Segment, audioPath, language string) []transcript.Segment {
	// The alignment model misbehaves on empty input.
	valid := make([]transcript.Segment, 0, len(segments))
	for _, s := range segments {
		if strings.TrimSpace(s.Text) != "" {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return segments
	}

	aligned, err := t.stt.Align(ctx, valid, audioPath, language)
	if err != nil {
		t.logger.Warn(ctx, "Alignment failed, using segment-level timestamps: %v", err)
		return dropInvalidWords(segments)
	}
	return aligned
}

// dropInvalidWords strips word timestamps that a failed alignment pass
// may have left behind: empty words or words with end <= start.
func dropInvalidWords(segments []transcript.Segment) []transcript.Segment {
	out := make([]transcript.Segment, len(segments))
	for i, s := range segments {
		var words []transcript.Word
		for _, w := range s.Words {
			if strings.TrimSpace(w.Text) != "" && w.Start >= 0 && w.End > w.Start {
				words = append(words, w)
			}
		}
		s.Words = words
		out[i] = s
	}
	return out
}

// diarizeWhole runs speaker diarization over the complete original audio,
// never over individual chunks: speaker turns may span chunk boundaries.
// Diarization failures degrade to an unlabeled transcript.
func (t *implTranscriber) diarizeWhole(ctx context.Context, mediaPath string, merged transcript.Transcript, report progress.Func) transcript.Transcript {
	report(len(merged.Segments), len(merged.Segments), "assigning speakers")

	turns, err := t.diarizer.Diarize(ctx, mediaPath)
	if err != nil {
		t.logger.Warn(ctx, "Diarization failed, continuing without speaker labels: %v", err)
		return merged
	}
	if len(turns) == 0 {
		return merged
	}

	speakers := map[string]struct{}{}
	for _, turn := range turns {
		speakers[turn.Speaker] = struct{}{}
	}
	t.logger.Info(ctx, "Diarization found %d speaker(s)", len(speakers))

	return diarize.AssignSpeakers(turns, merged)
}

package transcript

import "sort"

// LanguageUnknown marks results whose language could not be determined,
// including failed segment transcriptions.
const LanguageUnknown = "unknown"

// Word is one word-level timestamp produced by alignment.
type Word struct {
	Text    string  `json:"word"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Segment is one timed utterance. Start and End are always absolute media
// time in seconds; segment-local offsets never leave the transcriber.
type Segment struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Words   []Word  `json:"words,omitempty"`
	Speaker string  `json:"speaker,omitempty"`
}

// ShiftBy moves the segment and every nested word timestamp by offset
// seconds. Callers must apply this exactly once per segment, when moving
// from segment-local to absolute media time.
func (s Segment) ShiftBy(offset float64) Segment {
	s.Start += offset
	s.End += offset
	if len(s.Words) > 0 {
		words := make([]Word, len(s.Words))
		for i, w := range s.Words {
			w.Start += offset
			w.End += offset
			words[i] = w
		}
		s.Words = words
	}
	return s
}

// Transcript is the merged result of one transcription job.
type Transcript struct {
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// Result is one audio segment's transcription contribution before merging.
type Result struct {
	Language string
	Segments []Segment
}

// Merge combines per-segment results into a single transcript ordered by
// start time. The stable sort keeps relative insertion order for equal
// timestamps, so results may arrive in any completion order. Language is
// taken from the first result that detected one.
func Merge(results []Result) Transcript {
	merged := Transcript{Language: LanguageUnknown}

	for _, r := range results {
		merged.Segments = append(merged.Segments, r.Segments...)
		if merged.Language == LanguageUnknown && r.Language != "" && r.Language != LanguageUnknown {
			merged.Language = r.Language
		}
	}

	sort.SliceStable(merged.Segments, func(i, j int) bool {
		return merged.Segments[i].Start < merged.Segments[j].Start
	})

	return merged
}

package diarize

import (
	"math"

	"podscribe/internal/transcript"
)

// AssignSpeakers labels each transcript segment (and each aligned word)
// with the speaker whose diarized turn overlaps it most. Segments with no
// overlapping turn keep an empty speaker label.
func AssignSpeakers(turns []Turn, tr transcript.Transcript) transcript.Transcript {
	if len(turns) == 0 {
		return tr
	}

	segments := make([]transcript.Segment, len(tr.Segments))
	for i, seg := range tr.Segments {
		seg.Speaker = bestSpeaker(turns, seg.Start, seg.End)
		if len(seg.Words) > 0 {
			words := make([]transcript.Word, len(seg.Words))
			for j, w := range seg.Words {
				w.Speaker = bestSpeaker(turns, w.Start, w.End)
				words[j] = w
			}
			seg.Words = words
		}
		segments[i] = seg
	}

	return transcript.Transcript{Language: tr.Language, Segments: segments}
}

// bestSpeaker picks the turn with maximum overlap against [start, end).
func bestSpeaker(turns []Turn, start, end float64) string {
	var speaker string
	var best float64

	for _, turn := range turns {
		overlap := math.Min(end, turn.End) - math.Max(start, turn.Start)
		if overlap > best {
			best = overlap
			speaker = turn.Speaker
		}
	}

	return speaker
}

package transcript

import (
	"fmt"
	"math"
	"strings"
)

// FormatTimestamp renders seconds as an SRT timestamp (HH:MM:SS,mmm).
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	// Work in whole milliseconds to avoid float truncation near second
	// boundaries.
	ms := int(math.Round(seconds * 1000))
	hours := ms / 3600000
	minutes := (ms % 3600000) / 60000
	secs := (ms % 60000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// SRT renders the transcript in SubRip subtitle format. Segments with a
// speaker label are prefixed with [SPEAKER].
func (t Transcript) SRT() string {
	var b strings.Builder
	for i, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		if seg.Speaker != "" {
			fmt.Fprintf(&b, "[%s] %s\n", seg.Speaker, text)
		} else {
			fmt.Fprintf(&b, "%s\n", text)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PlainText returns the transcript text, one segment per line, skipping
// empty segments.
func (t Transcript) PlainText() string {
	var b strings.Builder
	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

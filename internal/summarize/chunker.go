package summarize

import "strings"

// separators lists acceptable break points in descending preference:
// sentence end followed by a newline, paragraph break, bare sentence
// punctuation, then any newline.
var separators = []string{
	"。\n", ".\n", "\n\n",
	"。", ". ", "！", "？", "!", "?",
	"\n",
}

// SplitText splits text into chunks of at most chunkSize characters with
// the given overlap between neighbours, preferring to cut on natural
// sentence boundaries. Empty input yields no chunks; whitespace-only
// chunks are dropped. Sizes are in runes so multi-byte text is never cut
// mid-character.
func SplitText(text string, chunkSize, overlap int) []string {
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 100000
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	total := len(runes)

	var chunks []string
	start := 0
	for start < total {
		end := start + chunkSize
		if end > total {
			end = total
		}

		// Search backward from the hard boundary for the best break point.
		if end < total {
			for _, sep := range separators {
				if idx := lastIndex(runes, sep, start, end); idx != -1 {
					end = idx + len([]rune(sep))
					break
				}
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		// Overlap with the previous chunk, but always advance at least one
		// rune so overlap >= chunkSize cannot stall the loop.
		next := end - overlap
		if next < start+1 {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// lastIndex finds the last occurrence of sep in runes[start:end], returned
// as an index into runes, or -1.
func lastIndex(runes []rune, sep string, start, end int) int {
	sepRunes := []rune(sep)
	for i := end - len(sepRunes); i >= start; i-- {
		match := true
		for j, r := range sepRunes {
			if runes[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

package summarize

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitTextEmpty(t *testing.T) {
	if got := SplitText("", 100000, 300); got != nil {
		t.Errorf("SplitText(\"\") = %v, want nil", got)
	}
}

func TestSplitTextSingleCharacter(t *testing.T) {
	got := SplitText("a", 100000, 300)
	if len(got) != 1 || got[0] != "a" {
		t.Errorf("SplitText(\"a\") = %v, want [a]", got)
	}
}

func TestSplitTextShortTextOneChunk(t *testing.T) {
	text := "This is a short paragraph. It fits in one chunk."
	got := SplitText(text, 1000, 50)
	if len(got) != 1 || got[0] != text {
		t.Errorf("SplitText() = %v, want one identical chunk", got)
	}
}

func TestSplitTextChunkCount(t *testing.T) {
	// 250k characters with chunk 100k / overlap 300 must give 3 chunks.
	text := strings.Repeat("x", 250000)
	got := SplitText(text, 100000, 300)
	if len(got) != 3 {
		t.Fatalf("got %d chunks, want 3", len(got))
	}
	for i, c := range got {
		if len(c) > 100000 {
			t.Errorf("chunk %d length = %d, exceeds chunk size", i, len(c))
		}
	}
}

func TestSplitTextPrefersSentenceBoundary(t *testing.T) {
	text := "First sentence. Second sentence. Third sentence continues for a while"
	got := SplitText(text, 40, 0)

	if len(got) < 2 {
		t.Fatalf("got %d chunks, want at least 2", len(got))
	}
	if !strings.HasSuffix(got[0], ".") {
		t.Errorf("first chunk %q does not end on a sentence boundary", got[0])
	}
}

func TestSplitTextIdempotent(t *testing.T) {
	text := strings.Repeat("One sentence here. Another sentence there.\n", 500)
	a := SplitText(text, 1000, 100)
	b := SplitText(text, 1000, 100)
	if !reflect.DeepEqual(a, b) {
		t.Error("SplitText is not deterministic for identical input")
	}
}

func TestSplitTextForwardProgressWithLargeOverlap(t *testing.T) {
	// overlap >= chunkSize must still terminate and cover the text.
	text := strings.Repeat("abcdefghij", 20)
	got := SplitText(text, 10, 50)
	if len(got) == 0 {
		t.Fatal("no chunks produced")
	}
	if len(got) > len(text) {
		t.Errorf("suspiciously many chunks: %d", len(got))
	}
}

func TestSplitTextDropsWhitespaceChunks(t *testing.T) {
	text := "word" + strings.Repeat(" ", 50) + "word"
	for _, chunk := range SplitText(text, 20, 0) {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("whitespace-only chunk survived: %q", chunk)
		}
	}
}

func TestSplitTextMultibyteSafe(t *testing.T) {
	text := strings.Repeat("這是一個測試句子。", 100)
	got := SplitText(text, 50, 5)
	for i, chunk := range got {
		if !strings.HasPrefix(chunk, "這") && !strings.HasPrefix(chunk, "是") &&
			!strings.HasPrefix(chunk, "一") && !strings.HasPrefix(chunk, "個") &&
			!strings.HasPrefix(chunk, "測") && !strings.HasPrefix(chunk, "試") &&
			!strings.HasPrefix(chunk, "句") && !strings.HasPrefix(chunk, "子") {
			t.Errorf("chunk %d starts mid-character: %q", i, chunk[:1])
		}
	}
}

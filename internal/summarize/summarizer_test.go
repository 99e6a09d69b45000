package summarize

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"podscribe/internal/config"
	"podscribe/internal/llm"
	"podscribe/internal/logger"
)

// fakeLLM answers chunk calls with "summary N" style output and records
// how often it was called. failOnChunk makes the matching chunk call fail;
// failReduce makes the reduction call fail.
type fakeLLM struct {
	calls       int64
	failOnChunk string
	failReduce  bool
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	atomic.AddInt64(&f.calls, 1)
	user := req.Messages[len(req.Messages)-1].Content

	if strings.Contains(user, "summaries of consecutive parts") {
		if f.failReduce {
			return "", fmt.Errorf("reduce model unavailable")
		}
		return "final summary", nil
	}

	if f.failOnChunk != "" && strings.Contains(user, f.failOnChunk) {
		return "", fmt.Errorf("chunk model unavailable")
	}
	return "chunk summary", nil
}

func newTestSummarizer(client llm.Client, chunkSize int) Summarizer {
	cfg := &config.Config{}
	cfg.Summarize.ChunkSize = chunkSize
	cfg.Summarize.Overlap = 10
	cfg.Summarize.Language = "English"
	cfg.Performance.SummarizeWorkers = 3
	return New(client, cfg, logger.New("error"))
}

func TestSummarizeSingleChunkSkipsReduction(t *testing.T) {
	client := &fakeLLM{}
	s := newTestSummarizer(client, 100000)

	got, err := s.Summarize(context.Background(), "a short text", Options{})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "chunk summary" {
		t.Errorf("Summarize() = %q, want the chunk summary itself", got)
	}
	if client.calls != 1 {
		t.Errorf("llm calls = %d, want 1 (no reduction)", client.calls)
	}
}

func TestSummarizeMapReduce(t *testing.T) {
	client := &fakeLLM{}
	s := newTestSummarizer(client, 100)

	text := strings.Repeat("many words in this transcript ", 30) // forces several chunks

	var events []string
	got, err := s.Summarize(context.Background(), text, Options{
		Progress: func(current, total int, message string) {
			events = append(events, fmt.Sprintf("%d/%d", current, total))
		},
	})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "final summary" {
		t.Errorf("Summarize() = %q, want reduced summary", got)
	}
	if len(events) < 2 {
		t.Errorf("progress events = %v, want one per chunk", events)
	}
}

func TestSummarizeChunkFailureBecomesPlaceholder(t *testing.T) {
	client := &fakeLLM{failOnChunk: "part 2 of"}
	s := newTestSummarizer(client, 100)

	text := strings.Repeat("many words in this transcript ", 30)

	got, err := s.Summarize(context.Background(), text, Options{Serial: true})
	if err != nil {
		t.Fatalf("Summarize() error = %v; one bad chunk must not fail the batch", err)
	}
	if got != "final summary" {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestSummarizeReduceFailureIsFatal(t *testing.T) {
	client := &fakeLLM{failReduce: true}
	s := newTestSummarizer(client, 100)

	text := strings.Repeat("many words in this transcript ", 30)

	if _, err := s.Summarize(context.Background(), text, Options{}); err == nil {
		t.Fatal("Summarize() should fail when the reduction call fails")
	}
}

func TestSummarizeEmptyTextIsError(t *testing.T) {
	s := newTestSummarizer(&fakeLLM{}, 100)

	if _, err := s.Summarize(context.Background(), "   \n ", Options{}); err == nil {
		t.Fatal("Summarize() should reject empty input")
	}
}

func TestSummarizeChunkPlaceholderFormat(t *testing.T) {
	client := &fakeLLM{failOnChunk: "part 1 of"}
	s := newTestSummarizer(client, 100000).(*implSummarizer)

	got := s.summarizeChunk(context.Background(), "some text", 1, 1)
	if !strings.HasPrefix(got, "[summary failed:") {
		t.Errorf("placeholder = %q, want \"[summary failed: ...]\" format", got)
	}
}

package summarize

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"podscribe/internal/llm"
	"podscribe/internal/progress"
	"podscribe/pkg/parallel"
)

// Low temperature keeps summaries faithful rather than creative. The
// token ceilings are generous: the reduce step sees every chunk summary.
const (
	summaryTemperature = 0.3
	chunkMaxTokens     = 8000
	reduceMaxTokens    = 16000
)

const chunkSystemPrompt = `You are a professional summarization assistant. Summarize the given text accurately and concisely.
Requirements:
1. Extract the core points and key information
2. Keep the structure clear and logical
3. Write the summary in %s
4. Keep the length moderate: no important information lost, no padding
5. Preserve domain terminology where the text is technical`

const reduceSystemPrompt = `You are a professional summarization assistant. You receive summaries of consecutive parts of one long text and must merge them into a single coherent overall summary.
Requirements:
1. Integrate all parts into one logically ordered summary
2. Remove duplicated information: neighbouring parts overlap by design
3. Write the summary in %s
4. Make sure the result reflects the core content and main arguments of the whole text`

// Summarize splits text into model-sized chunks, summarizes each chunk and
// reduces the chunk summaries into one final summary. A single failed
// chunk degrades to a placeholder; a failed reduction fails the run.
func (s *implSummarizer) Summarize(ctx context.Context, text string, opts Options) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to summarize: text is empty")
	}

	report := progress.OrNop(opts.Progress)

	chunks := SplitText(text, s.chunkSize, s.overlap)
	if len(chunks) == 0 {
		return "", fmt.Errorf("text chunking produced no chunks")
	}

	total := len(chunks)
	s.logger.Info(ctx, "Summarizing %d chunk(s) (chunk size %d, overlap %d)", total, s.chunkSize, s.overlap)

	// One chunk needs no reduction: its summary is the final summary.
	if total == 1 {
		summary := s.summarizeChunk(ctx, chunks[0], 1, 1)
		report(1, 1, "summarized 1/1 chunks")
		return summary, nil
	}

	workers := s.workers
	if opts.Serial {
		workers = 1
	}

	var completed int64
	summaries := parallel.Map(ctx, chunks, workers, func(ctx context.Context, idx int, chunk string) string {
		summary := s.summarizeChunk(ctx, chunk, idx+1, total)
		done := int(atomic.AddInt64(&completed, 1))
		report(done, total, fmt.Sprintf("summarized %d/%d chunks", done, total))
		return summary
	})

	return s.reduce(ctx, summaries)
}

// summarizeChunk summarizes one chunk, absorbing failures into a
// placeholder so one bad chunk never aborts the batch.
func (s *implSummarizer) summarizeChunk(ctx context.Context, chunk string, index, total int) string {
	prompt := fmt.Sprintf("Summarize the following text (part %d of %d):\n\n%s\n\nProvide a clear, concise summary of the core points.", index, total, chunk)

	summary, err := s.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(chunkSystemPrompt, s.language)},
			{Role: "user", Content: prompt},
		},
		Temperature: summaryTemperature,
		MaxTokens:   chunkMaxTokens,
	})
	if err != nil {
		s.logger.Error(ctx, "Failed to summarize chunk %d/%d: %v", index, total, err)
		return fmt.Sprintf("[summary failed: %v]", err)
	}

	return summary
}

// reduce combines the per-chunk summaries into the final summary. There is
// no fallback here: if the reduction call fails, the run fails.
func (s *implSummarizer) reduce(ctx context.Context, summaries []string) (string, error) {
	var combined strings.Builder
	for i, summary := range summaries {
		if i > 0 {
			combined.WriteString("\n\n")
		}
		fmt.Fprintf(&combined, "Part %d summary:\n%s", i+1, summary)
	}

	prompt := fmt.Sprintf("Here are the summaries of consecutive parts of a long text:\n\n%s\n\nMerge them into one complete, coherent overall summary. Integrate all key information, remove duplicated content and keep the language fluent.", combined.String())

	final, err := s.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(reduceSystemPrompt, s.language)},
			{Role: "user", Content: prompt},
		},
		Temperature: summaryTemperature,
		MaxTokens:   reduceMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("final reduction failed: %w", err)
	}

	return final, nil
}

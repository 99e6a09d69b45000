package summarize

import (
	"podscribe/internal/config"
	"podscribe/internal/llm"
	"podscribe/internal/logger"
)

type implSummarizer struct {
	llm       llm.Client
	logger    logger.Logger
	chunkSize int
	overlap   int
	language  string
	workers   int
}

// New creates a Summarizer on top of the given completion client.
func New(client llm.Client, cfg *config.Config, log logger.Logger) Summarizer {
	return &implSummarizer{
		llm:       client,
		logger:    log,
		chunkSize: cfg.Summarize.ChunkSize,
		overlap:   cfg.Summarize.Overlap,
		language:  cfg.Summarize.Language,
		workers:   cfg.Performance.SummarizeWorkers,
	}
}

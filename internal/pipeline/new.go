package pipeline

import (
	"podscribe/internal/artifacts"
	"podscribe/internal/config"
	"podscribe/internal/jobs"
	"podscribe/internal/logger"
	"podscribe/internal/summarize"
	"podscribe/internal/transcribe"
)

type implRunner struct {
	transcriber transcribe.Transcriber
	summarizer  summarize.Summarizer
	writer      artifacts.Writer
	tracker     *jobs.Tracker
	logger      logger.Logger
	language    string
	diarize     bool
}

// New creates a Runner. A nil summarizer skips the summarization stage;
// jobs then finish after the transcript artifacts are written.
func New(transcriber transcribe.Transcriber, summarizer summarize.Summarizer, writer artifacts.Writer, tracker *jobs.Tracker, cfg *config.Config, log logger.Logger) Runner {
	return &implRunner{
		transcriber: transcriber,
		summarizer:  summarizer,
		writer:      writer,
		tracker:     tracker,
		logger:      log,
		language:    cfg.STT.Language,
		diarize:     cfg.Diarization.Enabled,
	}
}

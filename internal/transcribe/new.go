package transcribe

import (
	"podscribe/internal/config"
	"podscribe/internal/diarize"
	"podscribe/internal/logger"
	"podscribe/internal/media"
	"podscribe/internal/stt"
)

type implTranscriber struct {
	prober    media.Prober
	chunker   media.Chunker
	stt       stt.Client
	diarizer  diarize.Diarizer
	logger    logger.Logger
	batchSize int
	align     bool
	workers   int
}

// New creates a Transcriber. The stt client is shared read-only across
// the transcription workers. Pass diarize.Noop{} when no diarization
// credential is configured.
func New(prober media.Prober, chunker media.Chunker, client stt.Client, diarizer diarize.Diarizer, cfg *config.Config, log logger.Logger) Transcriber {
	if diarizer == nil {
		diarizer = diarize.Noop{}
	}
	return &implTranscriber{
		prober:    prober,
		chunker:   chunker,
		stt:       client,
		diarizer:  diarizer,
		logger:    log,
		batchSize: cfg.STT.BatchSize,
		align:     cfg.STT.Align,
		workers:   cfg.Performance.TranscribeWorkers,
	}
}

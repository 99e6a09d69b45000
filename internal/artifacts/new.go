package artifacts

import (
	"podscribe/internal/logger"
)

type implWriter struct {
	logger    logger.Logger
	outputDir string
}

// New creates a Writer that renders into outputDir.
func New(log logger.Logger, outputDir string) Writer {
	return &implWriter{
		logger:    log,
		outputDir: outputDir,
	}
}

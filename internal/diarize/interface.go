package diarize

import "context"

// Turn is one diarized speaker window in absolute media seconds.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Diarizer labels time spans of a complete audio file with speaker
// identities. It always runs over the original unchunked audio: speaker
// turns may span chunk boundaries.
type Diarizer interface {
	Diarize(ctx context.Context, audioPath string) ([]Turn, error)
}

// Noop performs no diarization; the pipeline substitutes it when no
// credential is configured.
type Noop struct{}

func (Noop) Diarize(ctx context.Context, audioPath string) ([]Turn, error) {
	return nil, nil
}

package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"podscribe/internal/transcript"
)

func (w *implWriter) WriteTranscript(ctx context.Context, base string, tr transcript.Transcript) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string

	txtPath := filepath.Join(w.outputDir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(tr.PlainText()), 0644); err != nil {
		return nil, fmt.Errorf("write transcript text: %w", err)
	}
	paths = append(paths, txtPath)

	srtPath := filepath.Join(w.outputDir, base+".srt")
	if err := os.WriteFile(srtPath, []byte(tr.SRT()), 0644); err != nil {
		return nil, fmt.Errorf("write transcript srt: %w", err)
	}
	paths = append(paths, srtPath)

	data, err := json.MarshalIndent(tr, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}
	jsonPath := filepath.Join(w.outputDir, base+".json")
	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return nil, fmt.Errorf("write transcript json: %w", err)
	}
	paths = append(paths, jsonPath)

	docxPath := filepath.Join(w.outputDir, base+".docx")
	if err := transcriptToDocx(base, tr, docxPath); err != nil {
		// The docx is a convenience copy; the text artifacts already exist.
		w.logger.Warn(ctx, "Failed to write transcript docx: %v", err)
	} else {
		paths = append(paths, docxPath)
	}

	w.logger.Info(ctx, "Wrote %d transcript artifact(s) for %s", len(paths), base)
	return paths, nil
}

func (w *implWriter) WriteSummary(ctx context.Context, base, summary string) ([]string, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string

	mdPath := filepath.Join(w.outputDir, base+"_summary.md")
	if err := os.WriteFile(mdPath, []byte(summary), 0644); err != nil {
		return nil, fmt.Errorf("write summary markdown: %w", err)
	}
	paths = append(paths, mdPath)

	docxPath := filepath.Join(w.outputDir, base+"_summary.docx")
	if err := markdownToDocx(base, summary, docxPath); err != nil {
		w.logger.Warn(ctx, "Failed to write summary docx: %v", err)
	} else {
		paths = append(paths, docxPath)
	}

	w.logger.Info(ctx, "Wrote %d summary artifact(s) for %s", len(paths), base)
	return paths, nil
}

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"podscribe/internal/transcript"
)

// implWhisperX talks to a whisperx-server style HTTP service exposing
// /transcribe and /align endpoints that accept multipart audio uploads.
type implWhisperX struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewWhisperX creates a Client for the given whisperx server.
func NewWhisperX(baseURL, model string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 300 * time.Second
	}
	return &implWhisperX{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type transcribeResponse struct {
	Language string            `json:"language"`
	Segments []segmentResponse `json:"segments"`
}

type segmentResponse struct {
	Text  string         `json:"text"`
	Start float64        `json:"start"`
	End   float64        `json:"end"`
	Words []wordResponse `json:"words,omitempty"`
}

type wordResponse struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (c *implWhisperX) Transcribe(ctx context.Context, audioPath string, opts Options) (Result, error) {
	fields := map[string]string{
		"model": c.model,
	}
	if opts.Language != "" {
		fields["language"] = opts.Language
	}
	if opts.BatchSize > 0 {
		fields["batch_size"] = strconv.Itoa(opts.BatchSize)
	}

	var resp transcribeResponse
	if err := c.postAudio(ctx, "/transcribe", audioPath, fields, &resp); err != nil {
		return Result{}, err
	}

	return Result{
		Language: resp.Language,
		Segments: toSegments(resp.Segments),
	}, nil
}

func (c *implWhisperX) Align(ctx context.Context, segments []transcript.Segment, audioPath, language string) ([]transcript.Segment, error) {
	if language == "" {
		return nil, fmt.Errorf("align requires a language")
	}

	segJSON, err := json.Marshal(segments)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}

	fields := map[string]string{
		"language": language,
		"segments": string(segJSON),
	}

	var resp transcribeResponse
	if err := c.postAudio(ctx, "/align", audioPath, fields, &resp); err != nil {
		return nil, err
	}

	return toSegments(resp.Segments), nil
}

// postAudio uploads the audio file plus form fields and decodes the JSON
// response into out.
func (c *implWhisperX) postAudio(ctx context.Context, endpoint, audioPath string, fields map[string]string, out interface{}) error {
	f, err := os.Open(audioPath)
	if err != nil {
		return fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return fmt.Errorf("write field %s: %w", key, err)
		}
	}

	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func toSegments(in []segmentResponse) []transcript.Segment {
	segments := make([]transcript.Segment, 0, len(in))
	for _, s := range in {
		seg := transcript.Segment{
			Text:  s.Text,
			Start: s.Start,
			End:   s.End,
		}
		for _, w := range s.Words {
			seg.Words = append(seg.Words, transcript.Word{Text: w.Word, Start: w.Start, End: w.End})
		}
		segments = append(segments, seg)
	}
	return segments
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"podscribe/internal/logger"
)

// implOpenAI calls an OpenAI-compatible /chat/completions endpoint.
type implOpenAI struct {
	baseURL    string
	apiKey     string
	model      string
	retryCount int
	retryDelay time.Duration
	httpClient *http.Client
	logger     logger.Logger
}

// OpenAIOptions configures the OpenAI-compatible client.
type OpenAIOptions struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
}

// NewOpenAI creates a Client for OpenAI-compatible completion APIs.
func NewOpenAI(opts OpenAIOptions, log logger.Logger) Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RetryCount <= 0 {
		opts.RetryCount = 3
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	return &implOpenAI{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:     opts.APIKey,
		model:      opts.Model,
		retryCount: opts.RetryCount,
		retryDelay: opts.RetryDelay,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     log,
	}
}

type completionPayload struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// ClientError marks non-retryable HTTP 4xx responses (bad request,
// authorization).
type ClientError struct {
	StatusCode int
	Detail     string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("llm client error %d: %s", e.StatusCode, e.Detail)
}

func (c *implOpenAI) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("completion request has no messages")
	}

	payload, err := json.Marshal(completionPayload{
		Model:       c.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retryCount; attempt++ {
		if attempt > 0 {
			c.logger.Warn(ctx, "Completion call failed, retrying (%d/%d): %v", attempt, c.retryCount-1, lastErr)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, err := c.complete(ctx, payload)
		if err == nil {
			return text, nil
		}

		var ce *ClientError
		if errors.As(err, &ce) {
			// 4xx is not transient; retrying would only repeat the refusal.
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", c.retryCount, lastErr)
}

func (c *implOpenAI) complete(ctx context.Context, payload []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return "", &ClientError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion returned %d: %s", resp.StatusCode, errorDetail(body))
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return cr.Choices[0].Message.Content, nil
}

func errorDetail(body []byte) string {
	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err == nil && cr.Error != nil {
		return cr.Error.Message
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > 512 {
		detail = detail[:512]
	}
	return detail
}

package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"podscribe/internal/logger"
)

// implGemini calls the Gemini API, rotating through the supplied API keys
// on quota errors.
type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGemini creates a Client that rotates through the supplied Gemini API keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) (Client, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("gemini requires at least one API key")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}, nil
}

func (c *implGemini) Complete(ctx context.Context, req Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("completion request has no messages")
	}

	prompt := flattenMessages(req.Messages)
	cfg := &genai.GenerateContentConfig{}
	if req.Temperature > 0 {
		t := float32(req.Temperature)
		cfg.Temperature = &t
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	attempts := len(c.apiKeys)
	var lastErr error

	for range attempts {
		key := c.nextKey(false)

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			c.nextKey(true)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				c.logger.Warn(ctx, "Gemini key rate limited, rotating...")
				c.nextKey(true)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				text.WriteString(part.Text)
			}
			return text.String(), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (c *implGemini) nextKey(rotate bool) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rotate {
		c.currentKey = (c.currentKey + 1) % len(c.apiKeys)
	}
	return c.apiKeys[c.currentKey]
}

// flattenMessages folds a chat message list into one prompt; the Gemini
// text API takes a single content block.
func flattenMessages(messages []Message) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

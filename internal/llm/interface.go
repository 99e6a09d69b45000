package llm

import "context"

// Message is one chat turn sent to the completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single completion call.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client is a language-model completion service. Implementations retry
// transient network failures internally and surface client errors
// (authorization, bad request) immediately.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

package ai

import (
	"context"
	"fmt"
	"strings"
)

// ChatRequest defines the input to an LLM chat completion.
// It is built fresh for every call.
type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Validate checks the request against what the remote services accept.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return fmt.Errorf("model is required")
	}
	hasUser := false
	for _, msg := range r.Messages {
		if msg.Role == RoleUser {
			hasUser = true
			break
		}
	}
	if !hasUser {
		return fmt.Errorf("at least one user message is required")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %v", r.Temperature)
	}
	if r.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", r.MaxTokens)
	}
	return nil
}

// ChatResponse is a normalized response from an LLM.
type ChatResponse struct {
	Content string
	Model   string
}

// Provider defines the LLM interface used by the app.
// Each call issues exactly one request; nothing is cached or retried.
type Provider interface {
	CreateChatCompletion(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"termchat/pkg/ai"

	"google.golang.org/genai"
)

const googleDefaultTimeout = 60

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderGoogle,
		Name:        "Google",
		Description: "Google AI (Gemini) API access",
	}, NewGoogleProvider)
}

type googleModelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GoogleProvider implements the Provider interface using the native Google AI SDK.
type GoogleProvider struct {
	models         googleModelsClient
	defaultTimeout time.Duration
}

// NewGoogleProvider creates a new Google provider from config.
func NewGoogleProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	providerCfg := cfg.Config.Providers.Google

	apiKey := strings.TrimSpace(providerCfg.APIKey)
	if apiKey == "" {
		slog.Debug("google_provider_missing_key")
		return nil, fmt.Errorf("google api_key is required")
	}

	timeoutSeconds := providerCfg.APITimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = googleDefaultTimeout
	}
	timeout := time.Duration(timeoutSeconds) * time.Second

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if apiURL := strings.TrimSpace(providerCfg.APIURL); apiURL != "" {
		clientCfg.HTTPOptions.BaseURL = apiURL
	}

	client, err := newGoogleClient(context.Background(), clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create google client: %w", err)
	}

	slog.Debug("google_provider_ready", "timeout_seconds", timeoutSeconds)
	return &GoogleProvider{
		models:         client.Models,
		defaultTimeout: timeout,
	}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *GoogleProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return ai.ChatResponse{}, err
	}

	contents, cfg := buildGoogleRequest(req)

	callCtx, cancel := p.withTimeout(ctx)
	defer cancel()

	slog.Debug("google_chat_request",
		"model", req.Model,
		"message_count", len(req.Messages),
	)
	resp, err := p.models.GenerateContent(callCtx, req.Model, contents, cfg)
	if err != nil {
		return ai.ChatResponse{}, classifyGoogleError(err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ai.ChatResponse{}, fmt.Errorf("%w: no candidates in response", ai.ErrMalformedResponse)
	}

	return ai.ChatResponse{
		Content: extractVisibleText(resp),
		Model:   req.Model,
	}, nil
}

func buildGoogleRequest(req ai.ChatRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	contents := make([]*genai.Content, 0, len(req.Messages))
	systemParts := make([]string, 0, 1)

	for _, msg := range req.Messages {
		switch msg.Role {
		case ai.RoleSystem:
			if content := strings.TrimSpace(msg.Content); content != "" {
				systemParts = append(systemParts, content)
			}
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if len(systemParts) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(systemParts, "\n\n")}},
		}
	}

	return contents, config
}

func (p *GoogleProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline || p.defaultTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.defaultTimeout)
}

// classifyGoogleError maps SDK errors onto the ai error taxonomy.
func classifyGoogleError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return ai.NewStatusError(apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("google request failed: %w", err)
}

func extractVisibleText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// Ensure interface compliance
var _ ai.Provider = (*GoogleProvider)(nil)

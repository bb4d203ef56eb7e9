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
	"termchat/pkg/config"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	openAIDefaultAPIURL  = config.DefaultOpenAIURL
	openAIDefaultTimeout = 60
)

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderOpenAI,
		Name:        "OpenAI",
		Description: "OpenAI or any OpenAI-compatible chat completions endpoint",
	}, NewOpenAIProvider)
}

// OpenAIProvider implements the Provider interface using the OpenAI SDK.
type OpenAIProvider struct {
	client openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider from config.
func NewOpenAIProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	providerCfg := cfg.Config.Providers.OpenAI

	timeout := providerCfg.APITimeoutSeconds
	if timeout <= 0 {
		timeout = openAIDefaultTimeout
	}
	httpClient := &http.Client{Timeout: time.Duration(timeout) * time.Second}

	return newOpenAIProviderWithHTTPClient(providerCfg, cfg.UserAgent, httpClient)
}

func newOpenAIProviderWithHTTPClient(cfg config.ProviderSettings, userAgent string, httpClient *http.Client) (*OpenAIProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api_key is required")
	}

	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = openAIDefaultAPIURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(apiURL),
		option.WithHTTPClient(httpClient),
		// Every failure is surfaced once; the session never retries.
		option.WithMaxRetries(0),
	}
	if userAgent != "" {
		opts = append(opts, option.WithHeader("User-Agent", userAgent))
	}

	slog.Debug("openai_provider_ready", "api_url", apiURL)
	return &OpenAIProvider{client: openai.NewClient(opts...)}, nil
}

// CreateChatCompletion sends a non-streaming chat completion request.
func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return ai.ChatResponse{}, err
	}

	params, err := buildOpenAIParams(req)
	if err != nil {
		return ai.ChatResponse{}, err
	}

	slog.Debug("openai_chat_request",
		"model", req.Model,
		"message_count", len(req.Messages),
	)
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return ai.ChatResponse{}, classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return ai.ChatResponse{}, fmt.Errorf("%w: no choices in response", ai.ErrMalformedResponse)
	}

	return ai.ChatResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
	}, nil
}

func buildOpenAIParams(req ai.ChatRequest) (openai.ChatCompletionNewParams, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		param, err := toChatMessageParam(msg)
		if err != nil {
			return openai.ChatCompletionNewParams{}, err
		}
		messages = append(messages, param)
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
		MaxTokens:   openai.Int(int64(req.MaxTokens)),
	}, nil
}

func toChatMessageParam(msg ai.Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case ai.RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case ai.RoleUser:
		return openai.UserMessage(msg.Content), nil
	case ai.RoleAssistant:
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{}, fmt.Errorf("unsupported role: %s", msg.Role)
	}
}

// classifyOpenAIError maps SDK errors onto the ai error taxonomy.
func classifyOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return ai.NewStatusError(apiErr.StatusCode, apiErr.Message)
	}
	return fmt.Errorf("openai request failed: %w", err)
}

// Ensure interface compliance
var _ ai.Provider = (*OpenAIProvider)(nil)

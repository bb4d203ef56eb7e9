package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"termchat/pkg/ai"
	"termchat/pkg/config"
	"termchat/pkg/logging"

	"github.com/mattn/go-runewidth"
	"github.com/tidwall/gjson"
)

const (
	openRouterCompletionsPath = "/chat/completions"
	openRouterReplyPath       = "choices.0.message.content"
	openRouterErrorPath       = "error.message"
	maxResponseBytes          = 4 << 20
	maxPreviewWidth           = 120
)

func init() {
	ai.RegisterProvider(ai.ProviderInfo{
		Type:        ai.ProviderOpenRouter,
		Name:        "OpenRouter",
		Description: "Access hosted LLM models through the OpenRouter API",
	}, NewOpenRouterProvider)
}

// OpenRouterProvider talks to the OpenRouter chat completions endpoint.
type OpenRouterProvider struct {
	apiKey     string
	endpoint   string
	referer    string
	title      string
	userAgent  string
	httpClient *http.Client
}

type openRouterMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openRouterRequest struct {
	Model       string              `json:"model"`
	Messages    []openRouterMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens"`
}

// NewOpenRouterProvider creates a new OpenRouter provider from config.
func NewOpenRouterProvider(cfg ai.ProviderConfig) (ai.Provider, error) {
	orCfg := cfg.Config.OpenRouter
	httpClient := &http.Client{Timeout: time.Duration(orCfg.APITimeoutSeconds) * time.Second}
	return newOpenRouterProviderWithHTTPClient(orCfg, cfg.UserAgent, httpClient)
}

func newOpenRouterProviderWithHTTPClient(cfg config.OpenRouterConfig, userAgent string, httpClient *http.Client) (*OpenRouterProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Debug("openrouter_provider_missing_key")
		return nil, fmt.Errorf("openrouter api_key is required")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return nil, fmt.Errorf("openrouter api_url is required")
	}
	if cfg.APITimeoutSeconds <= 0 {
		return nil, fmt.Errorf("openrouter api_timeout_seconds must be positive")
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.APITimeoutSeconds) * time.Second}
	}

	endpoint := strings.TrimRight(cfg.APIURL, "/") + openRouterCompletionsPath

	slog.Debug("openrouter_provider_ready",
		"endpoint", endpoint,
		"api_key", logging.MaskKey(cfg.APIKey),
		"timeout_seconds", cfg.APITimeoutSeconds,
	)
	return &OpenRouterProvider{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		referer:    cfg.HTTPReferer,
		title:      cfg.XTitle,
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// CreateChatCompletion sends one request and returns the first choice's content.
func (p *OpenRouterProvider) CreateChatCompletion(ctx context.Context, req ai.ChatRequest) (ai.ChatResponse, error) {
	if err := req.Validate(); err != nil {
		return ai.ChatResponse{}, err
	}

	payload := openRouterRequest{
		Model:       req.Model,
		Messages:    make([]openRouterMessage, 0, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, msg := range req.Messages {
		payload.Messages = append(payload.Messages, openRouterMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ai.ChatResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return ai.ChatResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if p.referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.referer)
	}
	if p.title != "" {
		httpReq.Header.Set("X-Title", p.title)
	}
	if p.userAgent != "" {
		httpReq.Header.Set("User-Agent", p.userAgent)
	}

	slog.Debug("openrouter_chat_request",
		"model", req.Model,
		"message_count", len(req.Messages),
		"temperature", req.Temperature,
		"max_tokens", req.MaxTokens,
		"request_size", len(body),
	)

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		slog.Error("openrouter_request_failed", "error", err)
		return ai.ChatResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		slog.Error("openrouter_read_failed", "error", err)
		return ai.ChatResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("openrouter_chat_response",
		"status_code", resp.StatusCode,
		"response_size", len(respBody),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := ""
		if gjson.ValidBytes(respBody) {
			message = gjson.GetBytes(respBody, openRouterErrorPath).String()
		}
		slog.Warn("openrouter_error_status",
			"status_code", resp.StatusCode,
			"message", message,
		)
		return ai.ChatResponse{}, ai.NewStatusError(resp.StatusCode, message)
	}

	return parseOpenRouterResponse(respBody)
}

// parseOpenRouterResponse extracts the reply text from a 2xx body.
func parseOpenRouterResponse(body []byte) (ai.ChatResponse, error) {
	if !gjson.ValidBytes(body) {
		return ai.ChatResponse{}, fmt.Errorf("%w: body is not JSON: %s", ai.ErrMalformedResponse, preview(body))
	}

	reply := gjson.GetBytes(body, openRouterReplyPath)
	if !reply.Exists() || reply.Type != gjson.String {
		// OpenRouter reports some upstream failures as 200 with an error object.
		if msg := gjson.GetBytes(body, openRouterErrorPath); msg.Exists() {
			return ai.ChatResponse{}, fmt.Errorf("%w: %s", ai.ErrMalformedResponse, msg.String())
		}
		return ai.ChatResponse{}, fmt.Errorf("%w: missing %s", ai.ErrMalformedResponse, openRouterReplyPath)
	}

	return ai.ChatResponse{
		Content: reply.String(),
		Model:   gjson.GetBytes(body, "model").String(),
	}, nil
}

// preview shortens a body for error text. It never splits a rune.
func preview(body []byte) string {
	s := strings.ToValidUTF8(strings.TrimSpace(string(body)), "\uFFFD")
	return runewidth.Truncate(s, maxPreviewWidth, "...")
}

// Ensure interface compliance
var _ ai.Provider = (*OpenRouterProvider)(nil)

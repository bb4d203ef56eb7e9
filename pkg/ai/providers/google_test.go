package providers

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"termchat/pkg/ai"
	"termchat/pkg/config"

	"google.golang.org/genai"
)

type stubGoogleModelsClient struct {
	generateResp *genai.GenerateContentResponse
	generateErr  error
	calls        int

	gotModel    string
	gotContents []*genai.Content
	gotConfig   *genai.GenerateContentConfig
}

func (s *stubGoogleModelsClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.calls++
	s.gotModel = model
	s.gotContents = contents
	s.gotConfig = cfg
	return s.generateResp, s.generateErr
}

func googleTextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role: genai.RoleModel,
					Parts: []*genai.Part{
						{Text: text},
					},
				},
			},
		},
	}
}

func googleChatRequest() ai.ChatRequest {
	return ai.ChatRequest{
		Model: "gemini-test",
		Messages: []ai.Message{
			ai.SystemMessage("system prompt"),
			ai.UserMessage("first question"),
			ai.AssistantMessage("first answer"),
			ai.UserMessage("second question"),
		},
		Temperature: 0.2,
		MaxTokens:   42,
	}
}

func TestNewGoogleProvider_RequiresAPIKey(t *testing.T) {
	cfg := config.Default()
	cfg.LLMProvider = config.ProviderGoogle
	cfg.Providers.Google.APIKey = ""

	_, err := NewGoogleProvider(ai.ProviderConfig{
		Type:   ai.ProviderGoogle,
		Config: cfg,
	})
	if err == nil {
		t.Fatal("Expected error when Google API key is missing")
	}
}

func TestNewGoogleProvider_ClientConfig(t *testing.T) {
	origNewClient := newGoogleClient
	defer func() {
		newGoogleClient = origNewClient
	}()

	var gotClientCfg *genai.ClientConfig
	newGoogleClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
		gotClientCfg = cfg
		return &genai.Client{}, nil
	}

	cfg := config.Default()
	cfg.LLMProvider = config.ProviderGoogle
	cfg.Providers.Google.APIKey = "test-google-key"
	cfg.Providers.Google.APIURL = "https://gemini.test"
	cfg.Providers.Google.APITimeoutSeconds = 0

	provider, err := NewGoogleProvider(ai.ProviderConfig{
		Type:   ai.ProviderGoogle,
		Config: cfg,
	})
	if err != nil {
		t.Fatalf("NewGoogleProvider() error: %v", err)
	}

	googleProvider, ok := provider.(*GoogleProvider)
	if !ok {
		t.Fatalf("Expected *GoogleProvider, got %T", provider)
	}
	if gotClientCfg == nil {
		t.Fatal("Expected Google client config to be captured")
	}
	if gotClientCfg.APIKey != "test-google-key" {
		t.Fatalf("Expected API key to be forwarded, got %q", gotClientCfg.APIKey)
	}
	if gotClientCfg.Backend != genai.BackendGeminiAPI {
		t.Fatalf("Expected BackendGeminiAPI, got %v", gotClientCfg.Backend)
	}
	if gotClientCfg.HTTPOptions.BaseURL != "https://gemini.test" {
		t.Fatalf("Expected base URL override, got %q", gotClientCfg.HTTPOptions.BaseURL)
	}
	if googleProvider.defaultTimeout != 60*time.Second {
		t.Fatalf("Expected default timeout 60s, got %s", googleProvider.defaultTimeout)
	}
}

func TestGoogleProvider_CreateChatCompletion_MapsMessages(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: googleTextResponse("ok"),
	}
	provider := &GoogleProvider{models: stub}

	resp, err := provider.CreateChatCompletion(context.Background(), googleChatRequest())
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}

	if resp.Content != "ok" {
		t.Fatalf("Expected response content %q, got %q", "ok", resp.Content)
	}
	if resp.Model != "gemini-test" {
		t.Fatalf("Expected response model %q, got %q", "gemini-test", resp.Model)
	}
	if stub.gotModel != "gemini-test" {
		t.Fatalf("Expected request model to be used, got %q", stub.gotModel)
	}
	if len(stub.gotContents) != 3 {
		t.Fatalf("Expected 3 non-system messages, got %d", len(stub.gotContents))
	}

	wantRoles := []string{genai.RoleUser, genai.RoleModel, genai.RoleUser}
	for i, want := range wantRoles {
		if stub.gotContents[i].Role != want {
			t.Fatalf("content %d: expected role %q, got %q", i, want, stub.gotContents[i].Role)
		}
	}
	if got := stub.gotContents[2].Parts[0].Text; got != "second question" {
		t.Fatalf("Expected last content to be the pending question, got %q", got)
	}

	if stub.gotConfig == nil || stub.gotConfig.SystemInstruction == nil {
		t.Fatal("Expected system instruction to be set")
	}
	if got := stub.gotConfig.SystemInstruction.Parts[0].Text; got != "system prompt" {
		t.Fatalf("Expected system prompt as instruction, got %q", got)
	}
	if stub.gotConfig.Temperature == nil {
		t.Fatal("Expected temperature to be set")
	}
	if math.Abs(float64(*stub.gotConfig.Temperature)-0.2) > 0.0001 {
		t.Fatalf("Expected temperature 0.2, got %f", *stub.gotConfig.Temperature)
	}
	if stub.gotConfig.MaxOutputTokens != 42 {
		t.Fatalf("Expected max output tokens 42, got %d", stub.gotConfig.MaxOutputTokens)
	}
}

func TestGoogleProvider_CreateChatCompletion_NoSystemPrompt(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: googleTextResponse("ok"),
	}
	provider := &GoogleProvider{models: stub}

	req := googleChatRequest()
	req.Messages = []ai.Message{ai.UserMessage("hello")}
	if _, err := provider.CreateChatCompletion(context.Background(), req); err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}
	if stub.gotConfig.SystemInstruction != nil {
		t.Fatal("Expected no system instruction without a system message")
	}
}

func TestGoogleProvider_CreateChatCompletion_FiltersThoughtParts(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{
					Content: &genai.Content{
						Role: genai.RoleModel,
						Parts: []*genai.Part{
							{Text: "internal", Thought: true},
							{Text: "visible "},
							{Text: "answer"},
						},
					},
				},
			},
		},
	}
	provider := &GoogleProvider{models: stub}

	resp, err := provider.CreateChatCompletion(context.Background(), googleChatRequest())
	if err != nil {
		t.Fatalf("CreateChatCompletion() error: %v", err)
	}
	if resp.Content != "visible answer" {
		t.Fatalf("Expected thought parts to be filtered, got %q", resp.Content)
	}
}

func TestGoogleProvider_CreateChatCompletion_NoCandidates(t *testing.T) {
	stub := &stubGoogleModelsClient{
		generateResp: &genai.GenerateContentResponse{},
	}
	provider := &GoogleProvider{models: stub}

	_, err := provider.CreateChatCompletion(context.Background(), googleChatRequest())
	if !errors.Is(err, ai.ErrMalformedResponse) {
		t.Fatalf("Expected ErrMalformedResponse, got %v", err)
	}
}

func TestGoogleProvider_CreateChatCompletion_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantFatal bool
		wantText  string
	}{
		{
			name:      "unauthorized",
			err:       genai.APIError{Code: 401, Message: "API key not valid"},
			wantFatal: true,
			wantText:  "HTTP Error: 401 - API key not valid",
		},
		{
			name:      "server error",
			err:       genai.APIError{Code: 503, Message: "overloaded"},
			wantFatal: false,
			wantText:  "HTTP Error: 503 - overloaded",
		},
		{
			name:      "transport error",
			err:       errors.New("dial tcp: connection refused"),
			wantFatal: false,
			wantText:  "google request failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubGoogleModelsClient{generateErr: tt.err}
			provider := &GoogleProvider{models: stub}

			_, err := provider.CreateChatCompletion(context.Background(), googleChatRequest())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if ai.IsFatal(err) != tt.wantFatal {
				t.Fatalf("Expected fatal=%v for %v", tt.wantFatal, err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Fatalf("Expected error containing %q, got %q", tt.wantText, err.Error())
			}
			if stub.calls != 1 {
				t.Fatalf("Expected one call, got %d", stub.calls)
			}
		})
	}
}

func TestGoogleProvider_WithTimeout(t *testing.T) {
	provider := &GoogleProvider{defaultTimeout: time.Second}

	ctx, cancel := provider.withTimeout(context.Background())
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("Expected default deadline to be applied")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
	defer parentCancel()
	ctx, cancel = provider.withTimeout(parent)
	defer cancel()
	deadline, _ := ctx.Deadline()
	parentDeadline, _ := parent.Deadline()
	if !deadline.Equal(parentDeadline) {
		t.Fatal("Expected caller deadline to be preserved")
	}
}

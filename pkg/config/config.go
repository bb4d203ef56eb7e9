package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderGoogle     = "google"
)

const (
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"
	DefaultOpenAIURL     = "https://api.openai.com/v1"
	DefaultModel         = "openrouter/auto"
	DefaultSystemPrompt  = "You are a helpful, concise assistant. Respond in a clear, direct manner."
)

var (
	// ErrMissingAPIKey is returned by Validate when the active provider has no credential.
	ErrMissingAPIKey = errors.New("api key is not set")
	// ErrPlaceholderAPIKey is returned by Validate when the credential is a template value.
	ErrPlaceholderAPIKey = errors.New("api key is a placeholder value")
	// ErrUnsupportedProvider is returned by Validate for an unknown llm_provider.
	ErrUnsupportedProvider = errors.New("unsupported LLM provider")
)

// placeholderKeys are values shipped in sample .env files.
var placeholderKeys = []string{
	"your_api_key_here",
	"your-api-key-here",
	"sk-or-v1-abcdefg123456789",
}

// Config represents the application configuration
type Config struct {
	LLMProvider  string           `json:"llm_provider"`
	OpenRouter   OpenRouterConfig `json:"openrouter"`
	Providers    ProvidersConfig  `json:"providers"`
	SystemPrompt string           `json:"system_prompt"`
	Display      DisplayConfig    `json:"display"`
	LogLevel     string           `json:"log_level"`
	LogFormat    string           `json:"log_format"`
	LogFile      string           `json:"log_file"`

	// EnvFile is the .env path that was consulted while loading. Used in diagnostics.
	EnvFile string `json:"-"`
	// EnvFileFound reports whether EnvFile existed.
	EnvFileFound bool `json:"-"`
}

// OpenRouterConfig holds the OpenRouter API configuration
type OpenRouterConfig struct {
	APIKey            string  `json:"api_key"`
	APIURL            string  `json:"api_url"`
	HTTPReferer       string  `json:"http_referer"`
	XTitle            string  `json:"x_title"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
}

// ProviderSettings holds the settings shared by the SDK-backed providers.
type ProviderSettings struct {
	APIKey            string  `json:"api_key"`
	APIURL            string  `json:"api_url,omitempty"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
}

// ProvidersConfig groups the non-default providers.
type ProvidersConfig struct {
	OpenAI ProviderSettings `json:"openai"`
	Google ProviderSettings `json:"google"`
}

// DisplayConfig controls console cosmetics.
type DisplayConfig struct {
	Color             bool `json:"color"`
	ThinkingNotice    bool `json:"thinking_notice"`
	TypingEffect      bool `json:"typing_effect"`
	TypingDelayMs     int  `json:"typing_delay_ms"`
	Spinner           bool `json:"spinner"`
	SpinnerIntervalMs int  `json:"spinner_interval_ms"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		LLMProvider: ProviderOpenRouter,
		OpenRouter: OpenRouterConfig{
			APIKey:            "",
			APIURL:            DefaultOpenRouterURL,
			HTTPReferer:       "https://simple-terminal-chatbot.local",
			XTitle:            "Simple Terminal Chatbot",
			Model:             DefaultModel,
			Temperature:       0.7,
			MaxTokens:         1000,
			APITimeoutSeconds: 60,
		},
		Providers: ProvidersConfig{
			OpenAI: ProviderSettings{
				APIURL:            DefaultOpenAIURL,
				Model:             "gpt-4o-mini",
				Temperature:       0.7,
				MaxTokens:         1000,
				APITimeoutSeconds: 60,
			},
			Google: ProviderSettings{
				Model:             "gemini-2.5-flash",
				Temperature:       0.7,
				MaxTokens:         1000,
				APITimeoutSeconds: 60,
			},
		},
		SystemPrompt: DefaultSystemPrompt,
		Display: DisplayConfig{
			Color:             true,
			ThinkingNotice:    true,
			TypingEffect:      false,
			TypingDelayMs:     30,
			Spinner:           false,
			SpinnerIntervalMs: 500,
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads the config file at configPath, then applies the .env file at envPath and
// environment overrides. A missing config file is created with default values.
func Load(configPath, envPath string) (Config, error) {
	cfg, err := loadFile(configPath)
	if err != nil {
		return Config{}, err
	}

	found, err := loadEnvFile(envPath)
	if err != nil {
		return Config{}, err
	}
	cfg.EnvFile = envPath
	cfg.EnvFileFound = found

	return applyEnvironmentOverrides(cfg), nil
}

func loadFile(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Decode over the defaults so keys missing from older files keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Active returns the settings of the configured provider.
func (c Config) Active() ProviderSettings {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.Providers.OpenAI
	case ProviderGoogle:
		return c.Providers.Google
	default:
		return ProviderSettings{
			APIKey:            c.OpenRouter.APIKey,
			APIURL:            c.OpenRouter.APIURL,
			Model:             c.OpenRouter.Model,
			Temperature:       c.OpenRouter.Temperature,
			MaxTokens:         c.OpenRouter.MaxTokens,
			APITimeoutSeconds: c.OpenRouter.APITimeoutSeconds,
		}
	}
}

// SetModel changes the model of the configured provider.
func (c *Config) SetModel(model string) {
	switch c.LLMProvider {
	case ProviderOpenAI:
		c.Providers.OpenAI.Model = model
	case ProviderGoogle:
		c.Providers.Google.Model = model
	default:
		c.OpenRouter.Model = model
	}
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderOpenRouter, ProviderOpenAI, ProviderGoogle:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, c.LLMProvider)
	}

	active := c.Active()

	key := strings.TrimSpace(active.APIKey)
	if key == "" {
		return fmt.Errorf("%s: %w", c.LLMProvider, ErrMissingAPIKey)
	}
	if IsPlaceholderKey(key) {
		return fmt.Errorf("%s: %w", c.LLMProvider, ErrPlaceholderAPIKey)
	}

	if strings.TrimSpace(active.Model) == "" {
		return fmt.Errorf("model is required")
	}

	if active.Temperature < 0 || active.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", active.Temperature)
	}

	if active.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", active.MaxTokens)
	}

	if active.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", active.APITimeoutSeconds)
	}

	return nil
}

// IsPlaceholderKey reports whether key is one of the sample values from the docs.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	for _, p := range placeholderKeys {
		if strings.EqualFold(key, p) {
			return true
		}
	}
	return false
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".termchat/config.json"
	}
	return filepath.Join(homeDir, ".termchat", "config.json")
}

// DefaultEnvPath returns the .env file looked up in the working directory.
func DefaultEnvPath() string {
	return ".env"
}

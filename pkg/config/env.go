package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// loadEnvFile exports the KEY=VALUE pairs of path into the process environment.
// Variables already set in the environment are left untouched. A missing file is not an error.
func loadEnvFile(path string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return true, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	slog.Debug("env_file_loaded", "path", path)
	return true, nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg Config) Config {
	if provider := strings.ToLower(strings.TrimSpace(os.Getenv("TERMCHAT_LLM_PROVIDER"))); provider != "" {
		cfg.LLMProvider = provider
	}

	if apiKey := os.Getenv("OPENROUTER_API_KEY"); apiKey != "" {
		slog.Debug("config_env_override", "key", "OPENROUTER_API_KEY")
		cfg.OpenRouter.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.Providers.OpenAI.APIKey = apiKey
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		cfg.Providers.Google.APIKey = apiKey
	} else if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		cfg.Providers.Google.APIKey = apiKey
	}

	if model := strings.TrimSpace(os.Getenv("DEFAULT_MODEL")); model != "" {
		slog.Debug("config_env_override", "key", "DEFAULT_MODEL", "value", model)
		cfg.SetModel(model)
	}

	if apiURL := strings.TrimSpace(os.Getenv("TERMCHAT_API_URL")); apiURL != "" {
		switch cfg.LLMProvider {
		case ProviderOpenAI:
			cfg.Providers.OpenAI.APIURL = apiURL
		case ProviderGoogle:
			cfg.Providers.Google.APIURL = apiURL
		default:
			cfg.OpenRouter.APIURL = apiURL
		}
	}

	if tempStr := os.Getenv("TERMCHAT_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil && temp >= 0 && temp <= 2 {
			cfg.OpenRouter.Temperature = temp
			cfg.Providers.OpenAI.Temperature = temp
			cfg.Providers.Google.Temperature = temp
		}
	}

	if tokensStr := os.Getenv("TERMCHAT_MAX_TOKENS"); tokensStr != "" {
		if tokens, err := strconv.Atoi(tokensStr); err == nil && tokens > 0 {
			cfg.OpenRouter.MaxTokens = tokens
			cfg.Providers.OpenAI.MaxTokens = tokens
			cfg.Providers.Google.MaxTokens = tokens
		}
	}

	if timeoutStr := os.Getenv("TERMCHAT_API_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil && timeout > 0 {
			cfg.OpenRouter.APITimeoutSeconds = timeout
			cfg.Providers.OpenAI.APITimeoutSeconds = timeout
			cfg.Providers.Google.APITimeoutSeconds = timeout
		}
	}

	if logLevel := strings.ToLower(os.Getenv("TERMCHAT_LOG_LEVEL")); logLevel != "" {
		switch logLevel {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = logLevel
		}
	}

	if logFile := strings.TrimSpace(os.Getenv("TERMCHAT_LOG_FILE")); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg
}

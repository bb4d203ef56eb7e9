package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"termchat/pkg/ai"
	"termchat/pkg/config"
	"termchat/pkg/ui/styles"
)

// keyEnvVars names the variable each provider reads its credential from.
var keyEnvVars = map[string]string{
	config.ProviderOpenRouter: "OPENROUTER_API_KEY",
	config.ProviderOpenAI:     "OPENAI_API_KEY",
	config.ProviderGoogle:     "GEMINI_API_KEY",
}

type authHelp struct {
	keysURL   string
	keyFormat string
}

var authHelpByProvider = map[string]authHelp{
	config.ProviderOpenRouter: {keysURL: "https://openrouter.ai/keys", keyFormat: "should start with 'sk-or-'"},
	config.ProviderOpenAI:     {keysURL: "https://platform.openai.com/api-keys", keyFormat: "should start with 'sk-'"},
	config.ProviderGoogle:     {keysURL: "https://aistudio.google.com/apikey", keyFormat: "a Gemini API key"},
}

func keyEnvVar(provider string) string {
	if name, ok := keyEnvVars[provider]; ok {
		return name
	}
	return "OPENROUTER_API_KEY"
}

// writeConfigDiagnostic explains why startup stopped before any request was sent.
func writeConfigDiagnostic(w io.Writer, p styles.Palette, cfg config.Config, configPath string, err error) {
	envVar := keyEnvVar(cfg.LLMProvider)
	envFile := cfg.EnvFile
	if envFile == "" {
		envFile = config.DefaultEnvPath()
	}

	switch {
	case errors.Is(err, config.ErrPlaceholderAPIKey):
		fmt.Fprintln(w, p.Warning.Render("You're using a placeholder API key in your .env file."))
		fmt.Fprintf(w, "Please edit the %s file and set your actual %s API key.\n", envFile, ai.ProviderName(ai.ProviderType(cfg.LLMProvider)))
	case errors.Is(err, config.ErrMissingAPIKey) && cfg.EnvFileFound:
		fmt.Fprintln(w, p.Warning.Render(fmt.Sprintf("Found .env file but %s is not set properly.", envVar)))
		fmt.Fprintf(w, "Please edit the %s file and set your API key.\n", envFile)
	case errors.Is(err, config.ErrMissingAPIKey):
		dir, absErr := filepath.Abs(filepath.Dir(envFile))
		if absErr != nil {
			dir = filepath.Dir(envFile)
		}
		fmt.Fprintln(w, p.Warning.Render("No .env file or environment variable found for API key."))
		fmt.Fprintf(w, "Please create a .env file in %s with your API key:\n", dir)
		fmt.Fprintf(w, "%s=your_api_key_here\n", envVar)
	case errors.Is(err, config.ErrUnsupportedProvider):
		fmt.Fprintln(w, p.Error.Render(fmt.Sprintf("Invalid configuration: %v", err)))
		fmt.Fprintf(w, "Set llm_provider in %s to one of:\n", configPath)
		for _, info := range ai.ListProviders() {
			fmt.Fprintf(w, "  %-12s %s\n", info.Type, info.Description)
		}
	default:
		fmt.Fprintln(w, p.Error.Render(fmt.Sprintf("Invalid configuration: %v", err)))
		fmt.Fprintf(w, "Please check %s.\n", configPath)
	}
}

// writeAuthDiagnostic is shown when the remote service rejects the credential.
func writeAuthDiagnostic(w io.Writer, p styles.Palette, provider string) {
	help, ok := authHelpByProvider[provider]
	if !ok {
		help = authHelpByProvider[config.ProviderOpenRouter]
	}
	name := ai.ProviderName(ai.ProviderType(provider))

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Error.Render(fmt.Sprintf("Authentication Error (401): Your API key was rejected by %s.", name)))
	fmt.Fprintln(w, p.Warning.Render("Please check that:"))
	fmt.Fprintf(w, "1. Your API key is correct in the .env file or %s\n", keyEnvVar(provider))
	fmt.Fprintf(w, "2. Your account is active at %s\n", help.keysURL)
	fmt.Fprintf(w, "3. You've properly formatted the key (%s)\n", help.keyFormat)
}

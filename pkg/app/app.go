// Package app wires configuration, logging, a provider and the console into
// a running chat session. Both binaries call Run with their own Variant.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"termchat/pkg/ai"
	"termchat/pkg/config"
	"termchat/pkg/logging"
	"termchat/pkg/session"
	"termchat/pkg/ui/console"
	"termchat/pkg/ui/effects"
	"termchat/pkg/ui/styles"
	"termchat/pkg/ui/welcome"
	"termchat/pkg/version"
)

const (
	exitOK      = 0
	exitFailure = 1
)

// exit is replaced in tests.
var exit = os.Exit

// Options are the process-level inputs of Run.
type Options struct {
	Variant Variant
	Args    []string
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	// HandleSignals installs the Ctrl+C handler, which exits the process.
	HandleSignals bool
}

type flags struct {
	configPath string
	envPath    string
	model      string
	version    bool
}

func parseFlags(program string, args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", config.GetConfigPath(), "path to the JSON config file")
	fs.StringVar(&f.envPath, "env", config.DefaultEnvPath(), "path to a .env file with API keys")
	fs.StringVar(&f.model, "model", "", "model to start with (overrides config and DEFAULT_MODEL)")
	fs.BoolVar(&f.version, "version", false, "print version information and exit")
	err := fs.Parse(args)
	return f, err
}

// Run executes one program invocation and returns its exit code.
func Run(ctx context.Context, opts Options) int {
	v := opts.Variant

	f, err := parseFlags(v.Program, opts.Args, opts.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitFailure
	}

	if f.version {
		fmt.Fprint(opts.Stdout, version.Info(v.Program))
		return exitOK
	}

	cfg, err := config.Load(f.configPath, f.envPath)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "Error loading config: %v\n", err)
		return exitFailure
	}
	if f.model != "" {
		cfg.SetModel(f.model)
	}

	if _, err := logging.Init(v.Program, cfg); err != nil {
		fmt.Fprintf(opts.Stderr, "Warning: logging disabled: %v\n", err)
	}
	slog.Info("app_start",
		"version", version.Summary(),
		"log_file", logging.Path(v.Program, cfg),
		"provider", cfg.LLMProvider,
		"config_path", f.configPath,
		"env_file", cfg.EnvFile,
		"env_file_found", cfg.EnvFileFound,
	)

	errPalette := styles.For(colorFor(opts.Stderr, cfg.Display.Color))
	if err := cfg.Validate(); err != nil {
		slog.Error("config_invalid", "error", err)
		writeConfigDiagnostic(opts.Stderr, errPalette, cfg, f.configPath, err)
		return exitFailure
	}

	active := cfg.Active()
	slog.Info("config_loaded",
		"model", active.Model,
		"api_key", logging.MaskKey(active.APIKey),
		"temperature", active.Temperature,
		"max_tokens", active.MaxTokens,
	)

	provider, err := ai.GetProviderFromConfig(cfg, version.UserAgent(v.Program))
	if err != nil {
		slog.Error("provider_init_failed", "provider", cfg.LLMProvider, "error", err)
		fmt.Fprintln(opts.Stderr, errPalette.Error.Render(fmt.Sprintf("Error: %v", err)))
		return exitFailure
	}

	out := newConsole(v, cfg.Display, opts.Stdout)
	out.Banner(welcome.Message(bannerInfo(v, cfg), out.Palette()))

	if opts.HandleSignals {
		stop := installInterruptHandler(out)
		defer stop()
	}

	sess := session.New(session.Config{
		Model:        active.Model,
		Temperature:  active.Temperature,
		MaxTokens:    active.MaxTokens,
		SystemPrompt: cfg.SystemPrompt,
	}, provider, out, session.WithProgress(newProgress(v, cfg.Display, opts.Stdout, out.Palette())))

	if err := sess.Run(ctx, opts.Stdin); err != nil {
		if ai.IsFatal(err) {
			writeAuthDiagnostic(opts.Stderr, errPalette, cfg.LLMProvider)
			return exitFailure
		}
		slog.Error("session_failed", "error", err)
		fmt.Fprintln(opts.Stderr, errPalette.Error.Render(ai.FormatError(err)))
		return exitFailure
	}

	slog.Info("app_exit", "model", sess.Model(), "messages", len(sess.Transcript()))
	return exitOK
}

func colorFor(w io.Writer, want bool) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return console.ColorEnabled(f, want)
}

func newConsole(v Variant, display config.DisplayConfig, stdout io.Writer) *console.Console {
	opts := console.Options{
		Color:      colorFor(stdout, display.Color),
		ReplyLabel: v.ReplyLabel,
		Goodbye:    v.Goodbye,
		Compact:    v.Compact,
	}
	if v.ForceTyping || display.TypingEffect {
		opts.Typewriter = effects.NewTypewriter(time.Duration(display.TypingDelayMs) * time.Millisecond)
	}
	return console.New(stdout, opts)
}

// newProgress picks the reporter shown while a completion call blocks.
func newProgress(v Variant, display config.DisplayConfig, stdout io.Writer, p styles.Palette) session.ProgressReporter {
	switch {
	case v.ForceSpinner || display.Spinner:
		if !console.IsTerminal(stdout) {
			// Piped output cannot be redrawn, so print the label once.
			return effects.NewNotice(stdout, v.ThinkingText, p.Thinking.Render)
		}
		interval := time.Duration(display.SpinnerIntervalMs) * time.Millisecond
		return effects.NewSpinner(stdout, v.SpinnerLabel, interval).WithStyle(p.Thinking.Render)
	case display.ThinkingNotice:
		return effects.NewNotice(stdout, v.ThinkingText, p.Warning.Render)
	default:
		return nil
	}
}

func bannerInfo(v Variant, cfg config.Config) welcome.Info {
	info := welcome.Info{Title: v.Title}
	if v.ShowDetails {
		info.Provider = ai.ProviderName(ai.ProviderType(cfg.LLMProvider))
		info.Model = cfg.Active().Model
		info.KeySource = welcome.KeySource(cfg.EnvFile, cfg.EnvFileFound)
		info.Hints = welcome.DefaultHints()
	}
	return info
}

// installInterruptHandler ends the process with status 0 on Ctrl+C or SIGTERM.
// An in-flight request is abandoned; nothing else needs cleanup.
// The returned func releases the signals once the session is over.
func installInterruptHandler(out *console.Console) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("app_interrupted", "signal", sig.String())
			out.Interrupted()
			exit(exitOK)
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(done)
		})
	}
}

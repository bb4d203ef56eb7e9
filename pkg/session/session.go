// Package session runs the interactive chat loop: it reads lines, handles the
// exit and model-switch directives, and sends everything else to a provider
// together with the conversation so far.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"termchat/pkg/ai"
)

// Messages shown by the loop.
const (
	ModelChangedFormat = "Model changed to: %s"
	InvalidModelNotice = "Invalid model format. Try again."
)

// Config is the explicit per-session configuration. The model is the only
// field that changes while the session runs.
type Config struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

// State of the session loop.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Display renders the session to the user.
type Display interface {
	Prompt()
	Reply(text string)
	Info(msg string)
	Error(msg string)
	Goodbye()
}

// Option customizes a Session.
type Option func(*Session)

// WithProgress shows p around each completion call.
func WithProgress(p ProgressReporter) Option {
	return func(s *Session) {
		if p != nil {
			s.progress = p
		}
	}
}

// Session holds the transcript and active model of one conversation.
type Session struct {
	cfg        Config
	provider   ai.Provider
	display    Display
	progress   ProgressReporter
	transcript *ai.Transcript
	state      State
}

// New starts a session in the Running state, seeded with the system prompt.
func New(cfg Config, provider ai.Provider, display Display, opts ...Option) *Session {
	s := &Session{
		cfg:        cfg,
		provider:   provider,
		display:    display,
		progress:   noProgress{},
		transcript: ai.NewTranscript(cfg.SystemPrompt),
		state:      StateRunning,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current loop state.
func (s *Session) State() State {
	return s.state
}

// Model returns the active model identifier.
func (s *Session) Model() string {
	return s.cfg.Model
}

// Transcript returns a snapshot of the conversation.
func (s *Session) Transcript() []ai.Message {
	return s.transcript.Messages()
}

// Handle processes one input line. It returns a non-nil error only when the
// session cannot continue, in which case the state is already Terminated.
func (s *Session) Handle(ctx context.Context, line string) error {
	if s.state == StateTerminated {
		return nil
	}

	in := parseInput(line)
	switch in.kind {
	case inputEmpty:
		return nil
	case inputExit:
		slog.Info("session_exit", "reason", "keyword", "messages", s.transcript.Len())
		s.terminate()
		return nil
	case inputModel:
		slog.Info("session_model_changed", "from", s.cfg.Model, "to", in.text)
		s.cfg.Model = in.text
		s.display.Info(fmt.Sprintf(ModelChangedFormat, in.text))
		return nil
	case inputInvalidModel:
		slog.Debug("session_model_invalid", "input", strings.TrimSpace(line))
		s.display.Error(InvalidModelNotice)
		return nil
	}

	return s.complete(ctx, in.text)
}

func (s *Session) complete(ctx context.Context, content string) error {
	req := ai.ChatRequest{
		Model:       s.cfg.Model,
		Messages:    s.transcript.WithUser(content),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	}

	slog.Debug("session_completion_start",
		"model", req.Model,
		"message_count", len(req.Messages),
	)

	start := time.Now()
	s.progress.Start()
	resp, err := s.provider.CreateChatCompletion(ctx, req)
	s.progress.Stop()
	duration := time.Since(start)

	if err != nil {
		if ai.IsFatal(err) {
			slog.Error("session_auth_rejected", "model", req.Model, "error", err)
			s.state = StateTerminated
			return fmt.Errorf("completion: %w", err)
		}
		slog.Warn("session_completion_failed",
			"model", req.Model,
			"error", err,
			"duration_ms", duration.Milliseconds(),
		)
		reply := ai.FormatError(err)
		s.transcript.AppendExchange(content, reply)
		s.display.Reply(reply)
		return nil
	}

	// Routers such as openrouter/auto report the model that actually answered.
	slog.Info("session_completion_done",
		"model", req.Model,
		"reply_model", resp.Model,
		"reply_length", len(resp.Content),
		"duration_ms", duration.Milliseconds(),
	)
	s.transcript.AppendExchange(content, resp.Content)
	s.display.Reply(resp.Content)
	return nil
}

func (s *Session) terminate() {
	if s.state == StateTerminated {
		return
	}
	s.state = StateTerminated
	s.display.Goodbye()
}

// Run prompts and handles lines from r until the session terminates or r is
// exhausted. End of input is a graceful exit.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	reader := bufio.NewReader(r)
	for s.state == StateRunning {
		s.display.Prompt()

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			s.state = StateTerminated
			return fmt.Errorf("read input: %w", readErr)
		}

		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			if err := s.Handle(ctx, line); err != nil {
				return err
			}
		}

		if errors.Is(readErr, io.EOF) {
			slog.Info("session_exit", "reason", "eof", "messages", s.transcript.Len())
			s.terminate()
		}
	}
	return nil
}

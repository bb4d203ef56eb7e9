// Package logging sends structured logs to a rotating file per program.
// The terminal belongs to the chat, so nothing here writes to stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"termchat/pkg/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logDirName    = "logs"
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Path returns the log file for program. An explicit cfg.LogFile wins;
// otherwise each binary gets its own file under ~/.termchat/logs.
func Path(program string, cfg config.Config) string {
	if p := strings.TrimSpace(cfg.LogFile); p != "" {
		return p
	}
	if program == "" {
		program = "termchat"
	}
	base := ".termchat"
	if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
		base = filepath.Join(home, ".termchat")
	}
	return filepath.Join(base, logDirName, program+".log")
}

// Init installs the default slog logger for program. Every record carries the
// program name and process id so runs of both binaries can be told apart.
// When the log directory cannot be created, logs are discarded and the error returned.
func Init(program string, cfg config.Config) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}
	path := Path(program, cfg)

	var out io.Writer = io.Discard
	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err == nil {
		out = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
			Compress:   true,
		}
	}

	logger := slog.New(newHandler(cfg.LogFormat, out, opts)).With(
		"program", program,
		"pid", os.Getpid(),
	)
	slog.SetDefault(logger)
	return logger, err
}

// MaskKey keeps the first and last four characters of a credential.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}

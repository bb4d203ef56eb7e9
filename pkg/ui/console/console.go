// Package console writes the chat session to a terminal.
package console

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"termchat/pkg/ui/effects"
	"termchat/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

const (
	DefaultPromptLabel = "You: "
	DefaultReplyLabel  = "AI: "
	DefaultGoodbye     = "\nGoodbye! Have a nice day!\n\n"
	InterruptedNotice  = "Program interrupted. Goodbye!"
)

// Options controls how the console renders a session.
type Options struct {
	Color       bool
	PromptLabel string
	ReplyLabel  string
	// Goodbye is written verbatim when the session ends.
	Goodbye string
	// Compact drops the blank line after each reply.
	Compact bool
	// Typewriter types replies out when set.
	Typewriter *effects.Typewriter
}

// Console renders prompts, replies and notices as plain lines.
type Console struct {
	out     io.Writer
	opts    Options
	palette styles.Palette
}

// New returns a console writing to out.
func New(out io.Writer, opts Options) *Console {
	if opts.PromptLabel == "" {
		opts.PromptLabel = DefaultPromptLabel
	}
	if opts.ReplyLabel == "" {
		opts.ReplyLabel = DefaultReplyLabel
	}
	if opts.Goodbye == "" {
		opts.Goodbye = DefaultGoodbye
	}
	return &Console{
		out:     out,
		opts:    opts,
		palette: styles.For(opts.Color),
	}
}

// ColorEnabled reports whether styled output should be written to f.
func ColorEnabled(f *os.File, want bool) bool {
	if !want || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether w is a terminal, so lines can be redrawn in place.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Palette returns the styles in use.
func (c *Console) Palette() styles.Palette {
	return c.palette
}

func (c *Console) Prompt() {
	c.write(c.paint(c.palette.Prompt, c.opts.PromptLabel))
}

// Reply writes the assistant's answer, or the error string that replaced it.
func (c *Console) Reply(text string) {
	c.write(c.paint(c.palette.ReplyLabel, c.opts.ReplyLabel))

	if c.opts.Typewriter != nil {
		if err := c.opts.Typewriter.Type(c.out, text); err != nil {
			slog.Debug("console_write_failed", "error", err)
		}
	} else {
		style := c.palette.ReplyText
		if strings.HasPrefix(text, "Error: ") {
			style = c.palette.Error
		}
		c.write(c.paint(style, text) + "\n")
	}

	if !c.opts.Compact {
		c.write("\n")
	}
}

func (c *Console) Info(msg string) {
	c.write(c.paint(c.palette.Info, msg) + "\n")
}

func (c *Console) Error(msg string) {
	c.write(c.paint(c.palette.Error, msg) + "\n")
}

func (c *Console) Goodbye() {
	c.write(c.paint(c.palette.Info, c.opts.Goodbye))
}

// Interrupted is written when the user presses Ctrl+C at any point.
func (c *Console) Interrupted() {
	c.write(c.paint(c.palette.Info, "\n\n"+InterruptedNotice+"\n\n"))
}

// Banner writes preformatted text such as the welcome box.
func (c *Console) Banner(text string) {
	c.write(text)
}

// paint styles each non-empty line on its own so text keeps its exact layout.
func (c *Console) paint(style lipgloss.Style, s string) string {
	if !c.opts.Color {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Console) write(s string) {
	if _, err := fmt.Fprint(c.out, s); err != nil {
		slog.Debug("console_write_failed", "error", err)
	}
}

package welcome

import (
	"strings"
	"testing"

	"termchat/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

func testInfo() Info {
	return Info{
		Title:     "✨ Simple Terminal Chatbot ✨",
		Model:     "openrouter/auto",
		Provider:  "OpenRouter",
		KeySource: KeySource(".env", true),
		Hints:     DefaultHints(),
	}
}

func TestMessage_ContainsDetails(t *testing.T) {
	msg := ansi.Strip(Message(testInfo(), styles.Colored()))

	want := []string{
		"Simple Terminal Chatbot",
		"openrouter/auto",
		"OpenRouter",
		"Loaded from .env",
		"exit",
		"model:<id>",
	}
	for _, s := range want {
		if !strings.Contains(msg, s) {
			t.Errorf("Expected welcome message to contain %q", s)
		}
	}
}

func TestMessage_ContainsBorder(t *testing.T) {
	msg := Message(testInfo(), styles.Plain())
	if !strings.Contains(msg, "╭") || !strings.Contains(msg, "╰") {
		t.Error("Expected welcome message to contain box border characters")
	}
}

func TestMessage_LinesHaveEqualWidth(t *testing.T) {
	info := testInfo()
	info.Model = strings.Repeat("very-long-model-name/", 6)

	msg := ansi.Strip(Message(info, styles.Colored()))
	for _, line := range strings.Split(msg, "\n") {
		if line == "" {
			continue
		}
		if got := ansi.StringWidth(line); got != boxWidth+2 {
			t.Errorf("Expected line width %d, got %d: %q", boxWidth+2, got, line)
		}
	}
}

func TestMessage_PlainHasNoEscapes(t *testing.T) {
	msg := Message(testInfo(), styles.Plain())
	if strings.Contains(msg, "\x1b[") {
		t.Errorf("Expected plain palette to emit no ANSI sequences, got %q", msg)
	}
}

func TestMessage_OmitsEmptyFields(t *testing.T) {
	msg := Message(Info{Title: "Chatbot ready"}, styles.Plain())
	if strings.Contains(msg, "Current model:") || strings.Contains(msg, "Commands:") {
		t.Errorf("Expected empty fields to be omitted, got:\n%s", msg)
	}
}

func TestKeySource(t *testing.T) {
	if got := KeySource("/tmp/.env", true); got != "✓ Loaded from /tmp/.env" {
		t.Errorf("KeySource(found) = %q", got)
	}
	if got := KeySource("/tmp/.env", false); strings.Contains(got, "/tmp/.env") {
		t.Errorf("KeySource(missing) should not name the file, got %q", got)
	}
}

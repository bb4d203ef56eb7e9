package welcome

import (
	"fmt"
	"strings"

	"termchat/pkg/ui/styles"
	"termchat/pkg/version"

	"github.com/mattn/go-runewidth"
)

// Total inner width of the box.
const boxWidth = 53

// Info is what the banner reports about the session being started.
type Info struct {
	Title     string
	Model     string
	Provider  string
	KeySource string
	Hints     []Hint
}

// Hint is one key/description row in the banner.
type Hint struct {
	Key  string
	Desc string
}

// DefaultHints lists the commands the session loop understands.
func DefaultHints() []Hint {
	return []Hint{
		{Key: "exit", Desc: "Quit (also: quit, bye)"},
		{Key: "model:<id>", Desc: "Switch the model for later messages"},
		{Key: "Ctrl+C", Desc: "Interrupt and leave"},
	}
}

// Message returns the welcome box printed before the first prompt.
func Message(info Info, p styles.Palette) string {
	// Helper: create a line with content padded to boxWidth
	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return p.Border.Render("│") + content + strings.Repeat(" ", pad) + p.Border.Render("│")
	}
	centered := func(text string, style func(...string) string) string {
		text = truncateToWidth(text, boxWidth-4)
		width := runewidth.StringWidth(text)
		leftPad := (boxWidth - width) / 2
		return makeLine(strings.Repeat(" ", leftPad)+style(text), leftPad+width)
	}
	field := func(label, value string) string {
		labelText := fmt.Sprintf("  %-15s", label)
		value = truncateToWidth(value, boxWidth-runewidth.StringWidth(labelText)-1)
		line := p.Header.Render(labelText) + p.Desc.Render(value)
		return makeLine(line, runewidth.StringWidth(labelText)+runewidth.StringWidth(value))
	}

	top := p.Border.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := p.Border.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, top)
	lines = append(lines, centered(info.Title, p.Title.Render))
	lines = append(lines, empty)

	if info.Provider != "" {
		lines = append(lines, field("Provider:", info.Provider))
	}
	if info.Model != "" {
		lines = append(lines, field("Current model:", info.Model))
	}
	if info.KeySource != "" {
		lines = append(lines, field("API key:", info.KeySource))
	}

	if len(info.Hints) > 0 {
		lines = append(lines, empty)
		header := "  Commands:"
		lines = append(lines, makeLine(p.Header.Render(header), runewidth.StringWidth(header)))
		for _, h := range info.Hints {
			keyFormatted := fmt.Sprintf("    %-12s", h.Key)
			desc := truncateToWidth(h.Desc, boxWidth-runewidth.StringWidth(keyFormatted))
			line := p.Key.Render(keyFormatted) + p.Desc.Render(desc)
			lines = append(lines, makeLine(line, runewidth.StringWidth(keyFormatted)+runewidth.StringWidth(desc)))
		}
	}

	lines = append(lines, empty)
	lines = append(lines, centered(version.Summary(), p.Version.Render))
	lines = append(lines, bottom)
	lines = append(lines, "")

	return strings.Join(lines, "\n") + "\n"
}

// KeySource describes where the credential came from, without revealing it.
func KeySource(envFile string, envFileFound bool) string {
	if envFileFound {
		return "✓ Loaded from " + envFile
	}
	return "✓ Loaded from environment or config"
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	if width <= 3 {
		return runewidth.Truncate(text, width, "")
	}
	return runewidth.Truncate(text, width, "...")
}

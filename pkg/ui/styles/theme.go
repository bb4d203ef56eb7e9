// Package styles provides the shared color palette and text styles for termchat output.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText      = lipgloss.Color("252") // Primary text
	ColorTextMuted = lipgloss.Color("245") // Secondary/muted text

	// Semantic colors
	ColorError   = lipgloss.Color("196") // Error messages
	ColorWarning = lipgloss.Color("214") // Warnings and notices
	ColorSuccess = lipgloss.Color("42")  // Confirmations

	// Role colors
	ColorUser = lipgloss.Color("39")  // "You:" prompt
	ColorBot  = lipgloss.Color("219") // Reply label

	ColorBorder = lipgloss.Color("99")
)

// Conversation styles
var (
	// PromptStyle labels the user's input line
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	// ReplyLabelStyle labels the assistant's reply
	ReplyLabelStyle = lipgloss.NewStyle().
			Foreground(ColorBot).
			Bold(true)

	ReplyTextStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// Feedback styles
var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ThinkingStyle for the progress notice shown during a call
	ThinkingStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Welcome banner styles
var (
	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBot).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("248"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	DescStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	VersionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Palette bundles the styles a writer applies, so plain output can swap in no-op styles.
type Palette struct {
	Prompt     lipgloss.Style
	ReplyLabel lipgloss.Style
	ReplyText  lipgloss.Style
	Info       lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Thinking   lipgloss.Style
	Border     lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Key        lipgloss.Style
	Desc       lipgloss.Style
	Version    lipgloss.Style
}

// Colored returns the palette built from the package styles.
func Colored() Palette {
	return Palette{
		Prompt:     PromptStyle,
		ReplyLabel: ReplyLabelStyle,
		ReplyText:  ReplyTextStyle,
		Info:       InfoStyle,
		Error:      ErrorStyle,
		Warning:    WarningStyle,
		Thinking:   ThinkingStyle,
		Border:     BorderStyle,
		Title:      TitleStyle,
		Header:     HeaderStyle,
		Key:        KeyStyle,
		Desc:       DescStyle,
		Version:    VersionStyle,
	}
}

// Plain returns a palette whose styles render text unchanged.
func Plain() Palette {
	plain := lipgloss.NewStyle()
	return Palette{
		Prompt:     plain,
		ReplyLabel: plain,
		ReplyText:  plain,
		Info:       plain,
		Error:      plain,
		Warning:    plain,
		Thinking:   plain,
		Border:     plain,
		Title:      plain,
		Header:     plain,
		Key:        plain,
		Desc:       plain,
		Version:    plain,
	}
}

// For picks the colored or plain palette.
func For(color bool) Palette {
	if color {
		return Colored()
	}
	return Plain()
}

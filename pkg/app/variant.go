package app

// Variant describes how one binary presents the shared session loop.
type Variant struct {
	Program    string
	Title      string
	ReplyLabel string
	// Goodbye is written verbatim on a graceful exit.
	Goodbye string
	// Compact drops the blank line after replies.
	Compact bool
	// ShowDetails adds provider, model and key source to the banner.
	ShowDetails bool
	// ForceTyping types replies out regardless of the display config.
	ForceTyping bool
	// ForceSpinner animates progress regardless of the display config.
	ForceSpinner bool
	SpinnerLabel string
	ThinkingText string
}

// TermChat is the full chat: details in the banner, a thinking notice and colored output.
func TermChat() Variant {
	return Variant{
		Program:      "termchat",
		Title:        "Simple Terminal Chatbot with OpenRouter",
		ReplyLabel:   "AI: ",
		Goodbye:      "\nGoodbye! Have a nice day!\n\n",
		ShowDetails:  true,
		SpinnerLabel: "AI is thinking",
		ThinkingText: "AI is thinking...",
	}
}

// TypeChat animates a spinner during the call and types the reply out.
func TypeChat() Variant {
	return Variant{
		Program:      "typechat",
		Title:        "🤖 Chatbot ready! Type 'exit' to quit.",
		ReplyLabel:   "Bot: ",
		Goodbye:      "Bot: Goodbye!\n",
		Compact:      true,
		ForceTyping:  true,
		ForceSpinner: true,
		SpinnerLabel: "Bot is typing",
		ThinkingText: "Bot is typing...",
	}
}

package effects

import (
	"io"
)

// Notice prints one static line when a call starts. It has no background work.
type Notice struct {
	out   io.Writer
	text  string
	style func(...string) string
}

// NewNotice returns a notice that prints text, rendered with style when non-nil.
func NewNotice(out io.Writer, text string, style func(...string) string) *Notice {
	if style == nil {
		style = func(s ...string) string { return s[0] }
	}
	return &Notice{out: out, text: text, style: style}
}

func (n *Notice) Start() {
	_, _ = io.WriteString(n.out, n.style(n.text)+"\n")
}

func (n *Notice) Stop() {}

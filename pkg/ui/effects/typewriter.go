// Package effects holds the cosmetic console effects: typed-out replies and
// progress indicators shown while a completion call blocks.
package effects

import (
	"io"
	"time"
	"unicode/utf8"
)

// DefaultTypingDelay is the pause between characters.
const DefaultTypingDelay = 30 * time.Millisecond

// Typewriter writes text one rune at a time.
type Typewriter struct {
	Delay time.Duration
	sleep func(time.Duration)
}

// NewTypewriter returns a typewriter with the given per-rune delay.
// A non-positive delay falls back to DefaultTypingDelay.
func NewTypewriter(delay time.Duration) *Typewriter {
	if delay <= 0 {
		delay = DefaultTypingDelay
	}
	return &Typewriter{Delay: delay, sleep: time.Sleep}
}

// Type writes text to w, pausing after every rune, and ends with a newline.
func (tw *Typewriter) Type(w io.Writer, text string) error {
	sleep := tw.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for len(text) > 0 {
		_, size := utf8.DecodeRuneInString(text)
		if _, err := io.WriteString(w, text[:size]); err != nil {
			return err
		}
		text = text[size:]
		if f, ok := w.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
		sleep(tw.Delay)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

package ai

import (
	"errors"
	"fmt"
)

// Role tags a message within a transcript.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single chat message for LLM requests.
type Message struct {
	Role    Role
	Content string
}

func SystemMessage(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func UserMessage(content string) Message      { return Message{Role: RoleUser, Content: content} }
func AssistantMessage(content string) Message { return Message{Role: RoleAssistant, Content: content} }

var errTranscriptOrder = errors.New("transcript order violated")

// Transcript is the append-only history of one session.
// It holds at most one leading system message followed by user/assistant pairs.
type Transcript struct {
	messages []Message
}

// NewTranscript seeds a transcript with systemPrompt, or with nothing when it is empty.
func NewTranscript(systemPrompt string) *Transcript {
	t := &Transcript{}
	if systemPrompt != "" {
		t.messages = append(t.messages, SystemMessage(systemPrompt))
	}
	return t
}

// Len returns the number of messages, including the system message.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a snapshot of the transcript.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// WithUser returns a snapshot with a pending user message appended.
// The transcript itself is not modified.
func (t *Transcript) WithUser(content string) []Message {
	out := make([]Message, len(t.messages), len(t.messages)+1)
	copy(out, t.messages)
	return append(out, UserMessage(content))
}

// AppendExchange commits a user message and the reply it produced.
func (t *Transcript) AppendExchange(user, assistant string) {
	t.messages = append(t.messages, UserMessage(user), AssistantMessage(assistant))
}

// CheckOrder verifies the system-then-alternating layout of msgs.
func CheckOrder(msgs []Message) error {
	next := RoleUser
	for i, msg := range msgs {
		if i == 0 && msg.Role == RoleSystem {
			continue
		}
		if msg.Role != next {
			return fmt.Errorf("%w: message %d has role %q, want %q", errTranscriptOrder, i, msg.Role, next)
		}
		if next == RoleUser {
			next = RoleAssistant
		} else {
			next = RoleUser
		}
	}
	return nil
}

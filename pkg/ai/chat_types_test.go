package ai

import (
	"errors"
	"testing"
)

func TestNewTranscript_SeedsSystemPrompt(t *testing.T) {
	tr := NewTranscript("be brief")
	if tr.Len() != 1 {
		t.Fatalf("expected 1 message, got %d", tr.Len())
	}
	if msgs := tr.Messages(); msgs[0].Role != RoleSystem || msgs[0].Content != "be brief" {
		t.Fatalf("expected system message, got %+v", msgs[0])
	}

	empty := NewTranscript("")
	if empty.Len() != 0 {
		t.Fatalf("expected empty transcript, got %d messages", empty.Len())
	}
	if msgs := empty.Messages(); len(msgs) != 0 {
		t.Fatalf("expected no messages, got %+v", msgs)
	}
}

func TestTranscript_WithUserDoesNotMutate(t *testing.T) {
	tr := NewTranscript("sys")
	msgs := tr.WithUser("hello")

	if tr.Len() != 1 {
		t.Fatalf("expected transcript to stay at 1 message, got %d", tr.Len())
	}
	if len(msgs) != 2 || msgs[1] != UserMessage("hello") {
		t.Fatalf("unexpected snapshot: %+v", msgs)
	}

	// Changing the snapshot must not leak back.
	msgs[0].Content = "changed"
	if got := tr.Messages()[0].Content; got != "sys" {
		t.Fatalf("expected snapshot isolation, got %q", got)
	}
}

func TestTranscript_AppendExchangeKeepsOrder(t *testing.T) {
	tr := NewTranscript("sys")
	tr.AppendExchange("one", "reply one")
	tr.AppendExchange("two", "reply two")

	msgs := tr.Messages()
	if len(msgs) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(msgs))
	}
	if err := CheckOrder(msgs); err != nil {
		t.Fatalf("CheckOrder() error: %v", err)
	}
	if msgs[4] != AssistantMessage("reply two") {
		t.Fatalf("unexpected last message: %+v", msgs[4])
	}
}

func TestCheckOrder_Rejects(t *testing.T) {
	tests := map[string][]Message{
		"two users":          {UserMessage("a"), UserMessage("b")},
		"assistant first":    {AssistantMessage("a")},
		"late system":        {UserMessage("a"), SystemMessage("b")},
		"two system prompts": {SystemMessage("a"), SystemMessage("b")},
	}
	for name, msgs := range tests {
		if err := CheckOrder(msgs); !errors.Is(err, errTranscriptOrder) {
			t.Errorf("%s: expected order error, got %v", name, err)
		}
	}
}

func TestChatRequest_Validate(t *testing.T) {
	valid := ChatRequest{
		Model:       "openrouter/auto",
		Messages:    []Message{UserMessage("hi")},
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := []ChatRequest{
		{Model: "", Messages: valid.Messages, Temperature: 0.7, MaxTokens: 1},
		{Model: "m", Messages: []Message{SystemMessage("only system")}, Temperature: 0.7, MaxTokens: 1},
		{Model: "m", Messages: valid.Messages, Temperature: 2.1, MaxTokens: 1},
		{Model: "m", Messages: valid.Messages, Temperature: 0.7, MaxTokens: 0},
	}
	for i, req := range bad {
		if err := req.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

package effects

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// syncBuffer lets the spinner goroutine write while the test polls.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTypewriter_WritesEveryRune(t *testing.T) {
	var out bytes.Buffer
	var sleeps []time.Duration
	tw := NewTypewriter(10 * time.Millisecond)
	tw.sleep = func(d time.Duration) { sleeps = append(sleeps, d) }

	text := "Hi, 世界 🤖"
	if err := tw.Type(&out, text); err != nil {
		t.Fatalf("Type() error: %v", err)
	}

	if out.String() != text+"\n" {
		t.Fatalf("Expected %q, got %q", text+"\n", out.String())
	}
	if want := len([]rune(text)); len(sleeps) != want {
		t.Fatalf("Expected %d pauses, got %d", want, len(sleeps))
	}
	for _, d := range sleeps {
		if d != 10*time.Millisecond {
			t.Fatalf("Expected 10ms pause, got %s", d)
		}
	}
}

func TestTypewriter_DefaultDelay(t *testing.T) {
	tw := NewTypewriter(0)
	if tw.Delay != DefaultTypingDelay {
		t.Fatalf("Expected default delay %s, got %s", DefaultTypingDelay, tw.Delay)
	}
}

func TestTypewriter_EmptyText(t *testing.T) {
	var out bytes.Buffer
	tw := NewTypewriter(time.Millisecond)
	tw.sleep = func(time.Duration) { t.Fatal("Expected no pause for empty text") }

	if err := tw.Type(&out, ""); err != nil {
		t.Fatalf("Type() error: %v", err)
	}
	if out.String() != "\n" {
		t.Fatalf("Expected lone newline, got %q", out.String())
	}
}

func TestSpinner_StopJoinsAndClears(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "Bot is typing", 5*time.Millisecond)

	s.Start()
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "Bot is typing...") {
		if time.Now().After(deadline) {
			t.Fatalf("Spinner never reached the last frame, got %q", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()

	written := out.String()
	if !strings.HasSuffix(written, "\r"+ansi.EraseEntireLine) {
		t.Fatalf("Expected spinner to clear its line on stop, got %q", written)
	}

	// Nothing is painted once Stop has returned.
	time.Sleep(20 * time.Millisecond)
	if out.String() != written {
		t.Fatal("Spinner wrote after Stop returned")
	}
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "x", time.Millisecond)
	s.Stop()
	if out.String() != "" {
		t.Fatalf("Expected no output, got %q", out.String())
	}
}

func TestSpinner_Restart(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "wait", time.Hour)

	for i := 0; i < 2; i++ {
		s.Start()
		s.Start()
		s.Stop()
	}
	if got := strings.Count(out.String(), "wait"); got != 2 {
		t.Fatalf("Expected one frame per run, got %d in %q", got, out.String())
	}
}

func TestSpinner_DefaultInterval(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "x", 0)
	if s.interval != DefaultSpinnerInterval {
		t.Fatalf("Expected default interval %s, got %s", DefaultSpinnerInterval, s.interval)
	}
}

func TestNotice(t *testing.T) {
	var out bytes.Buffer
	n := NewNotice(&out, "AI is thinking...", nil)
	n.Start()
	n.Stop()

	if out.String() != "AI is thinking...\n" {
		t.Fatalf("Expected single notice line, got %q", out.String())
	}
}

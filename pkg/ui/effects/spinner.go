package effects

import (
	"io"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/charmbracelet/x/ansi"
)

// DefaultSpinnerInterval is how often the spinner repaints.
const DefaultSpinnerInterval = 500 * time.Millisecond

// Spinner repaints "<label><frame>" on one line from a background goroutine.
// Stop joins the goroutine and clears the line, so nothing it writes can
// interleave with output that follows.
type Spinner struct {
	out      io.Writer
	label    string
	frames   []string
	interval time.Duration
	style    func(...string) string

	mu      sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
	running bool
}

// NewSpinner builds a spinner that cycles the bubbles Ellipsis frames after label.
func NewSpinner(out io.Writer, label string, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = DefaultSpinnerInterval
	}
	return &Spinner{
		out:      out,
		label:    label,
		frames:   spinner.Ellipsis.Frames,
		interval: interval,
		style:    func(s ...string) string { return s[0] },
	}
}

// WithStyle sets the render function applied to each painted frame.
func (s *Spinner) WithStyle(render func(...string) string) *Spinner {
	if render != nil {
		s.style = render
	}
	return s
}

// Start paints the first frame and begins repainting. Calling Start on a
// running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})

	s.wg.Add(1)
	go s.loop(s.stop)
}

func (s *Spinner) loop(stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		s.paint(frame)
		frame = (frame + 1) % len(s.frames)

		select {
		case <-stop:
			_, _ = io.WriteString(s.out, "\r"+ansi.EraseEntireLine)
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) paint(frame int) {
	_, _ = io.WriteString(s.out, "\r"+ansi.EraseEntireLine+s.style(s.label+s.frames[frame]))
}

// Stop signals the painter and waits for it to clear its line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
}

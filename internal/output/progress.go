package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the given writer exposes an Fd() method
// (e.g. *os.File) and that fd is a terminal. Falls back to false for
// plain io.Writer values such as *bytes.Buffer.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar shows how far a batch upload has got.
// Example: [=========>          ]  45% 9/20 Analyzing texts
type ProgressBar struct {
	total       int
	current     int
	description string
	width       int
	printed     bool
	mu          sync.Mutex
	writer      io.Writer
}

// NewProgress creates a progress bar writing to stderr.
func NewProgress(total int, description string) *ProgressBar {
	return &ProgressBar{
		total:       total,
		description: description,
		width:       30,
		writer:      os.Stderr,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// Increment advances the bar by one text and redraws it.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.render()
}

// Finish fills the bar and ends the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total

	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
		return
	}
	if !p.printed {
		p.render()
	}
}

// render draws the bar (must be called with lock held). On a non-TTY
// writer only the completed bar is printed.
func (p *ProgressBar) render() {
	percentage := 100
	filled := p.width
	if p.total > 0 {
		percentage = (p.current * 100) / p.total
		filled = (p.current * p.width) / p.total
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteString("=")
		case i == filled-1:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")

	line := fmt.Sprintf("%s %3d%% %d/%d %s", bar.String(), percentage, p.current, p.total, p.description)

	if writerIsTTY(p.writer) {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else if p.current == p.total && !p.printed {
		fmt.Fprintln(p.writer, line)
		p.printed = true
	}
}

// Spinner shows an animated "working" message while a simulated analysis
// runs.
type Spinner struct {
	message string
	frames  []string
	mu      sync.Mutex
	writer  io.Writer
	clock   clockwork.Clock
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		writer:  os.Stderr,
		clock:   clockwork.NewRealClock(),
	}
}

// SetWriter sets the output writer (useful for testing).
func (s *Spinner) SetWriter(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer = w
}

// SetClock replaces the real clock.
func (s *Spinner) SetClock(c clockwork.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = c
}

// RunFor animates the spinner for d and then clears its line. On a non-TTY
// writer the message is printed once and RunFor still waits for d.
func (s *Spinner) RunFor(d time.Duration) {
	s.mu.Lock()
	w, clock := s.writer, s.clock
	s.mu.Unlock()

	if !writerIsTTY(w) {
		fmt.Fprintln(w, s.message)
		clock.Sleep(d)
		return
	}

	ticker := clock.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	deadline := clock.After(d)

	idx := 0
	for {
		fmt.Fprintf(w, "\r%s %s", s.frames[idx], s.message)
		idx = (idx + 1) % len(s.frames)

		select {
		case <-ticker.Chan():
		case <-deadline:
			fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len([]rune(s.message))+2))
			return
		}
	}
}

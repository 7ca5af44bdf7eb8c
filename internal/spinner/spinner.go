// Package spinner shows pipeline progress on stderr while a query is answered.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var defaultFrames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Spinner draws an animated status line until stopped.
type Spinner struct {
	out    io.Writer
	frames []string
	delay  time.Duration

	mu      sync.Mutex
	message string
	cancel  context.CancelFunc // nil when not running
	done    chan struct{}
}

// New creates a stopped spinner writing to out.
func New(out io.Writer, message string) *Spinner {
	return &Spinner{
		out:     out,
		frames:  defaultFrames,
		delay:   100 * time.Millisecond,
		message: message,
	}
}

// Start begins drawing; it stops on its own when ctx is done.
func (s *Spinner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Update replaces the status message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Running reports whether the spinner is drawing.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Stop halts drawing and clears the status line. Stopping a stopped spinner is a no-op.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.cancel = nil
	done := s.done
	s.mu.Unlock()

	<-done

	if IsTerminal(s.out) {
		fmt.Fprint(s.out, "\r\033[2K")
	} else {
		fmt.Fprint(s.out, "\r")
	}
}

func (s *Spinner) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			message := s.message
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r%s %s", s.frames[frame%len(s.frames)], message)
		}
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

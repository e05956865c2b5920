package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Braille dot spinner frames.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on w while a model call runs.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frame), Dim(s.message))
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner creates and starts a spinner; call the result to stop it.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}

// Package focuslock runs the focus-lock countdown. A completed countdown is
// the only thing that credits focus minutes to the engagement record.
package focuslock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// ErrInvalidDuration is returned when a session is started with a
// non-positive number of minutes.
var ErrInvalidDuration = errors.New("focus duration must be positive")

// MaxMinutes caps a single session.
const MaxMinutes = domain.MaxFocusMinutes

// Session is the countdown state machine. It is driven by Tick, one call
// per elapsed second, and is not safe for concurrent use.
type Session struct {
	state domain.FocusSession
}

// Start arms the countdown. Starting an active session restarts it.
func (s *Session) Start(now time.Time, minutes int) error {
	if minutes <= 0 || minutes > MaxMinutes {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, minutes)
	}
	total := minutes * 60
	s.state = domain.FocusSession{
		Active:           true,
		StartTime:        now,
		DurationSeconds:  total,
		RemainingSeconds: total,
	}
	return nil
}

// Tick consumes one second and reports whether the countdown just finished.
// Ticks on an inactive session are ignored.
func (s *Session) Tick() bool {
	if !s.state.Active {
		return false
	}
	s.state.RemainingSeconds--
	if s.state.RemainingSeconds <= 0 {
		s.state.RemainingSeconds = 0
		s.state.Active = false
		return true
	}
	return false
}

// Cancel stops the countdown without completing it.
func (s *Session) Cancel() {
	s.state.Active = false
}

// Active reports whether the countdown is still running.
func (s *Session) Active() bool { return s.state.Active }

// Remaining returns the seconds left.
func (s *Session) Remaining() int { return s.state.RemainingSeconds }

// Minutes returns the configured session length in whole minutes.
func (s *Session) Minutes() int { return s.state.DurationSeconds / 60 }

// Progress returns the elapsed fraction in [0, 1].
func (s *Session) Progress() float64 {
	if s.state.DurationSeconds == 0 {
		return 0
	}
	elapsed := s.state.DurationSeconds - s.state.RemainingSeconds
	return float64(elapsed) / float64(s.state.DurationSeconds)
}

// Format renders the remaining time as MM:SS. Minutes are not wrapped at 60.
func (s *Session) Format() string {
	return FormatClock(s.state.RemainingSeconds)
}

// State returns a copy of the underlying session record.
func (s *Session) State() domain.FocusSession { return s.state }

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// BreakHold models the emergency exit: the user must keep holding for the
// configured number of seconds before the session is abandoned. It is safe
// for concurrent use.
type BreakHold struct {
	mu       sync.Mutex
	required int
	held     int
	holding  bool
}

// NewBreakHold creates a hold that completes after seconds ticks. Values
// below one are raised to one.
func NewBreakHold(seconds int) *BreakHold {
	return &BreakHold{required: max(seconds, 1)}
}

// Begin starts (or restarts) holding.
func (b *BreakHold) Begin() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holding = true
	b.held = 0
}

// Release abandons the hold; progress is lost.
func (b *BreakHold) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holding = false
	b.held = 0
}

// Tick advances a held break by one second and reports completion.
func (b *BreakHold) Tick() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.holding {
		return false
	}
	b.held++
	if b.held >= b.required {
		b.holding = false
		return true
	}
	return false
}

// Holding reports whether the break key is being held.
func (b *BreakHold) Holding() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.holding
}

// Left returns the seconds still to hold.
func (b *BreakHold) Left() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.required - b.held
}

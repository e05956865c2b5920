package focuslock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

var (
	// ErrCancelled is returned when a run ends before the countdown completes.
	ErrCancelled = errors.New("focus session cancelled")

	// ErrAlreadyRunning is returned when Run is called during another run.
	ErrAlreadyRunning = errors.New("a focus session is already running")
)

// Recorder receives the minutes of a completed session.
type Recorder interface {
	RecordFocusCompleted(ctx context.Context, minutes int) (domain.UserStats, error)
}

// Ticker is the subset of *time.Ticker the runner needs.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

// NewRealTicker wraps time.NewTicker.
func NewRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Completion describes a session that ran to zero.
type Completion struct {
	Minutes    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTicker replaces the wall-clock ticker.
func WithTicker(f TickerFactory) RunnerOption {
	return func(r *Runner) { r.newTicker = f }
}

// WithNow replaces time.Now for session timestamps.
func WithNow(now func() time.Time) RunnerOption {
	return func(r *Runner) { r.now = now }
}

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// Runner drives a Session from a one-second ticker.
type Runner struct {
	recorder  Recorder
	newTicker TickerFactory
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewRunner creates a Runner that credits completed sessions to rec.
func NewRunner(rec Recorder, opts ...RunnerOption) *Runner {
	r := &Runner{
		recorder:  rec,
		newTicker: NewRealTicker,
		now:       time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until the countdown completes or ctx is done. onTick, if
// non-nil, sees the session after every tick. Only a completed run records
// focus minutes.
func (r *Runner) Run(ctx context.Context, minutes int, onTick func(domain.FocusSession)) (*Completion, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	defer r.release()

	var s Session
	if err := s.Start(r.now(), minutes); err != nil {
		return nil, err
	}
	r.logger.Info("focus_start", "minutes", minutes)

	ticker := r.newTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Cancel()
			r.logger.Info("focus_cancelled", "remaining_sec", s.Remaining())
			return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		case <-ticker.C():
			done := s.Tick()
			if onTick != nil {
				onTick(s.State())
			}
			if !done {
				continue
			}
			// onTick may have abandoned the run on its final tick.
			if err := ctx.Err(); err != nil {
				r.logger.Info("focus_cancelled", "remaining_sec", 0)
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			}
			c := &Completion{Minutes: minutes, StartedAt: s.State().StartTime, FinishedAt: r.now()}
			if _, err := r.recorder.RecordFocusCompleted(ctx, minutes); err != nil {
				return c, fmt.Errorf("recording focus minutes: %w", err)
			}
			r.logger.Info("focus_complete", "minutes", minutes)
			return c, nil
		}
	}
}

func (r *Runner) acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return ErrAlreadyRunning
	}
	r.running = true
	return nil
}

func (r *Runner) release() {
	r.mu.Lock()
	r.running = false
	r.mu.Unlock()
}

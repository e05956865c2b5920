// Package engagement owns the persisted engagement record: the daily
// streak reconciliation, badge unlocks, the bounded entry-time log and the
// views derived from them.
package engagement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// ErrInvalidMinutes is returned when a focus session reports no time, more
// than domain.MaxFocusMinutes, or an amount the running total cannot hold.
var ErrInvalidMinutes = errors.New("focus minutes out of range")

// Tracker serialises every read-modify-write of the stats behind a mutex
// and persists after each mutation. The in-memory record only changes once
// the write succeeded.
type Tracker struct {
	mu     sync.Mutex
	store  Store
	clock  Clock
	loc    *time.Location
	logger *slog.Logger
	stats  domain.UserStats
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for recovered anomalies.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithLocation sets the zone that decides calendar days and time-of-day views.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// NewTracker creates a Tracker. Call Initialize before anything else.
func NewTracker(store Store, clock Clock, opts ...Option) *Tracker {
	if clock == nil {
		clock = SystemClock{}
	}
	t := &Tracker{
		store:  store,
		clock:  clock,
		loc:    time.Local,
		logger: slog.New(slog.DiscardHandler),
		stats:  domain.NewUserStats(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Initialize loads the stored record. A missing or malformed blob yields
// the zero-state record; only a failing store read is returned.
func (t *Tracker) Initialize(ctx context.Context) (domain.UserStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	raw, ok, err := t.store.Get(ctx, StatsKey)
	if err != nil {
		return domain.UserStats{}, fmt.Errorf("loading stats: %w", err)
	}
	if !ok {
		t.stats = domain.NewUserStats()
		return t.stats.Clone(), nil
	}

	stats, err := DecodeStats(raw)
	if err != nil {
		t.logger.WarnContext(ctx, "stats blob unreadable, starting fresh", "error", err)
		stats = domain.NewUserStats()
	}
	t.stats = stats
	return t.stats.Clone(), nil
}

// Synchronize runs the daily reconciliation at now. The calendar day is the
// one in the tracker's location. Repeated calls on the same calendar day
// leave the record untouched and write nothing.
func (t *Tracker) Synchronize(ctx context.Context, now time.Time) (domain.UserStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now = now.In(t.loc)
	next, outcome := Reconcile(t.stats, now)
	if !outcome.Changed() {
		return t.stats.Clone(), nil
	}
	if outcome == OutcomeClockSkew {
		t.logger.WarnContext(ctx, "last used date ahead of today or unreadable, streak reset",
			"last_used", derefDate(t.stats.LastUsedDate), "today", now.Format(domain.DateLayout))
	}
	if err := t.commit(ctx, next); err != nil {
		return domain.UserStats{}, err
	}
	t.logger.DebugContext(ctx, "engagement synchronized",
		"outcome", string(outcome), "streak", next.CurrentStreak)
	return t.stats.Clone(), nil
}

// SynchronizeNow runs Synchronize against the tracker's clock.
func (t *Tracker) SynchronizeNow(ctx context.Context) (domain.UserStats, error) {
	return t.Synchronize(ctx, t.clock.Now())
}

// RecordPlanGenerated counts one more generated plan.
func (t *Tracker) RecordPlanGenerated(ctx context.Context) (domain.UserStats, error) {
	return t.mutate(ctx, func(s *domain.UserStats) error {
		s.TotalPlansGenerated++
		return nil
	})
}

// RecordFocusCompleted adds the minutes of a finished focus session.
func (t *Tracker) RecordFocusCompleted(ctx context.Context, minutes int) (domain.UserStats, error) {
	return t.mutate(ctx, func(s *domain.UserStats) error {
		if minutes <= 0 || minutes > domain.MaxFocusMinutes {
			return fmt.Errorf("%w: got %d", ErrInvalidMinutes, minutes)
		}
		if s.TotalFocusMinutes > math.MaxInt-minutes {
			return fmt.Errorf("%w: total of %d cannot grow by %d", ErrInvalidMinutes, s.TotalFocusMinutes, minutes)
		}
		s.TotalFocusMinutes += minutes
		return nil
	})
}

// SetProfile stores the onboarding profile, ending onboarding mode.
func (t *Tracker) SetProfile(ctx context.Context, p domain.Profile) (domain.UserStats, error) {
	return t.mutate(ctx, func(s *domain.UserStats) error {
		cp := p.Clone()
		s.NeuralProfile = &cp
		return nil
	})
}

// ResetProfile clears the profile so onboarding runs again. Streak, badges,
// counters and the entry log are kept.
func (t *Tracker) ResetProfile(ctx context.Context) (domain.UserStats, error) {
	return t.mutate(ctx, func(s *domain.UserStats) error {
		s.NeuralProfile = nil
		return nil
	})
}

// Snapshot returns a copy of the current record.
func (t *Tracker) Snapshot() domain.UserStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Clone()
}

// IsOnboarding is true while no profile is stored.
func (t *Tracker) IsOnboarding() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.IsOnboarding()
}

// MedianEntryTime is the median time of day of recent entries.
func (t *Tracker) MedianEntryTime() (EntryTime, bool) {
	s := t.Snapshot()
	return MedianEntryTime(s.EntryTimeHistory, t.loc)
}

// ActivityHeatmap marks activity for the trailing windowDays ending today.
func (t *Tracker) ActivityHeatmap(windowDays int) []DayActivity {
	s := t.Snapshot()
	return ActivityHeatmap(s.EntryTimeHistory, t.clock.Now().In(t.loc), windowDays)
}

// BurnoutLoadIndex is the cyclic focus-load percentage.
func (t *Tracker) BurnoutLoadIndex() float64 {
	return BurnoutLoadIndex(t.Snapshot().TotalFocusMinutes)
}

// LoadLevel buckets BurnoutLoadIndex.
func (t *Tracker) LoadLevel() LoadLevel {
	return LoadLevelFor(t.BurnoutLoadIndex())
}

// NextBadge returns the next locked badge and the streak days it still needs.
func (t *Tracker) NextBadge() (domain.Achievement, int, bool) {
	return NextBadge(t.Snapshot())
}

// UnlockedBadges returns the unlocked catalog entries.
func (t *Tracker) UnlockedBadges() []domain.Achievement {
	return UnlockedBadges(t.Snapshot())
}

func (t *Tracker) mutate(ctx context.Context, fn func(*domain.UserStats) error) (domain.UserStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.stats.Clone()
	if err := fn(&next); err != nil {
		return domain.UserStats{}, err
	}
	if err := t.commit(ctx, next); err != nil {
		return domain.UserStats{}, err
	}
	return t.stats.Clone(), nil
}

// commit must be called with mu held.
func (t *Tracker) commit(ctx context.Context, next domain.UserStats) error {
	raw, err := EncodeStats(next)
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, StatsKey, raw); err != nil {
		return fmt.Errorf("persisting stats: %w", err)
	}
	t.stats = next
	return nil
}

// EncodeStats serialises the record to its stored JSON form.
func EncodeStats(s domain.UserStats) (string, error) {
	s.Normalize()
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding stats: %w", err)
	}
	return string(data), nil
}

// DecodeStats parses a stored blob and repairs out-of-range values.
func DecodeStats(raw string) (domain.UserStats, error) {
	var s domain.UserStats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.UserStats{}, fmt.Errorf("decoding stats: %w", err)
	}
	s.Normalize()
	if len(s.EntryTimeHistory) > MaxEntryHistory {
		s.EntryTimeHistory = s.EntryTimeHistory[len(s.EntryTimeHistory)-MaxEntryHistory:]
	}
	return s, nil
}

func derefDate(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}

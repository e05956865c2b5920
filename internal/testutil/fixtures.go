package testutil

import (
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/google/uuid"
)

// Plan options
type PlanOption func(*domain.PlanRecord)

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.PlanRecord) {
		p.CreatedAt = t
	}
}

func WithStreak(n int) PlanOption {
	return func(p *domain.PlanRecord) {
		p.Streak = n
	}
}

func WithBurnoutAlert(level domain.BurnoutLevel) PlanOption {
	return func(p *domain.PlanRecord) {
		p.Result.BurnoutAlert = &domain.BurnoutAlert{
			Level:          level,
			Message:        "Load is elevated.",
			RecoveryAction: "Take a 10 minute walk.",
		}
	}
}

func WithQuickWins(wins ...string) PlanOption {
	return func(p *domain.PlanRecord) {
		p.Result.QuickWins = wins
	}
}

func NewTestPlan(goals string, opts ...PlanOption) *domain.PlanRecord {
	p := &domain.PlanRecord{
		ID:      uuid.New().String(),
		History: "Skipped standup twice, finished the report late.",
		Goals:   goals,
		Streak:  1,
		Result: domain.PlanResult{
			Insights:    "Mornings are strongest.",
			AdaptedPlan: "1. Draft outline\n2. Fill sections",
			Explanation: "Smaller steps lower the start cost.",
			QuickWins:   []string{"Open the document"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Profile options
type ProfileOption func(*domain.Profile)

func WithContext(c domain.WorkContext) ProfileOption {
	return func(p *domain.Profile) {
		p.Context = c
	}
}

func WithScores(s domain.NeuralScores) ProfileOption {
	return func(p *domain.Profile) {
		p.Scores = s
	}
}

func NewTestProfile(primaryType string, opts ...ProfileOption) *domain.Profile {
	p := &domain.Profile{
		PrimaryType:     primaryType,
		Traits:          []string{"Time blindness", "Hyperfocus bursts"},
		Context:         domain.ContextCorporate,
		Recommendations: []string{"Use visible timers", "Batch small tasks"},
		Scores:          domain.NeuralScores{Focus: 40, Sensory: 60, Processing: 70, Executive: 35},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats options
type StatsOption func(*domain.UserStats)

func WithCurrentStreak(n int) StatsOption {
	return func(s *domain.UserStats) {
		s.CurrentStreak = n
		s.HighestStreak = max(s.HighestStreak, n)
	}
}

func WithFocusMinutes(m int) StatsOption {
	return func(s *domain.UserStats) {
		s.TotalFocusMinutes = m
	}
}

func WithLastUsed(date string) StatsOption {
	return func(s *domain.UserStats) {
		s.LastUsedDate = &date
	}
}

func WithBadges(ids ...string) StatsOption {
	return func(s *domain.UserStats) {
		s.UnlockedBadgeIDs = append(s.UnlockedBadgeIDs, ids...)
	}
}

func WithProfile(p *domain.Profile) StatsOption {
	return func(s *domain.UserStats) {
		s.NeuralProfile = p
	}
}

func WithEntries(ts ...time.Time) StatsOption {
	return func(s *domain.UserStats) {
		s.EntryTimeHistory = append(s.EntryTimeHistory, ts...)
	}
}

func NewTestStats(opts ...StatsOption) domain.UserStats {
	s := domain.NewUserStats()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

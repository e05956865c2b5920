package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
)

var (
	// ErrLLMDisabled is returned by AI-backed use cases when no model is configured.
	ErrLLMDisabled = errors.New("LLM is disabled")

	// ErrPatternDataRequired is returned when history or goals are blank.
	ErrPatternDataRequired = errors.New("pattern data required: both history and goals must be filled in")
)

// EngagementTracker is the slice of *engagement.Tracker the services use.
type EngagementTracker interface {
	Snapshot() domain.UserStats
	IsOnboarding() bool
	MedianEntryTime() (engagement.EntryTime, bool)
	ActivityHeatmap(windowDays int) []engagement.DayActivity
	BurnoutLoadIndex() float64
	UnlockedBadges() []domain.Achievement
	RecordPlanGenerated(ctx context.Context) (domain.UserStats, error)
	RecordFocusCompleted(ctx context.Context, minutes int) (domain.UserStats, error)
	SetProfile(ctx context.Context, p domain.Profile) (domain.UserStats, error)
	ResetProfile(ctx context.Context) (domain.UserStats, error)
}

type EngagementService interface {
	Status(ctx context.Context) (*StatusView, error)
	Badges(ctx context.Context) ([]BadgeView, error)
	LogFocus(ctx context.Context, minutes int) (*domain.UserStats, error)
}

type OnboardingService interface {
	Complete(ctx context.Context, answers map[string]string) (*domain.Profile, error)
	Reset(ctx context.Context) error
	Profile(ctx context.Context) (*domain.Profile, error)
}

type PlanService interface {
	Generate(ctx context.Context, history, goals string) (*domain.PlanRecord, error)
	Latest(ctx context.Context) (*domain.PlanRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PlanRecord, error)
}

type CoachService interface {
	Ask(ctx context.Context, message string) (string, error)

	// Converse answers message inside conv, starting a new conversation
	// with the current profile when conv is nil.
	Converse(ctx context.Context, conv *intelligence.ChatConversation, message string) (*intelligence.ChatConversation, string, error)
}

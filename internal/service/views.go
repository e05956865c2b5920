package service

import (
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
)

// StatusView is the dashboard: the raw record plus every derived view.
type StatusView struct {
	Stats       domain.UserStats
	Onboarding  bool
	MedianEntry *engagement.EntryTime
	Heatmap     []engagement.DayActivity
	LoadIndex   float64
	LoadLevel   engagement.LoadLevel
	Badges      []domain.Achievement
	NextBadge   *NextBadgeView
}

// NextBadgeView is the closest locked achievement.
type NextBadgeView struct {
	Badge    domain.Achievement
	DaysLeft int
}

// BadgeView is one catalog entry with its unlock state.
type BadgeView struct {
	domain.Achievement
	Unlocked bool
}

package service

import (
	"context"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
)

type engagementService struct {
	tracker     EngagementTracker
	heatmapDays int
	observer    UseCaseObserver
}

// NewEngagementService builds the dashboard and focus-logging use cases.
// heatmapDays <= 0 uses the tracker default.
func NewEngagementService(tracker EngagementTracker, heatmapDays int, observers ...UseCaseObserver) EngagementService {
	return &engagementService{
		tracker:     tracker,
		heatmapDays: heatmapDays,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *engagementService) Status(ctx context.Context) (view *StatusView, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "status", startedAt, err, nil)
	}()

	stats := s.tracker.Snapshot()
	load := s.tracker.BurnoutLoadIndex()
	view = &StatusView{
		Stats:      stats,
		Onboarding: s.tracker.IsOnboarding(),
		Heatmap:    s.tracker.ActivityHeatmap(s.heatmapDays),
		LoadIndex:  load,
		LoadLevel:  engagement.LoadLevelFor(load),
		Badges:     s.tracker.UnlockedBadges(),
	}
	if et, ok := s.tracker.MedianEntryTime(); ok {
		view.MedianEntry = &et
	}
	if next, left, ok := engagement.NextBadge(stats); ok {
		view.NextBadge = &NextBadgeView{Badge: next, DaysLeft: left}
	}
	return view, nil
}

func (s *engagementService) Badges(ctx context.Context) (badges []BadgeView, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "badges", startedAt, err, nil)
	}()

	stats := s.tracker.Snapshot()
	badges = make([]BadgeView, 0, len(domain.Achievements))
	for _, a := range domain.Achievements {
		badges = append(badges, BadgeView{Achievement: a, Unlocked: stats.HasBadge(a.ID)})
	}
	return badges, nil
}

func (s *engagementService) LogFocus(ctx context.Context, minutes int) (stats *domain.UserStats, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "log-focus", startedAt, err, map[string]any{"minutes": minutes})
	}()

	updated, err := s.tracker.RecordFocusCompleted(ctx, minutes)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

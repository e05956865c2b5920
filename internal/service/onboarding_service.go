package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
)

type onboardingService struct {
	tracker  EngagementTracker
	profiles intelligence.ProfileService
	observer UseCaseObserver
}

func NewOnboardingService(tracker EngagementTracker, profiles intelligence.ProfileService, observers ...UseCaseObserver) OnboardingService {
	return &onboardingService{
		tracker:  tracker,
		profiles: profiles,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Complete turns questionnaire answers into a profile and stores it, which
// ends onboarding mode.
func (s *onboardingService) Complete(ctx context.Context, answers map[string]string) (profile *domain.Profile, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"context": answers["context"]}
	defer func() {
		observe(ctx, s.observer, "onboard", startedAt, err, fields)
	}()

	if err = domain.ValidateAnswers(answers); err != nil {
		return nil, fmt.Errorf("questionnaire: %w", err)
	}

	profile, err = s.profiles.GenerateProfile(ctx, answers)
	if err != nil {
		return nil, fmt.Errorf("generating profile: %w", err)
	}
	fields["primary_type"] = profile.PrimaryType

	if _, err = s.tracker.SetProfile(ctx, *profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Reset clears the stored profile; streaks, badges and counters stay.
func (s *onboardingService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "reset-profile", startedAt, err, nil)
	}()

	_, err = s.tracker.ResetProfile(ctx)
	return err
}

// Profile returns the stored profile, or nil while onboarding.
func (s *onboardingService) Profile(_ context.Context) (*domain.Profile, error) {
	stats := s.tracker.Snapshot()
	return stats.NeuralProfile, nil
}

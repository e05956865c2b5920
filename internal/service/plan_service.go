package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuralplan/internal/db"
	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/intelligence"
	"github.com/alexanderramin/neuralplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	tracker      EngagementTracker
	analysis     intelligence.AnalysisService
	plans        repository.PlanRepo
	uow          db.UnitOfWork
	historyLimit int
	observer     UseCaseObserver
}

// NewPlanService wires plan generation. analysis may be nil when the LLM is
// disabled; Generate then returns ErrLLMDisabled. historyLimit bounds the
// number of stored plans.
func NewPlanService(
	tracker EngagementTracker,
	analysis intelligence.AnalysisService,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	historyLimit int,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		tracker:      tracker,
		analysis:     analysis,
		plans:        plans,
		uow:          uow,
		historyLimit: historyLimit,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// Generate analyses history and goals. Only a successful analysis counts as
// a generated plan; failures leave the engagement record untouched.
func (s *planService) Generate(ctx context.Context, history, goals string) (record *domain.PlanRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observe(ctx, s.observer, "generate-plan", startedAt, err, fields)
	}()

	if s.analysis == nil {
		return nil, ErrLLMDisabled
	}
	history, goals = strings.TrimSpace(history), strings.TrimSpace(goals)
	if history == "" || goals == "" {
		return nil, ErrPatternDataRequired
	}

	stats := s.tracker.Snapshot()
	fields["streak"] = stats.CurrentStreak

	result, err := s.analysis.AnalyzePatterns(ctx, intelligence.AnalysisRequest{
		History: history,
		Goals:   goals,
		Streak:  stats.CurrentStreak,
		Profile: stats.NeuralProfile,
	})
	if err != nil {
		return nil, err
	}

	record = &domain.PlanRecord{
		ID:        uuid.New().String(),
		History:   history,
		Goals:     goals,
		Streak:    stats.CurrentStreak,
		Result:    *result,
		CreatedAt: time.Now().UTC(),
	}
	if result.BurnoutAlert != nil {
		fields["burnout_level"] = string(result.BurnoutAlert.Level)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.Create(ctx, record); err != nil {
			return err
		}
		if s.historyLimit > 0 {
			pruned, err := txPlans.PruneKeepingLatest(ctx, s.historyLimit)
			if err != nil {
				return err
			}
			fields["pruned"] = pruned
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}

	if _, err = s.tracker.RecordPlanGenerated(ctx); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *planService) Latest(ctx context.Context) (*domain.PlanRecord, error) {
	return s.plans.Latest(ctx)
}

func (s *planService) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRecord, error) {
	return s.plans.ListRecent(ctx, limit)
}

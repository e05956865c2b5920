package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/llm"
)

// ErrAnalysisFailed is returned when no plan could be produced. The call can
// be retried as-is.
var ErrAnalysisFailed = errors.New("analysis failed, please try again")

// Placeholders applied when the model leaves a field empty.
const (
	DefaultInsights    = "Analysis incomplete."
	DefaultAdaptedPlan = "Plan generation failed."
	DefaultExplanation = "Explanation unavailable."
)

// AnalysisRequest carries everything the planner sees.
type AnalysisRequest struct {
	History string
	Goals   string
	Streak  int
	Profile *domain.Profile
}

// AnalysisService turns behavioural history and goals into an adapted plan.
type AnalysisService interface {
	AnalyzePatterns(ctx context.Context, req AnalysisRequest) (*domain.PlanResult, error)
}

type analysisService struct {
	client llm.LLMClient
}

// NewAnalysisService creates an AnalysisService backed by an LLM client.
func NewAnalysisService(client llm.LLMClient) AnalysisService {
	return &analysisService{client: client}
}

func (s *analysisService) AnalyzePatterns(ctx context.Context, req AnalysisRequest) (*domain.PlanResult, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnalyze,
		SystemPrompt: analysisSystemPrompt,
		UserPrompt:   buildAnalysisPrompt(req),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	result, err := llm.ExtractJSON[domain.PlanResult](resp.Text, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	applyResultDefaults(&result)
	return &result, nil
}

func buildAnalysisPrompt(req AnalysisRequest) string {
	profile := "Not analyzed yet"
	if req.Profile != nil {
		if data, err := json.Marshal(req.Profile); err == nil {
			profile = string(data)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "USER PROFILE: %s\n", profile)
	fmt.Fprintf(&b, "USER METRICS: current streak %d days.\n", req.Streak)
	fmt.Fprintf(&b, "HISTORICAL DATA:\n%s\n", req.History)
	fmt.Fprintf(&b, "NEXT DAY GOALS:\n%s\n", req.Goals)
	return b.String()
}

// applyResultDefaults fills empty fields with placeholders and drops a
// burnout alert the UI could not render.
func applyResultDefaults(r *domain.PlanResult) {
	if strings.TrimSpace(r.Insights) == "" {
		r.Insights = DefaultInsights
	}
	if strings.TrimSpace(r.AdaptedPlan) == "" {
		r.AdaptedPlan = DefaultAdaptedPlan
	}
	if strings.TrimSpace(r.Explanation) == "" {
		r.Explanation = DefaultExplanation
	}
	if r.QuickWins == nil {
		r.QuickWins = []string{}
	}
	if a := r.BurnoutAlert; a != nil {
		a.Level = domain.BurnoutLevel(strings.ToLower(strings.TrimSpace(string(a.Level))))
		if !domain.ValidBurnoutLevels[a.Level] || strings.TrimSpace(a.Message) == "" {
			r.BurnoutAlert = nil
		}
	}
}

package intelligence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/llm"
)

// ProfileService derives a cognitive profile from onboarding answers.
type ProfileService interface {
	// GenerateProfile never fails on model errors; it falls back to
	// DeterministicProfile instead. Only a cancelled context is returned.
	GenerateProfile(ctx context.Context, answers map[string]string) (*domain.Profile, error)
}

type profileService struct {
	client llm.LLMClient
}

// NewProfileService creates a ProfileService. A nil client always yields
// the deterministic profile.
func NewProfileService(client llm.LLMClient) ProfileService {
	return &profileService{client: client}
}

// profilePayload mirrors the model's JSON output.
type profilePayload struct {
	PrimaryType     string              `json:"primaryType"`
	Traits          []string            `json:"traits"`
	Recommendations []string            `json:"recommendations"`
	Scores          domain.NeuralScores `json:"scores"`
}

func validateProfilePayload(p profilePayload) error {
	if p.PrimaryType == "" {
		return errors.New("primaryType is required")
	}
	return nil
}

func (s *profileService) GenerateProfile(ctx context.Context, answers map[string]string) (*domain.Profile, error) {
	wc := domain.ParseWorkContext(answers["context"])
	if s.client == nil {
		return DeterministicProfile(wc), nil
	}

	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return DeterministicProfile(wc), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskProfile,
		SystemPrompt: profileSystemPrompt,
		UserPrompt:   "Onboarding questionnaire results:\n" + string(answersJSON),
		JSON:         true,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return DeterministicProfile(wc), nil
	}

	payload, err := llm.ExtractJSON(resp.Text, validateProfilePayload)
	if err != nil {
		return DeterministicProfile(wc), nil
	}

	payload.Scores.Clamp()
	return &domain.Profile{
		PrimaryType:     payload.PrimaryType,
		Traits:          nonNil(payload.Traits),
		Context:         wc,
		Recommendations: nonNil(payload.Recommendations),
		Scores:          payload.Scores,
	}, nil
}

// DeterministicProfile is the profile used when the model cannot produce one.
func DeterministicProfile(wc domain.WorkContext) *domain.Profile {
	return &domain.Profile{
		PrimaryType:     "Standard Executive Support",
		Traits:          []string{"General Task Fatigue"},
		Context:         wc,
		Recommendations: []string{"Break tasks down", "Set clear timers"},
		Scores:          domain.NeuralScores{Focus: 50, Sensory: 50, Processing: 50, Executive: 50},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package domain

import "fmt"

// WorkContext is the user's primary focus area chosen during onboarding.
type WorkContext string

const (
	ContextAcademic  WorkContext = "academic"
	ContextCorporate WorkContext = "corporate"
	ContextCreative  WorkContext = "creative"
	ContextFreelance WorkContext = "freelance"
)

// ValidWorkContexts is the canonical set of accepted context strings.
var ValidWorkContexts = map[WorkContext]bool{
	ContextAcademic: true, ContextCorporate: true,
	ContextCreative: true, ContextFreelance: true,
}

// ParseWorkContext maps a questionnaire answer onto a WorkContext, falling
// back to corporate for anything unknown.
func ParseWorkContext(s string) WorkContext {
	c := WorkContext(s)
	if ValidWorkContexts[c] {
		return c
	}
	return ContextCorporate
}

// NeuralScores are 0-100 ratings per cognitive dimension.
type NeuralScores struct {
	Focus      int `json:"focus"`
	Sensory    int `json:"sensory"`
	Processing int `json:"processing"`
	Executive  int `json:"executive"`
}

// Clamp forces every score into [0, 100].
func (s *NeuralScores) Clamp() {
	s.Focus = clampScore(s.Focus)
	s.Sensory = clampScore(s.Sensory)
	s.Processing = clampScore(s.Processing)
	s.Executive = clampScore(s.Executive)
}

func clampScore(v int) int {
	return min(max(v, 0), 100)
}

// Profile is the cognitive profile produced from the onboarding
// questionnaire. Its presence ends onboarding mode.
type Profile struct {
	PrimaryType     string       `json:"primaryType"`
	Traits          []string     `json:"traits"`
	Context         WorkContext  `json:"context"`
	Recommendations []string     `json:"recommendations"`
	Scores          NeuralScores `json:"scores"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	out.Traits = append([]string{}, p.Traits...)
	out.Recommendations = append([]string{}, p.Recommendations...)
	return out
}

// Validate checks the fields a usable profile must carry.
func (p Profile) Validate() error {
	if p.PrimaryType == "" {
		return fmt.Errorf("primaryType is required")
	}
	if !ValidWorkContexts[p.Context] {
		return fmt.Errorf("unknown context %q", p.Context)
	}
	return nil
}

package domain

// QuestionOption is one selectable answer.
type QuestionOption struct {
	ID    string
	Label string
}

// Question is one onboarding question; its ID becomes the answers map key.
type Question struct {
	ID      string
	Prompt  string
	Options []QuestionOption
}

// OnboardingQuestions is the fixed questionnaire used to build a Profile.
var OnboardingQuestions = []Question{
	{
		ID:     "context",
		Prompt: "What is your primary focus area?",
		Options: []QuestionOption{
			{ID: "academic", Label: "Academic / School Work"},
			{ID: "corporate", Label: "Corporate / Formal Employment"},
			{ID: "creative", Label: "Creative / Artistic Work"},
			{ID: "freelance", Label: "Freelance / Entrepreneurship"},
		},
	},
	{
		ID:     "struggle",
		Prompt: "Where does your executive function fail most often?",
		Options: []QuestionOption{
			{ID: "initiation", Label: `Starting tasks (the "Wall of Awful")`},
			{ID: "sustenance", Label: "Staying focused (distractibility)"},
			{ID: "completion", Label: "Finishing the last 10% of tasks"},
			{ID: "organization", Label: "Time blindness & planning"},
		},
	},
	{
		ID:     "sensory",
		Prompt: "How do you respond to sensory input?",
		Options: []QuestionOption{
			{ID: "hypersensitive", Label: "Overwhelmed by noise/lights/clutter"},
			{ID: "seeker", Label: "Need background noise/music to focus"},
			{ID: "neutral", Label: "Relatively unaffected by environment"},
		},
	},
	{
		ID:     "processing",
		Prompt: "How do you best process new information?",
		Options: []QuestionOption{
			{ID: "visual", Label: "Visuals, charts, and diagrams"},
			{ID: "verbal", Label: "Listening or reading text"},
			{ID: "kinesthetic", Label: "Doing and physical interaction"},
		},
	},
}

// ValidateAnswers reports the first question whose answer is missing or not
// one of its options.
func ValidateAnswers(answers map[string]string) error {
	for _, q := range OnboardingQuestions {
		v, ok := answers[q.ID]
		if !ok || v == "" {
			return &AnswerError{QuestionID: q.ID}
		}
		if !q.hasOption(v) {
			return &AnswerError{QuestionID: q.ID, Value: v}
		}
	}
	return nil
}

func (q Question) hasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

// AnswerError describes an unanswered or invalid questionnaire answer.
type AnswerError struct {
	QuestionID string
	Value      string
}

func (e *AnswerError) Error() string {
	if e.Value == "" {
		return "missing answer for " + e.QuestionID
	}
	return "invalid answer " + e.Value + " for " + e.QuestionID
}

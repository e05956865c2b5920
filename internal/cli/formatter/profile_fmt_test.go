package formatter

import (
	"testing"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatProfile(t *testing.T) {
	p := testutil.NewTestProfile("Sensory Seeker",
		testutil.WithContext(domain.ContextCreative),
		testutil.WithScores(domain.NeuralScores{Focus: 90, Sensory: 10, Processing: 55, Executive: 0}),
	)
	out := FormatProfile(p)

	assert.Contains(t, out, "Sensory Seeker")
	assert.Contains(t, out, "creative")
	assert.Contains(t, out, "Focus")
	assert.Contains(t, out, " 90")
	assert.Contains(t, out, "Time blindness")
	assert.Contains(t, out, "Use visible timers")
}

func TestFormatProfile_EmptyLists(t *testing.T) {
	p := &domain.Profile{PrimaryType: "Standard Executive Support", Context: domain.ContextCorporate}
	out := FormatProfile(p)
	assert.Contains(t, out, "Standard Executive Support")
	assert.Contains(t, out, "none")
}

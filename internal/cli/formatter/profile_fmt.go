package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

const scoreBarWidth = 20

// FormatProfile renders a cognitive profile with score bars.
func FormatProfile(p *domain.Profile) string {
	var b strings.Builder

	content := fmt.Sprintf("%s\n%s %s",
		StylePurple.Bold(true).Render(p.PrimaryType),
		Dim("Context:"),
		StyleFg.Render(string(p.Context)),
	)
	b.WriteString(RenderBox("Neural Profile", content))
	b.WriteString("\n\n")

	b.WriteString(StyleHeader.Render("SCORES"))
	b.WriteString("\n")
	scores := []struct {
		name  string
		value int
	}{
		{"Focus", p.Scores.Focus},
		{"Sensory", p.Scores.Sensory},
		{"Processing", p.Scores.Processing},
		{"Executive", p.Scores.Executive},
	}
	for _, s := range scores {
		b.WriteString(fmt.Sprintf("  %-12s %s %3d\n", s.name, RenderCompactBar(float64(s.value)/100, scoreBarWidth, false), s.value))
	}

	b.WriteString("\n")
	b.WriteString(StyleHeader.Render("TRAITS"))
	b.WriteString("\n")
	b.WriteString(Bullets(p.Traits, "none"))
	b.WriteString("\n\n")
	b.WriteString(StyleHeader.Render("RECOMMENDATIONS"))
	b.WriteString("\n")
	b.WriteString(Bullets(p.Recommendations, "none"))
	b.WriteString("\n")
	return b.String()
}

package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const planPreviewLen = 48

// FormatPlan renders a generated plan: burnout alert first, then insights,
// the adapted plan, quick wins and the explanation.
func FormatPlan(rec *domain.PlanRecord, now time.Time) string {
	var b strings.Builder
	r := rec.Result

	b.WriteString(fmt.Sprintf("%s %s  %s\n\n",
		Header("Adapted Plan"),
		TruncID(rec.ID),
		Dim(HumanTimestamp(rec.CreatedAt, now)),
	))

	if a := r.BurnoutAlert; a != nil {
		style := BurnoutStyle(a.Level)
		content := style.Render(a.Message)
		if a.RecoveryAction != "" {
			content += "\n\n" + Dim("Recovery: ") + a.RecoveryAction
		}
		b.WriteString(RenderAlertBox(fmt.Sprintf("burnout alert: %s", a.Level), content, colorForBurnout(a.Level)))
		b.WriteString("\n\n")
	}

	section(&b, "Insights", r.Insights)
	section(&b, "Plan", r.AdaptedPlan)
	b.WriteString(StyleHeader.Render("QUICK WINS"))
	b.WriteString("\n")
	b.WriteString(Bullets(r.QuickWins, "none"))
	b.WriteString("\n\n")
	section(&b, "Why", r.Explanation)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func section(b *strings.Builder, title, body string) {
	b.WriteString(StyleHeader.Render(strings.ToUpper(title)))
	b.WriteString("\n")
	b.WriteString(StyleFg.Render(body))
	b.WriteString("\n\n")
}

func colorForBurnout(level domain.BurnoutLevel) lipgloss.Color {
	switch level {
	case domain.BurnoutCritical:
		return ColorRed
	case domain.BurnoutModerate:
		return ColorYellow
	default:
		return ColorBlue
	}
}

// FormatPlanList renders plan history, newest first.
func FormatPlanList(plans []*domain.PlanRecord, now time.Time) string {
	if len(plans) == 0 {
		return Dim("No plans generated yet.") + "\n"
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		alert := Dim("--")
		if p.Result.BurnoutAlert != nil {
			lvl := p.Result.BurnoutAlert.Level
			alert = BurnoutStyle(lvl).Render(string(lvl))
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			HumanTimestamp(p.CreatedAt, now),
			fmt.Sprintf("%d", p.Streak),
			alert,
			preview(p.Goals),
		})
	}
	return RenderTable([]string{"ID", "WHEN", "STREAK", "ALERT", "GOALS"}, rows)
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= planPreviewLen {
		return s
	}
	return string(r[:planPreviewLen-1]) + "…"
}

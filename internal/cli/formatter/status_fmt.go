package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
	"github.com/alexanderramin/neuralplan/internal/engagement"
	"github.com/alexanderramin/neuralplan/internal/service"
)

const (
	gaugeWidth      = 20
	dayTrackWidth   = 24
	heatActive      = "■"
	heatIdle        = "□"
	dayTrackMarker  = "▲"
	dayTrackPadding = "·"
)

// FormatStatus renders the engagement dashboard.
func FormatStatus(v *service.StatusView) string {
	var b strings.Builder
	s := v.Stats

	b.WriteString(Header("Neural Dashboard"))
	b.WriteString("\n\n")

	if v.Onboarding {
		b.WriteString(StyleYellow.Render("Profile not calibrated.") + " " + Dim("Run `neuralplan onboard` to begin."))
		b.WriteString("\n\n")
	} else if s.NeuralProfile != nil {
		b.WriteString(fmt.Sprintf("%s %s\n\n", Dim("Profile:"), StylePurple.Render(s.NeuralProfile.PrimaryType)))
	}

	rows := [][]string{
		{"Current streak", Bold(Pluralize(s.CurrentStreak, "day"))},
		{"Highest streak", Pluralize(s.HighestStreak, "day")},
		{"Plans generated", fmt.Sprintf("%d", s.TotalPlansGenerated)},
		{"Focus time", FormatMinutes(s.TotalFocusMinutes)},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", Dim(r[0]), r[1]))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-18s %s  %s\n", Dim("Burnout load"), RenderGauge(v.LoadIndex/100, gaugeWidth), LoadIndicator(v.LoadLevel)))

	if v.MedianEntry != nil {
		b.WriteString(fmt.Sprintf("  %-18s %s  %s\n", Dim("Median entry"), Bold(v.MedianEntry.Label), dayTrack(v.MedianEntry.DayPercent())))
	} else {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", Dim("Median entry"), Dim("no data yet")))
	}

	if len(v.Heatmap) > 0 {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", Dim("Activity"), FormatHeatmap(v.Heatmap)))
	}

	b.WriteString("\n")
	if len(v.Badges) > 0 {
		icons := make([]string, len(v.Badges))
		for i, a := range v.Badges {
			icons[i] = a.Icon + " " + a.Name
		}
		b.WriteString(fmt.Sprintf("  %-18s %s\n", Dim("Badges"), strings.Join(icons, "  ")))
	}
	if v.NextBadge != nil {
		b.WriteString(fmt.Sprintf("  %-18s %s %s %s\n",
			Dim("Next badge"),
			v.NextBadge.Badge.Icon,
			Bold(v.NextBadge.Badge.Name),
			Dim(fmt.Sprintf("in %s", Pluralize(v.NextBadge.DaysLeft, "day"))),
		))
	} else {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", Dim("Next badge"), StyleGreen.Render("all badges unlocked")))
	}

	return b.String()
}

// FormatHeatmap renders one cell per day, oldest first.
func FormatHeatmap(days []engagement.DayActivity) string {
	var b strings.Builder
	for _, d := range days {
		if d.Active {
			b.WriteString(StyleGreen.Render(heatActive))
		} else {
			b.WriteString(StyleDim.Render(heatIdle))
		}
	}
	return b.String()
}

// dayTrack places a marker on a 24h track at pct (0-100).
func dayTrack(pct float64) string {
	pos := min(max(int(pct/100*float64(dayTrackWidth)), 0), dayTrackWidth-1)
	return Dim(strings.Repeat(dayTrackPadding, pos)) +
		StyleYellow.Render(dayTrackMarker) +
		Dim(strings.Repeat(dayTrackPadding, dayTrackWidth-pos-1))
}

// FormatBadges renders the full badge catalog with unlock state.
func FormatBadges(badges []service.BadgeView, streak int) string {
	var b strings.Builder
	b.WriteString(Header("Achievements"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(badges))
	for _, bv := range badges {
		state := StyleGreen.Render("unlocked")
		name := Bold(bv.Name)
		if !bv.Unlocked {
			state = Dim(fmt.Sprintf("%d/%d days", min(streak, bv.Requirement), bv.Requirement))
			name = Dim(bv.Name)
		}
		rows = append(rows, []string{bv.Icon, name, state, Dim(bv.Description)})
	}
	b.WriteString(RenderTable([]string{"", "BADGE", "STATE", "DESCRIPTION"}, rows))
	return b.String()
}

// FormatStreakUpdate is the one-line summary printed after a focus log.
func FormatStreakUpdate(s *domain.UserStats) string {
	return fmt.Sprintf("%s %s total focus, streak %s",
		StyleGreen.Render("✔"),
		Bold(FormatMinutes(s.TotalFocusMinutes)),
		Bold(Pluralize(s.CurrentStreak, "day")),
	)
}

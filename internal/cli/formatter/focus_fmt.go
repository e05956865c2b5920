package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// FormatFocusSettings renders the focus-lock settings with the app catalog.
func FormatFocusSettings(s domain.FocusLockSettings) string {
	var b strings.Builder
	b.WriteString(Header("Focus Lock"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %-16s %s\n", Dim("Default length"), FormatMinutes(s.DefaultMinutes)))
	b.WriteString(fmt.Sprintf("  %-16s %ds\n", Dim("Break hold"), s.BreakDurationSec))
	b.WriteString(fmt.Sprintf("  %-16s %q\n\n", Dim("Break prompt"), s.BreakPrompt))

	blocked := make(map[string]bool, len(s.BlockedApps))
	for _, id := range s.BlockedApps {
		blocked[id] = true
	}
	for _, app := range domain.DistractionApps {
		mark := Dim("○")
		name := Dim(app.Name)
		if blocked[app.ID] {
			mark = StyleRed.Render("●")
			name = StyleFg.Render(app.Name)
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n", mark, name, Dim("("+app.ID+")")))
	}
	return b.String()
}

// FormatBlockedApps joins blocked app names for the running focus view.
func FormatBlockedApps(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, app := range domain.DistractionApps {
		for _, id := range ids {
			if id == app.ID {
				names = append(names, app.Name)
			}
		}
	}
	if len(names) == 0 {
		return Dim("no apps blocked")
	}
	return StyleRed.Render(strings.Join(names, " · "))
}

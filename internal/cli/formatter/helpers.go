package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	return renderBox(title, content, ColorDim)
}

// RenderAlertBox is RenderBox with a colored border.
func RenderAlertBox(title, content string, border lipgloss.Color) string {
	return renderBox(title, content, border)
}

func renderBox(title, content string, border lipgloss.Color) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate returns "Today", "Yesterday" or an absolute date relative to now.
func HumanDate(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDate(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t, now)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// Pluralize returns "1 day" / "3 days".
func Pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Bullets renders items as a dimmed-bullet list. Empty input yields fallback.
func Bullets(items []string, fallback string) string {
	if len(items) == 0 {
		return Dim(fallback)
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(StyleDim.Render("• ") + item)
	}
	return b.String()
}

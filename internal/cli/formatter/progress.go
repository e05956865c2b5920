package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// Completion colors: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampUnit(pct)
	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

// RenderGauge renders a load gauge where fuller is worse: red above 80%,
// yellow above 60%.
func RenderGauge(pct float64, width int) string {
	pct = clampUnit(pct)
	style := StyleGreen
	if pct > 0.8 {
		style = StyleRed
	} else if pct > 0.6 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar(pct, width)), pct*100)
}

func bar(pct float64, width int) string {
	width = max(width, 2)
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}

// RenderCompactBar renders a bracketless bar for inline use, such as
// profile scores. dim renders it muted.
func RenderCompactBar(pct float64, width int, dim bool) string {
	b := bar(clampUnit(pct), width)
	if dim {
		return StyleDim.Render(b)
	}
	return StyleBlue.Render(b)
}

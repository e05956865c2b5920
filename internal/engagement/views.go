package engagement

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

const (
	// MedianWindow is how many recent entries feed the median entry time.
	MedianWindow = 14
	// DefaultHeatmapDays is the heatmap window when none is given.
	DefaultHeatmapDays = 14
	// ShiftMinutes is the assumed working shift behind the load index.
	ShiftMinutes = 480
)

// EntryTime is a time of day expressed as minutes since midnight.
type EntryTime struct {
	Minutes float64
	Label   string
}

// DayPercent is the position of the entry time within a 24h day, 0-100.
func (e EntryTime) DayPercent() float64 {
	return e.Minutes / (24 * 60) * 100
}

// DayActivity marks whether the app was opened on a calendar day.
type DayActivity struct {
	Date   string
	Active bool
}

// LoadLevel buckets the burnout load index.
type LoadLevel string

const (
	LoadNominal  LoadLevel = "nominal"
	LoadStrained LoadLevel = "strained"
	LoadHigh     LoadLevel = "high_burnout_risk"
)

// MedianEntryTime returns the median time of day of the most recent
// MedianWindow entries, measured in loc. ok is false for an empty history.
// Even counts average the two middle values; the label floors the result.
func MedianEntryTime(history []time.Time, loc *time.Location) (EntryTime, bool) {
	if len(history) == 0 {
		return EntryTime{}, false
	}
	recent := history[max(0, len(history)-MedianWindow):]

	minutes := make([]float64, 0, len(recent))
	for _, ts := range recent {
		local := ts.In(loc)
		minutes = append(minutes, float64(local.Hour()*60+local.Minute()))
	}
	slices.Sort(minutes)

	mid := len(minutes) / 2
	med := minutes[mid]
	if len(minutes)%2 == 0 {
		med = (minutes[mid-1] + minutes[mid]) / 2
	}
	return EntryTime{Minutes: med, Label: MinutesLabel(med)}, true
}

// MinutesLabel formats minutes since midnight as HH:MM, flooring fractions.
func MinutesLabel(m float64) string {
	h := int(math.Floor(m / 60))
	mm := int(math.Floor(math.Mod(m, 60)))
	return fmt.Sprintf("%02d:%02d", h, mm)
}

// ActivityHeatmap lists the trailing windowDays calendar days ending on
// today's date, oldest first. A day is active when an entry's RFC 3339
// form starts with that date. Timestamps are not converted across zones.
func ActivityHeatmap(history []time.Time, today time.Time, windowDays int) []DayActivity {
	if windowDays <= 0 {
		windowDays = DefaultHeatmapDays
	}
	stamps := make([]string, len(history))
	for i, ts := range history {
		stamps[i] = ts.In(today.Location()).Format(time.RFC3339)
	}

	// Noon avoids DST edges when stepping back whole days.
	y, m, d := today.Date()
	anchor := time.Date(y, m, d, 12, 0, 0, 0, today.Location())

	days := make([]DayActivity, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		date := anchor.AddDate(0, 0, -i).Format(domain.DateLayout)
		active := slices.ContainsFunc(stamps, func(s string) bool {
			return strings.HasPrefix(s, date)
		})
		days = append(days, DayActivity{Date: date, Active: active})
	}
	return days
}

// BurnoutLoadIndex is a cyclic gauge of focus minutes over an 8-hour shift.
func BurnoutLoadIndex(totalFocusMinutes int) float64 {
	return math.Min(100, float64(totalFocusMinutes%ShiftMinutes)/ShiftMinutes*100)
}

// LoadLevelFor buckets a load index.
func LoadLevelFor(index float64) LoadLevel {
	switch {
	case index > 80:
		return LoadHigh
	case index > 60:
		return LoadStrained
	default:
		return LoadNominal
	}
}

// UnlockedBadges returns the catalog entries for the unlocked ids, in
// catalog order.
func UnlockedBadges(stats domain.UserStats) []domain.Achievement {
	var out []domain.Achievement
	for _, a := range domain.Achievements {
		if stats.HasBadge(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// NextBadge returns the lowest locked badge and how many more streak days
// it needs. ok is false when every badge is unlocked.
func NextBadge(stats domain.UserStats) (domain.Achievement, int, bool) {
	for _, a := range domain.Achievements {
		if !stats.HasBadge(a.ID) {
			return a, max(a.Requirement-stats.CurrentStreak, 0), true
		}
	}
	return domain.Achievement{}, 0, false
}

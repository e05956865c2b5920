package domain

import (
	"slices"
	"time"
)

// DateLayout is the calendar-day format used for LastUsedDate and for
// matching entry timestamps to days.
const DateLayout = "2006-01-02"

// UserStats is the persisted engagement record. Field names on the wire
// follow the stored JSON blob.
type UserStats struct {
	CurrentStreak       int         `json:"currentStreak"`
	HighestStreak       int         `json:"highestStreak"`
	TotalPlansGenerated int         `json:"totalPlansGenerated"`
	TotalFocusMinutes   int         `json:"totalFocusMinutes"`
	LastUsedDate        *string     `json:"lastUsedDate"`
	UnlockedBadgeIDs    []string    `json:"unlockedBadgeIds"`
	NeuralProfile       *Profile    `json:"neuralProfile"`
	EntryTimeHistory    []time.Time `json:"entryTimeHistory"`
}

// NewUserStats returns the zero-state record used on first install: no
// streak, no last-used date, nothing unlocked, no profile.
func NewUserStats() UserStats {
	return UserStats{
		UnlockedBadgeIDs: []string{},
		EntryTimeHistory: []time.Time{},
	}
}

// Clone returns a deep copy so callers never alias the tracker's slices.
func (s UserStats) Clone() UserStats {
	out := s
	if s.LastUsedDate != nil {
		d := *s.LastUsedDate
		out.LastUsedDate = &d
	}
	out.UnlockedBadgeIDs = append([]string{}, s.UnlockedBadgeIDs...)
	out.EntryTimeHistory = append([]time.Time{}, s.EntryTimeHistory...)
	if s.NeuralProfile != nil {
		p := s.NeuralProfile.Clone()
		out.NeuralProfile = &p
	}
	return out
}

// Normalize repairs values a hand-edited or older blob may carry: nil
// slices, negative counters, and a highest streak below the current one.
func (s *UserStats) Normalize() {
	if s.UnlockedBadgeIDs == nil {
		s.UnlockedBadgeIDs = []string{}
	}
	if s.EntryTimeHistory == nil {
		s.EntryTimeHistory = []time.Time{}
	}
	s.CurrentStreak = max(s.CurrentStreak, 0)
	s.HighestStreak = max(s.HighestStreak, s.CurrentStreak)
	s.TotalPlansGenerated = max(s.TotalPlansGenerated, 0)
	s.TotalFocusMinutes = max(s.TotalFocusMinutes, 0)
	if s.LastUsedDate != nil && *s.LastUsedDate == "" {
		s.LastUsedDate = nil
	}
}

// HasBadge reports whether the badge id has been unlocked.
func (s UserStats) HasBadge(id string) bool {
	return slices.Contains(s.UnlockedBadgeIDs, id)
}

// IsOnboarding is true until a profile has been stored.
func (s UserStats) IsOnboarding() bool {
	return s.NeuralProfile == nil
}

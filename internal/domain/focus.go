package domain

import (
	"slices"
	"time"
)

// MaxFocusMinutes caps the minutes a single focus block may credit.
const MaxFocusMinutes = 24 * 60

// DistractionApp is an app the focus lock can mark as blocked.
type DistractionApp struct {
	ID   string
	Name string
}

// DistractionApps is the catalog of blockable apps.
var DistractionApps = []DistractionApp{
	{ID: "instagram", Name: "Instagram"},
	{ID: "x", Name: "X / Twitter"},
	{ID: "pinterest", Name: "Pinterest"},
	{ID: "netflix", Name: "Netflix"},
	{ID: "youtube", Name: "YouTube"},
	{ID: "facebook", Name: "Facebook"},
	{ID: "tiktok", Name: "TikTok"},
	{ID: "reddit", Name: "Reddit"},
}

// IsKnownDistractionApp reports whether id is in the catalog.
func IsKnownDistractionApp(id string) bool {
	return slices.ContainsFunc(DistractionApps, func(a DistractionApp) bool { return a.ID == id })
}

// FocusLockSettings are the persisted focus-lock preferences.
type FocusLockSettings struct {
	BlockedApps      []string `json:"blockedApps"`
	BreakDurationSec int      `json:"breakDuration"`
	BreakPrompt      string   `json:"breakPrompt"`
	DefaultMinutes   int      `json:"defaultMinutes"`
}

// DefaultFocusLockSettings returns the settings used before anything is saved.
func DefaultFocusLockSettings() FocusLockSettings {
	return FocusLockSettings{
		BlockedApps:      []string{"instagram", "x"},
		BreakDurationSec: 5,
		BreakPrompt:      "Breaking Protocol...",
		DefaultMinutes:   60,
	}
}

// ToggleApp adds id to the blocked list, or removes it if already present.
func (s *FocusLockSettings) ToggleApp(id string) {
	if i := slices.Index(s.BlockedApps, id); i >= 0 {
		s.BlockedApps = slices.Delete(s.BlockedApps, i, i+1)
		return
	}
	s.BlockedApps = append(s.BlockedApps, id)
}

// FocusSession is the ephemeral state of a running focus lock.
type FocusSession struct {
	Active           bool
	StartTime        time.Time
	DurationSeconds  int
	RemainingSeconds int
}

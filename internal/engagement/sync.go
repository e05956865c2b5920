package engagement

import (
	"time"

	"github.com/alexanderramin/neuralplan/internal/domain"
)

// MaxEntryHistory bounds the entry-time log.
const MaxEntryHistory = 30

// SyncOutcome describes which branch of the daily reconciliation ran.
type SyncOutcome string

const (
	OutcomeBootstrap   SyncOutcome = "bootstrap"
	OutcomeAlreadySeen SyncOutcome = "already_synced"
	OutcomeContinued   SyncOutcome = "continued"
	OutcomeReset       SyncOutcome = "reset"
	OutcomeClockSkew   SyncOutcome = "clock_skew"
)

// Changed reports whether the outcome mutated the stats.
func (o SyncOutcome) Changed() bool {
	return o != OutcomeAlreadySeen
}

// Reconcile applies one daily synchronisation at now to stats and returns
// the new record. It is pure: stats is not modified. The calendar day is
// taken in now's location.
func Reconcile(stats domain.UserStats, now time.Time) (domain.UserStats, SyncOutcome) {
	next := stats.Clone()
	today := now.Format(domain.DateLayout)

	if next.LastUsedDate == nil {
		next.LastUsedDate = &today
		return next, OutcomeBootstrap
	}
	if *next.LastUsedDate == today {
		return stats, OutcomeAlreadySeen
	}

	outcome := OutcomeReset
	gap, ok := CalendarDaysBetween(*next.LastUsedDate, today)
	switch {
	case !ok || gap < 0:
		outcome = OutcomeClockSkew
		next.CurrentStreak = 1
	case gap == 1:
		outcome = OutcomeContinued
		next.CurrentStreak++
	default:
		next.CurrentStreak = 1
	}

	next.HighestStreak = max(next.HighestStreak, next.CurrentStreak)
	next.UnlockedBadgeIDs = unlockBadges(next.UnlockedBadgeIDs, next.CurrentStreak)

	next.EntryTimeHistory = append(next.EntryTimeHistory, now)
	if over := len(next.EntryTimeHistory) - MaxEntryHistory; over > 0 {
		next.EntryTimeHistory = append([]time.Time{}, next.EntryTimeHistory[over:]...)
	}

	next.LastUsedDate = &today
	return next, outcome
}

// CalendarDaysBetween returns the number of calendar days from one
// YYYY-MM-DD date to another. ok is false when either date does not parse.
func CalendarDaysBetween(from, to string) (int, bool) {
	a, err := time.ParseInLocation(domain.DateLayout, from, time.UTC)
	if err != nil {
		return 0, false
	}
	b, err := time.ParseInLocation(domain.DateLayout, to, time.UTC)
	if err != nil {
		return 0, false
	}
	return int(b.Sub(a).Hours() / 24), true
}

// unlockBadges appends every catalog badge whose requirement the streak
// meets. Existing ids are kept even if the streak no longer qualifies.
func unlockBadges(unlocked []string, streak int) []string {
	out := append([]string{}, unlocked...)
	seen := make(map[string]bool, len(out))
	for _, id := range out {
		seen[id] = true
	}
	for _, a := range domain.Achievements {
		if streak >= a.Requirement && !seen[a.ID] {
			out = append(out, a.ID)
			seen[a.ID] = true
		}
	}
	return out
}

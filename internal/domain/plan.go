package domain

import "time"

type BurnoutLevel string

const (
	BurnoutLow      BurnoutLevel = "low"
	BurnoutModerate BurnoutLevel = "moderate"
	BurnoutCritical BurnoutLevel = "critical"
)

// ValidBurnoutLevels is the canonical set of accepted burnout levels.
var ValidBurnoutLevels = map[BurnoutLevel]bool{
	BurnoutLow: true, BurnoutModerate: true, BurnoutCritical: true,
}

// BurnoutAlert is a preventive warning attached to a plan when the history
// shows signs of overload.
type BurnoutAlert struct {
	Level          BurnoutLevel `json:"level"`
	Message        string       `json:"message"`
	RecoveryAction string       `json:"recoveryAction"`
}

// PlanResult is the analysed plan for the next day. BurnoutAlert is nil
// when no risk was detected.
type PlanResult struct {
	Insights     string        `json:"insights"`
	AdaptedPlan  string        `json:"adaptedPlan"`
	Explanation  string        `json:"explanation"`
	QuickWins    []string      `json:"quickWins"`
	BurnoutAlert *BurnoutAlert `json:"burnoutAlert"`
}

// PlanRecord is a generated plan kept in history.
type PlanRecord struct {
	ID        string
	History   string
	Goals     string
	Streak    int
	Result    PlanResult
	CreatedAt time.Time
}

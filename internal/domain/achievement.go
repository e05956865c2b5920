package domain

// Achievement is a badge unlocked by reaching a streak length. Unlocks are
// permanent.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Requirement int // streak days
}

// Achievements is the fixed badge catalog, ordered by requirement.
var Achievements = []Achievement{
	{ID: "3day", Name: "Momentum Spark", Description: "3 Day Streak: You've initiated the neural habit.", Icon: "🔥", Requirement: 3},
	{ID: "7day", Name: "Neural Pioneer", Description: "7 Day Streak: One week of executive mastery.", Icon: "🛡️", Requirement: 7},
	{ID: "14day", Name: "Executive Flow", Description: "14 Day Streak: Your prefrontal cortex is synchronized.", Icon: "⚡", Requirement: 14},
	{ID: "30day", Name: "Cognitive Architect", Description: "30 Day Streak: You have rebuilt your productivity framework.", Icon: "🧬", Requirement: 30},
}

// AchievementByID looks up a catalog entry.
func AchievementByID(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

package gamify

// Achievement is a badge definition. UnlockedAt is set on the copy returned
// to callers when it unlocks.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Rarity      string `json:"rarity"` // common, rare, epic, legendary
	UnlockedAt  string `json:"unlocked_at,omitempty"`
}

// SessionData carries the statistics achievement conditions are checked
// against.
type SessionData struct {
	SessionCount      int     `json:"session_count"`
	QuestionsAsked    int     `json:"questions_asked"`
	TopicsCompleted   int     `json:"topics_completed"`
	ProblemsSolved    int     `json:"problems_solved"`
	HighScoreSessions int     `json:"high_score_sessions"`
	AvgUnderstanding  float64 `json:"avg_understanding"`
}

var achievementCatalog = []Achievement{
	{ID: "first_session", Name: "First Steps", Description: "Complete your first tutoring session", Icon: "🎯", Points: 10, Rarity: "common"},
	{ID: "curious_mind", Name: "Curious Mind", Description: "Ask 10 questions in a session", Icon: "❓", Points: 15, Rarity: "common"},
	{ID: "quick_learner", Name: "Quick Learner", Description: "Complete 5 topics in one session", Icon: "⚡", Points: 25, Rarity: "rare"},
	{ID: "on_fire", Name: "On Fire!", Description: "Maintain a 7-day learning streak", Icon: "🔥", Points: 50, Rarity: "rare"},
	{ID: "unstoppable", Name: "Unstoppable", Description: "Maintain a 30-day learning streak", Icon: "💪", Points: 200, Rarity: "epic"},
	{ID: "problem_solver", Name: "Problem Solver", Description: "Solve 20 practice problems correctly", Icon: "🧩", Points: 75, Rarity: "rare"},
	{ID: "master_learner", Name: "Master Learner", Description: "Achieve 90% understanding score in 10 sessions", Icon: "🎓", Points: 150, Rarity: "epic"},
	{ID: "marathon", Name: "Marathon Learner", Description: "Study for 2 hours straight", Icon: "⏱️", Points: 100, Rarity: "epic"},
	{ID: "night_owl", Name: "Night Owl", Description: "Complete a session after 10 PM", Icon: "🦉", Points: 20, Rarity: "common"},
	{ID: "early_bird", Name: "Early Bird", Description: "Complete a session before 7 AM", Icon: "🌅", Points: 20, Rarity: "common"},
	{ID: "polymath", Name: "Polymath", Description: "Master 10 different subjects", Icon: "🌟", Points: 500, Rarity: "legendary"},
	{ID: "teaching_legend", Name: "Teaching Legend", Description: "Complete 100 tutoring sessions", Icon: "👑", Points: 1000, Rarity: "legendary"},
}

// unlockConditions holds the checkable achievement conditions. Achievements
// without a condition here (time and duration based ones) are unlocked by
// dedicated call sites, not by CheckAchievements.
var unlockConditions = map[string]func(SessionData) bool{
	"first_session": func(d SessionData) bool { return d.SessionCount >= 1 },
	"curious_mind":  func(d SessionData) bool { return d.QuestionsAsked >= 10 },
	"quick_learner": func(d SessionData) bool { return d.TopicsCompleted >= 5 },
	"problem_solver": func(d SessionData) bool {
		return d.ProblemsSolved >= 20
	},
	"master_learner": func(d SessionData) bool {
		return d.HighScoreSessions >= 10 && d.AvgUnderstanding >= 90
	},
}

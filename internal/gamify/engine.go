package gamify

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

// Point awards per activity.
var pointValues = map[string]int{
	"session_complete":   10,
	"question_asked":     2,
	"topic_completed":    15,
	"problem_solved":     5,
	"daily_login":        5,
	"achievement_unlock": 0,
}

// Profile tracks one user's progression.
type Profile struct {
	UserID        string        `json:"user_id"`
	Points        int           `json:"points"`
	Level         int           `json:"level"`
	Streak        int           `json:"streak"`
	LongestStreak int           `json:"longest_streak"`
	LastActivity  time.Time     `json:"last_activity"`
	Achievements  []Achievement `json:"achievements"`
	Stats         SessionData   `json:"stats"`
}

// LeaderboardEntry is one row of the points ranking.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Streak int    `json:"streak"`
}

// AwardResult reports the outcome of a point award, including any
// achievements unlocked in the same call.
type AwardResult struct {
	PointsAwarded int           `json:"points_awarded"`
	TotalPoints   int           `json:"total_points"`
	Level         int           `json:"level"`
	LeveledUp     bool          `json:"leveled_up"`
	Streak        int           `json:"streak"`
	LongestStreak int           `json:"longest_streak"`
	Unlocked      []Achievement `json:"unlocked,omitempty"`
}

// Engine keeps the gamification state in memory. All methods are safe for
// concurrent use.
type Engine struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	logg     logger.Logger
	now      func() time.Time
}

func NewEngine(logg logger.Logger, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		profiles: make(map[string]*Profile),
		logg:     logg.WithModule("gamify"),
		now:      now,
	}
}

func (e *Engine) profile(userID string) *Profile {
	p, ok := e.profiles[userID]
	if !ok {
		p = &Profile{UserID: userID, Level: 1}
		e.profiles[userID] = p
	}
	return p
}

// levelFor maps total points to a level. Level 1 starts at 0 points and
// each level requires quadratically more points.
func levelFor(points int) int {
	if points <= 0 {
		return 1
	}
	return int(math.Sqrt(float64(points)/100)) + 1
}

// Award adds points for an activity, updates the streak and re-checks
// achievement conditions.
func (e *Engine) Award(userID, activity string) (AwardResult, error) {
	pts, ok := pointValues[activity]
	if !ok {
		return AwardResult{}, fmt.Errorf("unknown activity: %s", activity)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile(userID)
	before := p.Level

	unlocked := e.touchStreak(p)
	p.Points += pts

	switch activity {
	case "session_complete":
		p.Stats.SessionCount++
	case "question_asked":
		p.Stats.QuestionsAsked++
	case "topic_completed":
		p.Stats.TopicsCompleted++
	case "problem_solved":
		p.Stats.ProblemsSolved++
	}

	unlocked = append(unlocked, e.checkAchievements(p)...)
	sort.Slice(unlocked, func(i, j int) bool { return unlocked[i].ID < unlocked[j].ID })
	p.Level = levelFor(p.Points)

	if p.Level > before {
		e.logg.Infof("user %s reached level %d", userID, p.Level)
	}

	return AwardResult{
		PointsAwarded: pts,
		TotalPoints:   p.Points,
		Level:         p.Level,
		LeveledUp:     p.Level > before,
		Streak:        p.Streak,
		LongestStreak: p.LongestStreak,
		Unlocked:      unlocked,
	}, nil
}

// touchStreak updates the daily streak: same day keeps it, the next day
// extends it, a longer gap resets it to 1. It returns any streak achievements
// freshly unlocked so Award can surface them.
func (e *Engine) touchStreak(p *Profile) []Achievement {
	now := e.now()
	today := now.Truncate(24 * time.Hour)
	last := p.LastActivity.Truncate(24 * time.Hour)

	switch {
	case p.LastActivity.IsZero():
		p.Streak = 1
	case today.Equal(last):
		// already counted today
	case today.Sub(last) == 24*time.Hour:
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActivity = now
	if p.Streak > p.LongestStreak {
		p.LongestStreak = p.Streak
	}

	var unlocked []Achievement
	if p.Streak >= 30 {
		if a, fresh := e.unlockNoted(p, "unstoppable"); fresh {
			unlocked = append(unlocked, a)
		}
	}
	if p.Streak >= 7 {
		if a, fresh := e.unlockNoted(p, "on_fire"); fresh {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

func (e *Engine) checkAchievements(p *Profile) []Achievement {
	var unlocked []Achievement
	for id, cond := range unlockConditions {
		if cond(p.Stats) {
			if a, fresh := e.unlockNoted(p, id); fresh {
				unlocked = append(unlocked, a)
			}
		}
	}
	sort.Slice(unlocked, func(i, j int) bool { return unlocked[i].ID < unlocked[j].ID })
	return unlocked
}

func (e *Engine) unlockNoted(p *Profile, id string) (Achievement, bool) {
	for _, have := range p.Achievements {
		if have.ID == id {
			return Achievement{}, false
		}
	}
	for _, a := range achievementCatalog {
		if a.ID != id {
			continue
		}
		a.UnlockedAt = e.now().UTC().Format(time.RFC3339)
		p.Achievements = append(p.Achievements, a)
		p.Points += a.Points
		e.logg.Infof("user %s unlocked achievement %s", p.UserID, a.Name)
		return a, true
	}
	return Achievement{}, false
}

// Profile returns a copy of the user's progression state.
func (e *Engine) Profile(userID string) Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.profile(userID)
	out := *p
	out.Achievements = append([]Achievement(nil), p.Achievements...)
	return out
}

// Leaderboard returns the top users by points.
func (e *Engine) Leaderboard(limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = 10
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entries := make([]LeaderboardEntry, 0, len(e.profiles))
	for _, p := range e.profiles {
		entries = append(entries, LeaderboardEntry{
			UserID: p.UserID,
			Points: p.Points,
			Level:  p.Level,
			Streak: p.Streak,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Catalog lists every achievement definition.
func (e *Engine) Catalog() []Achievement {
	out := make([]Achievement, len(achievementCatalog))
	copy(out, achievementCatalog)
	return out
}

package domain

import (
	"errors"
	"time"
)

var ErrStatsNotFound = errors.New("daily stats not found")

const (
	DefaultDailyGoal  = 4
	DefaultWeeklyGoal = 20
)

// DayKey returns the UTC calendar-date key for a moment in time. Stats roll
// over exactly at midnight UTC, not at a session-local boundary.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyStats is one record per (user, UTC calendar day). Created lazily on
// first read of a day; mutated by session and distraction events.
type DailyStats struct {
	UserID            string  `json:"user_id" bson:"user_id"`
	Day               string  `json:"day" bson:"day"` // YYYY-MM-DD, UTC
	SessionsStarted   int     `json:"sessions_started" bson:"sessions_started"`
	SessionsCompleted int     `json:"sessions_completed" bson:"sessions_completed"`
	FocusMinutes      int     `json:"focus_minutes" bson:"focus_minutes"`
	Distractions      int     `json:"distractions" bson:"distractions"`
	ProductivityScore float64 `json:"productivity_score" bson:"productivity_score"`
	DailyGoal         int     `json:"daily_goal" bson:"daily_goal"`
	WeeklyGoal        int     `json:"weekly_goal" bson:"weekly_goal"`
}

// NewDailyStats synthesizes the zeroed record for a day that has no stored
// stats yet, with the configured default goals.
func NewDailyStats(userID, day string) *DailyStats {
	return &DailyStats{
		UserID:     userID,
		Day:        day,
		DailyGoal:  DefaultDailyGoal,
		WeeklyGoal: DefaultWeeklyGoal,
	}
}

// Productivity derives the day's productivity score from completed focus
// time against the daily goal, penalized by recorded distractions.
// Result is clamped to [0, 100].
func (s *DailyStats) Productivity() float64 {
	goalMinutes := s.DailyGoal * 25
	if goalMinutes <= 0 {
		goalMinutes = DefaultDailyGoal * 25
	}
	score := float64(s.FocusMinutes) / float64(goalMinutes) * 100
	score -= float64(s.Distractions) * 2
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

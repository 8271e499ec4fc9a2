package models

import "time"

// Streak tracks consecutive-day activity per player. The XP multiplier is
// always derived from StreakCount, never stored.
type Streak struct {
	ID               string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string    `gorm:"uniqueIndex;not null" json:"external_player_id"`
	StreakCount      int       `json:"streak_count" gorm:"default:0"`
	MaxStreak        int       `json:"max_streak" gorm:"default:0"`
	LastActivityAt   time.Time `json:"last_activity_at"`

	Timestamps
}

// StreakMilestone is a one-off reward granted the day a streak reaches a
// milestone count.
type StreakMilestone struct {
	XP            int64
	Multiplier    float64
	SpecialReward string
	Message       string
}

// StreakMilestones maps streak day counts to their one-off rewards.
var StreakMilestones = map[int]StreakMilestone{
	3:  {XP: 50, Message: "3 Day Streak! +50 XP"},
	5:  {XP: 150, Multiplier: 1.5, Message: "5 Day Streak! +50% XP Bonus!"},
	7:  {XP: 300, Multiplier: 1.8, Message: "Week Streak! +80% XP Bonus!"},
	10: {XP: 500, Multiplier: 2.0, Message: "10 Day Streak! Double XP!"},
	14: {XP: 1000, Multiplier: 2.0, SpecialReward: "Golden Protocol Badge", Message: "2 Week Streak! Golden Badge Unlocked!"},
	30: {XP: 2500, Multiplier: 2.5, SpecialReward: "Legendary Commander Title", Message: "Monthly Master! Legendary Status!"},
}

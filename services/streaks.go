package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"protocol-wars-engine/models"

	"gorm.io/gorm"
)

// Multiplier thresholds: exact step table, not an interpolation.
var streakMultiplierSteps = []struct {
	MinStreak  int
	Multiplier float64
}{
	{10, 2.0},
	{7, 1.8},
	{5, 1.5},
	{3, 1.2},
}

// Multiplier returns the XP multiplier for a streak count. Monotonically
// non-decreasing; 1.0 below a 3-day streak.
func Multiplier(streakCount int) float64 {
	for _, step := range streakMultiplierSteps {
		if streakCount >= step.MinStreak {
			return step.Multiplier
		}
	}
	return 1.0
}

// StreakBonusThreshold is the streak count at which the bonus flag turns on.
const StreakBonusThreshold = 5

// StreakBonus is the result of scaling a base XP amount by the streak
// multiplier. Side-effect free on trait state.
type StreakBonus struct {
	BaseXP      int64   `json:"base_xp"`
	BonusXP     int64   `json:"bonus_xp"`
	ExtraXP     int64   `json:"extra_xp"`
	Multiplier  float64 `json:"multiplier"`
	StreakCount int     `json:"streak_count"`
	HasBonus    bool    `json:"has_bonus"`
	Message     string  `json:"message"`
}

// StreakTransition is the outcome of applying one qualifying activity to a
// streak record: the new count, whether the streak was continued or reset,
// and whether a milestone fires. Milestones fire only when an existing streak
// is extended to the milestone count, never on a reset back to 1.
type StreakTransition struct {
	Count     int
	MaxStreak int
	WasReset  bool
	Extended  bool
}

// NextStreak is the pure decision rule behind UpdateStreak. An activity
// within 24h of the previous one continues the streak; anything older resets
// it to 1. A first-ever activity (zero lastActivity) starts at 1 without
// counting as a reset.
func NextStreak(prevCount, prevMax int, lastActivity, now time.Time) StreakTransition {
	t := StreakTransition{MaxStreak: prevMax}
	if !lastActivity.IsZero() && !lastActivity.Before(now.Add(-24*time.Hour)) {
		t.Count = prevCount + 1
		t.Extended = true
	} else {
		t.Count = 1
		t.WasReset = !lastActivity.IsZero()
	}
	if t.Count > t.MaxStreak {
		t.MaxStreak = t.Count
	}
	return t
}

// MilestoneHit returns the milestone this transition triggers, if any.
func (t StreakTransition) MilestoneHit() (models.StreakMilestone, bool) {
	if !t.Extended {
		return models.StreakMilestone{}, false
	}
	milestone, ok := models.StreakMilestones[t.Count]
	return milestone, ok
}

type StreakService struct {
	DB *gorm.DB

	// now is swappable for tests.
	now func() time.Time
}

func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{DB: db, now: time.Now}
}

// StreakState is the streak record plus its derived multiplier.
type StreakState struct {
	StreakCount    int       `json:"streak_count"`
	MaxStreak      int       `json:"max_streak"`
	LastActivityAt time.Time `json:"last_activity_at"`
	Multiplier     float64   `json:"multiplier"`
	WasReset       bool      `json:"was_reset,omitempty"`
}

// GetStreak is fetch-or-default: it returns the persisted streak, or a zeroed
// record when none exists or retrieval fails. It never surfaces an error.
func (s *StreakService) GetStreak(playerID string) StreakState {
	var streak models.Streak
	err := s.DB.Where("external_player_id = ?", playerID).First(&streak).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️  Streak fetch failed for %s, using zeroed record: %v", playerID, err)
		}
		return StreakState{Multiplier: 1.0}
	}
	return StreakState{
		StreakCount:    streak.StreakCount,
		MaxStreak:      streak.MaxStreak,
		LastActivityAt: streak.LastActivityAt,
		Multiplier:     Multiplier(streak.StreakCount),
	}
}

// UpdateStreak records a qualifying activity. Activity within the prior 24h
// window continues the streak; anything older resets it to 1.
func (s *StreakService) UpdateStreak(playerID string) (StreakState, error) {
	now := s.now()

	var state StreakState
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var streak models.Streak
		err := tx.Where("external_player_id = ?", playerID).First(&streak).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			streak = models.Streak{ExternalPlayerID: playerID}
		} else if err != nil {
			return err
		}

		next := NextStreak(streak.StreakCount, streak.MaxStreak, streak.LastActivityAt, now)
		streak.StreakCount = next.Count
		streak.MaxStreak = next.MaxStreak
		streak.LastActivityAt = now

		if err := tx.Save(&streak).Error; err != nil {
			return err
		}

		if milestone, ok := next.MilestoneHit(); ok {
			if err := grantStreakMilestoneTx(tx, playerID, next.Count, milestone); err != nil {
				return err
			}
		}

		state = StreakState{
			StreakCount:    streak.StreakCount,
			MaxStreak:      streak.MaxStreak,
			LastActivityAt: streak.LastActivityAt,
			Multiplier:     Multiplier(streak.StreakCount),
			WasReset:       next.WasReset,
		}
		return nil
	})
	if err != nil {
		return StreakState{Multiplier: 1.0}, err
	}
	return state, nil
}

// grantStreakMilestoneTx credits the milestone's one-off XP and queues the
// milestone notification inside the streak transaction.
func grantStreakMilestoneTx(tx *gorm.DB, playerID string, count int, milestone models.StreakMilestone) error {
	var profile models.PlayerProfile
	err := tx.Where("external_player_id = ?", playerID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil {
		profile.TotalXP += milestone.XP
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
	}

	note := models.Notification{
		ExternalPlayerID: playerID,
		Kind:             models.NotificationStreakMilestone,
		Title:            fmt.Sprintf("🔥 %d Day Streak", count),
		Message:          milestone.Message,
		Payload: map[string]interface{}{
			"streak_count": count,
			"xp":           milestone.XP,
		},
	}
	if milestone.SpecialReward != "" {
		note.Payload["special_reward"] = milestone.SpecialReward
	}
	if err := tx.Create(&note).Error; err != nil {
		return err
	}

	log.Printf("🔥 Streak milestone for %s: %s", playerID, milestone.Message)
	return nil
}

// ApplyStreakBonus scales a base XP amount by the player's current streak
// multiplier. Reads only; trait state is untouched.
func (s *StreakService) ApplyStreakBonus(playerID string, baseXP int64) StreakBonus {
	streak := s.GetStreak(playerID)
	return ComputeStreakBonus(streak.StreakCount, baseXP)
}

// ComputeStreakBonus is the pure scaling rule behind ApplyStreakBonus.
func ComputeStreakBonus(streakCount int, baseXP int64) StreakBonus {
	mult := Multiplier(streakCount)
	bonusXP := int64(math.Floor(float64(baseXP) * mult))
	extra := bonusXP - baseXP

	msg := ""
	if extra > 0 {
		msg = "Streak bonus XP active!"
	}
	return StreakBonus{
		BaseXP:      baseXP,
		BonusXP:     bonusXP,
		ExtraXP:     extra,
		Multiplier:  mult,
		StreakCount: streakCount,
		HasBonus:    streakCount >= StreakBonusThreshold,
		Message:     msg,
	}
}

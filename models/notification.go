package models

import "gorm.io/datatypes"

// Notification kinds
const (
	NotificationMissionReward   = "mission_reward"
	NotificationStreakBonus     = "streak_bonus"
	NotificationStreakMilestone = "streak_milestone"
	NotificationBattleResult    = "battle_result"
	NotificationActionResult    = "action_result"
	NotificationAbilityUsed     = "ability_used"
	NotificationWarning         = "warning"
)

// Notification is the engine's event queue. The engine only appends here;
// presentation (polling, dismissal) is the caller's responsibility.
type Notification struct {
	ID               string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string            `gorm:"index;not null" json:"external_player_id"`
	Kind             string            `json:"kind" gorm:"type:varchar(32);index"`
	Title            string            `json:"title"`
	Message          string            `json:"message" gorm:"type:text"`
	Payload          datatypes.JSONMap `json:"payload,omitempty"`
	Viewed           bool              `json:"viewed" gorm:"default:false;index"`

	Timestamps
}

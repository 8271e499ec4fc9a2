package models

import (
	"time"

	"gorm.io/datatypes"
)

// Mission rarities
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

// Mission lifecycle states. A mission is never deleted, only filtered from
// active views once completed.
const (
	MissionStatusAvailable  = "available"
	MissionStatusInProgress = "in_progress"
	MissionStatusClaimable  = "claimable"
	MissionStatusCompleted  = "completed"
)

// Mission is a generated, player-owned instance of a MissionTemplate.
type Mission struct {
	ID               string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string `gorm:"index;not null" json:"external_player_id"`

	Title          string `json:"title" gorm:"not null"`
	Description    string `json:"description" gorm:"type:text"`
	Category       string `json:"category" gorm:"index"`
	Rarity         string `json:"rarity" gorm:"type:varchar(16);default:'common'"`
	PrimaryTrait   string `json:"primary_trait"`
	SecondaryTrait string `json:"secondary_trait"`

	// Reward is the display string ("+2 Risk Management, +1 Leadership");
	// Rewards is the parsed trait-delta map it encodes.
	Reward   string                         `json:"reward"`
	Rewards  datatypes.JSONType[TraitDelta] `json:"rewards"`
	TVLBonus int64                          `json:"tvl_bonus" gorm:"default:0"`

	Difficulty  int `json:"difficulty" gorm:"default:0"`  // 0-100
	DurationSec int `json:"duration" gorm:"default:0"`    // countdown length
	Progress    int `json:"progress" gorm:"default:0"`    // 0-100

	Status    string     `json:"status" gorm:"type:varchar(16);default:'available';index"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Completed bool       `json:"completed" gorm:"default:false"`

	Timestamps
}

// MissionTemplate is immutable catalog data a Mission is generated from.
type MissionTemplate struct {
	Category       string
	Title          string
	Description    string
	PrimaryTrait   string
	SecondaryTrait string
	BaseReward     TraitDelta
	BaseDuration   int // seconds
	BaseDifficulty int // 0-100
	Rarity         string
	MinLevel       int
	RequiredTraits TraitDelta // minimum trait levels; empty means no gate
}

// RarityTraitSumGate is the minimum total trait sum needed before templates of
// a given rarity are offered.
var RarityTraitSumGate = map[string]int{
	RarityCommon:    20,
	RarityRare:      40,
	RarityLegendary: 70,
}

// RaritySelectionWeight biases template selection toward common missions.
var RaritySelectionWeight = map[string]int{
	RarityCommon:    60,
	RarityRare:      30,
	RarityLegendary: 10,
}

// RarityRewardMultiplier scales rewards by template tier.
var RarityRewardMultiplier = map[string]float64{
	RarityCommon:    1,
	RarityRare:      1.5,
	RarityLegendary: 2.5,
}

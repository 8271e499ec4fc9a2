package models

import (
	"time"

	"gorm.io/gorm"
)

// Canonical trait keys. These match the keys used in mission reward maps
// and the remote profile payloads.
const (
	TraitLeadership        = "leadership"
	TraitRiskManagement    = "riskManagement"
	TraitCommunityBuilding = "communityBuilding"
	TraitEconomicStrategy  = "economicStrategy"
)

// TraitKeys lists all four commander traits in display order.
var TraitKeys = []string{
	TraitLeadership,
	TraitRiskManagement,
	TraitCommunityBuilding,
	TraitEconomicStrategy,
}

// ValidTrait reports whether key names one of the four commander traits.
func ValidTrait(key string) bool {
	switch key {
	case TraitLeadership, TraitRiskManagement, TraitCommunityBuilding, TraitEconomicStrategy:
		return true
	default:
		return false
	}
}

// CommanderTraits holds the four commander attributes, each in [0,100].
type CommanderTraits struct {
	Leadership        int `json:"leadership"`
	RiskManagement    int `json:"riskManagement"`
	CommunityBuilding int `json:"communityBuilding"`
	EconomicStrategy  int `json:"economicStrategy"`
}

// Get returns the value for a canonical trait key (0 for unknown keys).
func (t CommanderTraits) Get(key string) int {
	switch key {
	case TraitLeadership:
		return t.Leadership
	case TraitRiskManagement:
		return t.RiskManagement
	case TraitCommunityBuilding:
		return t.CommunityBuilding
	case TraitEconomicStrategy:
		return t.EconomicStrategy
	default:
		return 0
	}
}

// Set assigns the value for a canonical trait key. Unknown keys are ignored.
func (t *CommanderTraits) Set(key string, value int) {
	switch key {
	case TraitLeadership:
		t.Leadership = value
	case TraitRiskManagement:
		t.RiskManagement = value
	case TraitCommunityBuilding:
		t.CommunityBuilding = value
	case TraitEconomicStrategy:
		t.EconomicStrategy = value
	}
}

// Sum returns the total of all four traits.
func (t CommanderTraits) Sum() int {
	return t.Leadership + t.RiskManagement + t.CommunityBuilding + t.EconomicStrategy
}

// TraitDelta is a partial set of trait adjustments keyed by canonical trait key.
type TraitDelta map[string]int

// PlayerProfile is the single owning record for all mutable player-facing
// state: traits, cached TVL, energy, and activity counters.
type PlayerProfile struct {
	ID               string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string `gorm:"uniqueIndex;not null" json:"external_player_id"` // wallet address

	// Commander traits, each clamped to [0,100] after every mutation.
	Leadership        int `json:"leadership" gorm:"default:0"`
	RiskManagement    int `json:"risk_management" gorm:"default:0"`
	CommunityBuilding int `json:"community_building" gorm:"default:0"`
	EconomicStrategy  int `json:"economic_strategy" gorm:"default:0"`

	// TVL is derived from the traits and recomputed on every trait write,
	// never mutated independently.
	TVL int64 `json:"tvl" gorm:"default:0"`

	// Energy for protocol actions, regenerated at +1 per 2s up to 100.
	// EnergyUpdatedAt anchors the elapsed-time regen calculation.
	Energy          int       `json:"energy" gorm:"default:100"`
	EnergyUpdatedAt time.Time `json:"energy_updated_at"`

	// Activity counters
	TotalXP       int64 `json:"total_xp" gorm:"default:0"`
	TotalMissions int64 `json:"total_missions" gorm:"default:0"`
	TotalBattles  int64 `json:"total_battles" gorm:"default:0"`
	BattlesWon    int64 `json:"battles_won" gorm:"default:0"`

	Timestamps
}

// Traits returns the commander traits as a value struct.
func (p *PlayerProfile) Traits() CommanderTraits {
	return CommanderTraits{
		Leadership:        p.Leadership,
		RiskManagement:    p.RiskManagement,
		CommunityBuilding: p.CommunityBuilding,
		EconomicStrategy:  p.EconomicStrategy,
	}
}

// SetTraits writes a trait struct back onto the profile columns.
func (p *PlayerProfile) SetTraits(t CommanderTraits) {
	p.Leadership = t.Leadership
	p.RiskManagement = t.RiskManagement
	p.CommunityBuilding = t.CommunityBuilding
	p.EconomicStrategy = t.EconomicStrategy
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

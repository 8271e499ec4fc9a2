package models

import "gorm.io/datatypes"

// Battle results
const (
	BattleResultVictory = "victory"
	BattleResultDefeat  = "defeat"
)

// BattleRecord is the persisted outcome of a single battle resolution.
type BattleRecord struct {
	ID               string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string `gorm:"index;not null" json:"external_player_id"`
	ProtocolID       string `gorm:"index;not null" json:"protocol_id"`

	PlayerPower int     `json:"player_power"`
	EnemyPower  int     `json:"enemy_power"`
	WinChance   float64 `json:"win_chance"`

	Result   string `json:"result" gorm:"type:varchar(16);check:result IN ('victory','defeat')"`
	TVLDelta int64  `json:"tvl_delta"` // positive gain on victory, negative loss on defeat

	// TraitDelta holds the bonuses (victory) or penalties (defeat) applied.
	TraitDelta datatypes.JSONType[TraitDelta] `json:"trait_delta"`

	XPEarned int64 `json:"xp_earned" gorm:"default:0"`

	Timestamps
}

// BattleReport is the ephemeral resolution result handed back to the caller,
// including the narrative phase log. It exists only for the display window.
type BattleReport struct {
	Record    BattleRecord    `json:"record"`
	Protocol  Protocol        `json:"protocol"`
	PhaseLog  []string        `json:"phase_log"`
	NewTraits CommanderTraits `json:"new_traits"`
	NewTVL    int64           `json:"new_tvl"`
	Captured  bool            `json:"captured"`
}

// BattlePhases is the fixed narrative sequence shown during combat. Purely
// presentational; resolution does not depend on it.
var BattlePhases = []string{
	"Initial reconnaissance...",
	"Deploying economic strategies...",
	"Community mobilization in progress...",
	"Risk management protocols active...",
	"Final assault commencing...",
}

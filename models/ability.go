package models

import "time"

// TraitRequirement is the unlock gate for a special ability.
type TraitRequirement struct {
	Trait string `json:"trait"`
	Level int    `json:"level"`
}

// AbilitySpec is an immutable catalog entry for a special ability. Unlike
// actions, trait costs are thresholds the player must hold, and effects with
// Duration > 0 open a timed active window swept by the scheduler.
type AbilitySpec struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Cooldown      time.Duration          `json:"cooldown"`
	Duration      time.Duration          `json:"duration"` // 0 means instant
	Cost          TraitDelta             `json:"cost"`
	RequiredTrait TraitRequirement       `json:"required_trait"`
	Effect        map[string]interface{} `json:"effect"`
	Type          string                 `json:"type"` // buff, defense, instant, debuff, summon, ultimate
}

// SpecialAbilities is the static ability catalog.
var SpecialAbilities = map[string]AbilitySpec{
	"leadership_burst": {
		ID: "leadership_burst", Name: "🎭 Leadership Burst",
		Description:   "Temporary +20 Leadership for 30 seconds",
		Cooldown:      60 * time.Second,
		Duration:      30 * time.Second,
		Cost:          TraitDelta{TraitLeadership: 10},
		RequiredTrait: TraitRequirement{Trait: TraitLeadership, Level: 20},
		Effect:        map[string]interface{}{"leadership": 20},
		Type:          "buff",
	},
	"shield_protocol": {
		ID: "shield_protocol", Name: "🛡️ Shield Protocol",
		Description:   "Absorbs next 3 attacks completely",
		Cooldown:      90 * time.Second,
		Duration:      60 * time.Second,
		Cost:          TraitDelta{TraitRiskManagement: 15},
		RequiredTrait: TraitRequirement{Trait: TraitRiskManagement, Level: 25},
		Effect:        map[string]interface{}{"shieldCharges": 3},
		Type:          "defense",
	},
	"viral_marketing": {
		ID: "viral_marketing", Name: "📈 Viral Marketing",
		Description:   "Doubles community building effects for 45 seconds",
		Cooldown:      120 * time.Second,
		Duration:      45 * time.Second,
		Cost:          TraitDelta{TraitCommunityBuilding: 20},
		RequiredTrait: TraitRequirement{Trait: TraitCommunityBuilding, Level: 30},
		Effect:        map[string]interface{}{"communityMultiplier": 2},
		Type:          "buff",
	},
	"yield_surge": {
		ID: "yield_surge", Name: "💰 Yield Surge",
		Description:   "Instantly gain TVL based on economic strategy",
		Cooldown:      180 * time.Second,
		Cost:          TraitDelta{TraitEconomicStrategy: 25},
		RequiredTrait: TraitRequirement{Trait: TraitEconomicStrategy, Level: 35},
		Effect:        map[string]interface{}{"instantTVL": true},
		Type:          "instant",
	},
	"protocol_freeze": {
		ID: "protocol_freeze", Name: "❄️ Protocol Freeze",
		Description:   "Freezes all enemy protocols for 15 seconds",
		Cooldown:      240 * time.Second,
		Duration:      15 * time.Second,
		Cost:          TraitDelta{TraitLeadership: 20, TraitRiskManagement: 15},
		RequiredTrait: TraitRequirement{Trait: TraitLeadership, Level: 50},
		Effect:        map[string]interface{}{"freezeEnemies": true},
		Type:          "debuff",
	},
	"alliance_call": {
		ID: "alliance_call", Name: "🤝 Alliance Call",
		Description:   "Summons allied protocols to assist in battle",
		Cooldown:      300 * time.Second,
		Duration:      30 * time.Second,
		Cost:          TraitDelta{TraitCommunityBuilding: 30, TraitLeadership: 15},
		RequiredTrait: TraitRequirement{Trait: TraitCommunityBuilding, Level: 40},
		Effect:        map[string]interface{}{"summonAllies": 3},
		Type:          "summon",
	},
	"market_manipulation": {
		ID: "market_manipulation", Name: "📊 Market Manipulation",
		Description:   "Reduces all enemy TVL by 10% permanently",
		Cooldown:      420 * time.Second,
		Cost:          TraitDelta{TraitEconomicStrategy: 40, TraitLeadership: 20},
		RequiredTrait: TraitRequirement{Trait: TraitEconomicStrategy, Level: 60},
		Effect:        map[string]interface{}{"enemyTVLReduction": 0.1},
		Type:          "instant",
	},
	"ultimate_hack": {
		ID: "ultimate_hack", Name: "💀 Ultimate Hack",
		Description:   "Massive damage to all visible protocols",
		Cooldown:      600 * time.Second,
		Cost:          TraitDelta{TraitRiskManagement: 50, TraitEconomicStrategy: 30},
		RequiredTrait: TraitRequirement{Trait: TraitRiskManagement, Level: 70},
		Effect:        map[string]interface{}{"massDestruction": true},
		Type:          "ultimate",
	},
	"lightning_strike": {
		ID: "lightning_strike", Name: "⚡ Lightning Strike",
		Description:   "Chain attack that jumps between protocols",
		Cooldown:      30 * time.Second,
		Cost:          TraitDelta{TraitEconomicStrategy: 20, TraitLeadership: 10},
		RequiredTrait: TraitRequirement{Trait: TraitEconomicStrategy, Level: 15},
		Effect:        map[string]interface{}{"chainDamage": true, "bounces": 3},
		Type:          "instant",
	},
	"shield_matrix": {
		ID: "shield_matrix", Name: "🛡️ Shield Matrix",
		Description:   "Protect nearby allied protocols",
		Cooldown:      45 * time.Second,
		Duration:      20 * time.Second,
		Cost:          TraitDelta{TraitRiskManagement: 25},
		RequiredTrait: TraitRequirement{Trait: TraitRiskManagement, Level: 20},
		Effect:        map[string]interface{}{"allyProtection": 0.5},
		Type:          "defense",
	},
}

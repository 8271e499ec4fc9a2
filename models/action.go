package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActionSpec is an immutable catalog entry for a protocol action. Cost keys
// are canonical trait keys plus "energy"; trait costs are thresholds, not
// deductions — only energy is spent.
type ActionSpec struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Cost        TraitDelta    `json:"cost"` // includes the "energy" key
	Cooldown    time.Duration `json:"cooldown"`
	Effects     []string      `json:"effects"`
	SuccessRate float64       `json:"success_rate"`
}

// EnergyCost returns the energy component of the action's cost.
func (a ActionSpec) EnergyCost() int {
	return a.Cost["energy"]
}

// ActionOutcome is the fixed result payload emitted for a success or failure.
// Effects are descriptors for the caller to apply; the engine's contract
// stops here.
type ActionOutcome struct {
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Effects map[string]interface{} `json:"effects"`
}

// PlayerCooldown persists per-player cooldowns and active-ability windows so
// wall-clock timers survive reload. Kind distinguishes actions from abilities.
type PlayerCooldown struct {
	ID               string            `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ExternalPlayerID string            `gorm:"index:idx_cooldown_player_ref,unique;not null" json:"external_player_id"`
	Kind             string            `gorm:"index:idx_cooldown_player_ref,unique;type:varchar(16)" json:"kind"` // action | ability
	RefID            string            `gorm:"index:idx_cooldown_player_ref,unique;not null" json:"ref_id"`
	CooldownEnd      time.Time         `json:"cooldown_end"`
	ActiveStart      *time.Time        `json:"active_start,omitempty"`
	ActiveEnd        *time.Time        `json:"active_end,omitempty"`
	Payload          datatypes.JSONMap `json:"payload,omitempty"`

	Timestamps
}

const (
	CooldownKindAction  = "action"
	CooldownKindAbility = "ability"
)

// ProtocolActions is the static action catalog.
var ProtocolActions = map[string]ActionSpec{
	"attack": {
		ID: "attack", Name: "⚔️ Attack",
		Description: "Launch a direct assault on this protocol",
		Cost:        TraitDelta{"energy": 20},
		Cooldown:    5 * time.Second,
		Effects:     []string{"damage", "tvl_loss"},
		SuccessRate: 0.7,
	},
	"hack": {
		ID: "hack", Name: "💻 Hack",
		Description: "Attempt to infiltrate and steal resources",
		Cost:        TraitDelta{"energy": 30, TraitRiskManagement: 5},
		Cooldown:    15 * time.Second,
		Effects:     []string{"resource_steal", "temporary_control"},
		SuccessRate: 0.5,
	},
	"infiltrate": {
		ID: "infiltrate", Name: "🕵️ Infiltrate",
		Description: "Secretly gather intelligence on this protocol",
		Cost:        TraitDelta{"energy": 10, TraitLeadership: 3},
		Cooldown:    8 * time.Second,
		Effects:     []string{"reveal_info", "weakness_detection"},
		SuccessRate: 0.8,
	},
	"sabotage": {
		ID: "sabotage", Name: "💣 Sabotage",
		Description: "Disrupt protocol operations for a limited time",
		Cost:        TraitDelta{"energy": 25, TraitRiskManagement: 8},
		Cooldown:    20 * time.Second,
		Effects:     []string{"temporary_disable", "efficiency_reduction"},
		SuccessRate: 0.6,
	},
	"alliance_offer": {
		ID: "alliance_offer", Name: "🤝 Alliance Offer",
		Description: "Propose a strategic alliance",
		Cost:        TraitDelta{"energy": 15, TraitLeadership: 10, TraitCommunityBuilding: 5},
		Cooldown:    30 * time.Second,
		Effects:     []string{"alliance_formation", "mutual_benefits"},
		SuccessRate: 0.4,
	},
	"trade_proposal": {
		ID: "trade_proposal", Name: "🔄 Trade Proposal",
		Description: "Offer to trade resources or benefits",
		Cost:        TraitDelta{"energy": 10, TraitEconomicStrategy: 8},
		Cooldown:    10 * time.Second,
		Effects:     []string{"resource_exchange", "temporary_boost"},
		SuccessRate: 0.75,
	},
	"market_siege": {
		ID: "market_siege", Name: "📈 Market Siege",
		Description: "Attempt to dominate the same market sector",
		Cost:        TraitDelta{"energy": 40, TraitEconomicStrategy: 15, TraitCommunityBuilding: 10},
		Cooldown:    60 * time.Second,
		Effects:     []string{"market_dominance", "competitor_weakening"},
		SuccessRate: 0.3,
	},
	"viral_campaign": {
		ID: "viral_campaign", Name: "📱 Viral Campaign",
		Description: "Launch a social media campaign to steal users",
		Cost:        TraitDelta{"energy": 20, TraitCommunityBuilding: 12},
		Cooldown:    25 * time.Second,
		Effects:     []string{"user_migration", "reputation_damage"},
		SuccessRate: 0.65,
	},
	"technical_audit": {
		ID: "technical_audit", Name: "🔍 Technical Audit",
		Description: "Expose vulnerabilities in their smart contracts",
		Cost:        TraitDelta{"energy": 35, TraitRiskManagement: 20},
		Cooldown:    45 * time.Second,
		Effects:     []string{"vulnerability_exposure", "trust_loss"},
		SuccessRate: 0.4,
	},
	"bounty_hunt": {
		ID: "bounty_hunt", Name: "🎯 Bounty Hunt",
		Description: "Recruit white hat hackers to find exploits",
		Cost:        TraitDelta{"energy": 30, TraitEconomicStrategy: 10, TraitRiskManagement: 15},
		Cooldown:    40 * time.Second,
		Effects:     []string{"exploit_discovery", "security_breach"},
		SuccessRate: 0.35,
	},
}

// ActionSuccessOutcomes keys fixed success payloads by action id.
var ActionSuccessOutcomes = map[string]ActionOutcome{
	"attack": {
		Title:   "🎯 Attack Successful!",
		Message: "Your assault was devastating! The protocol has suffered significant damage.",
		Effects: map[string]interface{}{"tvlReduction": 0.15, "damageDealt": 25},
	},
	"hack": {
		Title:   "💻 Hack Complete!",
		Message: "You successfully infiltrated their systems and extracted valuable data!",
		Effects: map[string]interface{}{"resourcesStolen": 1000, "temporaryAccess": 30000},
	},
	"infiltrate": {
		Title:   "🕵️ Intelligence Gathered!",
		Message: "Your spy network has revealed crucial information about the target.",
		Effects: map[string]interface{}{"intelGained": true, "weaknessRevealed": true},
	},
	"sabotage": {
		Title:   "💣 Sabotage Executed!",
		Message: "Their operations are severely disrupted! They cannot act for a while.",
		Effects: map[string]interface{}{"disabledDuration": 45000, "efficiencyReduction": 0.5},
	},
	"alliance_offer": {
		Title:   "🤝 Alliance Formed!",
		Message: "A new strategic partnership has been established!",
		Effects: map[string]interface{}{"allianceFormed": true, "mutualBenefits": true},
	},
	"trade_proposal": {
		Title:   "🔄 Trade Accepted!",
		Message: "Both protocols benefit from this exchange!",
		Effects: map[string]interface{}{"resourceBoost": 500, "temporaryBuff": 60000},
	},
	"market_siege": {
		Title:   "📈 Market Dominated!",
		Message: "You have successfully cornered the market in this sector!",
		Effects: map[string]interface{}{"marketShare": 0.3, "competitorWeakening": 0.2},
	},
	"viral_campaign": {
		Title:   "📱 Campaign Viral!",
		Message: "Your campaign went viral! Users are flocking to your protocol!",
		Effects: map[string]interface{}{"userMigration": 5000, "reputationDamage": 0.1},
	},
	"technical_audit": {
		Title:   "🔍 Vulnerabilities Exposed!",
		Message: "Critical flaws have been revealed to the public!",
		Effects: map[string]interface{}{"trustLoss": 0.25, "securityConcerns": true},
	},
	"bounty_hunt": {
		Title:   "🎯 Exploit Discovered!",
		Message: "White hat hackers found a critical vulnerability!",
		Effects: map[string]interface{}{"exploitFound": true, "securityBreach": 0.3},
	},
}

// ActionFailureOutcomes keys fixed failure payloads by action id.
var ActionFailureOutcomes = map[string]ActionOutcome{
	"attack": {
		Title:   "⚠️ Attack Repelled!",
		Message: "Your attack was anticipated and successfully defended against.",
		Effects: map[string]interface{}{"retaliation": true, "energyLoss": 10},
	},
	"hack": {
		Title:   "🚫 Hack Failed!",
		Message: "Their security systems detected your intrusion attempt.",
		Effects: map[string]interface{}{"detectionRisk": true, "reputationLoss": 0.05},
	},
	"infiltrate": {
		Title:   "👀 Spy Detected!",
		Message: "Your infiltration attempt was discovered and thwarted.",
		Effects: map[string]interface{}{"spyCompromised": true, "trustLoss": 0.1},
	},
	"sabotage": {
		Title:   "🛡️ Sabotage Prevented!",
		Message: "They detected your sabotage attempt and increased security.",
		Effects: map[string]interface{}{"securityIncrease": 0.2, "alertLevel": "high"},
	},
	"alliance_offer": {
		Title:   "❌ Alliance Rejected!",
		Message: "Your alliance proposal was declined. They seem suspicious of your motives.",
		Effects: map[string]interface{}{"relationshipDamage": 0.15, "diplomacyPenalty": true},
	},
	"trade_proposal": {
		Title:   "🚫 Trade Declined!",
		Message: "They found your trade proposal unfavorable.",
		Effects: map[string]interface{}{"economicTension": true, "trustReduction": 0.05},
	},
	"market_siege": {
		Title:   "🛡️ Market Defense!",
		Message: "They successfully defended their market position.",
		Effects: map[string]interface{}{"counterAttack": true, "marketLoss": 0.1},
	},
	"viral_campaign": {
		Title:   "📉 Campaign Backfired!",
		Message: "Your campaign was exposed as manipulation and damaged your reputation.",
		Effects: map[string]interface{}{"reputationLoss": 0.2, "userMigrationReverse": -2000},
	},
	"technical_audit": {
		Title:   "✅ Audit Clean!",
		Message: "Their code was found to be secure, boosting their credibility.",
		Effects: map[string]interface{}{"competitorBoost": 0.1, "auditFailure": true},
	},
	"bounty_hunt": {
		Title:   "🔒 No Exploits Found!",
		Message: "The bounty hunters found their security to be impeccable.",
		Effects: map[string]interface{}{"securityConfidence": 0.15, "resourceWaste": 1000},
	},
}

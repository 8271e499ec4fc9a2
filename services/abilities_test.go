package services

import (
	"testing"
	"time"

	"protocol-wars-engine/models"
)

func TestAvailableAbilities(t *testing.T) {
	// Leadership 20 unlocks exactly leadership_burst for a fresh build.
	traits := models.CommanderTraits{Leadership: 20, RiskManagement: 10, CommunityBuilding: 10, EconomicStrategy: 10}
	got := AvailableAbilities(traits)
	if len(got) != 1 || got[0].ID != "leadership_burst" {
		ids := make([]string, 0, len(got))
		for _, a := range got {
			ids = append(ids, a.ID)
		}
		t.Errorf("AvailableAbilities = %v, want [leadership_burst]", ids)
	}

	if got := AvailableAbilities(models.CommanderTraits{}); len(got) != 0 {
		t.Errorf("zeroed commander unlocked %d abilities, want 0", len(got))
	}

	maxed := models.CommanderTraits{Leadership: 100, RiskManagement: 100, CommunityBuilding: 100, EconomicStrategy: 100}
	all := AvailableAbilities(maxed)
	if len(all) != len(models.SpecialAbilities) {
		t.Errorf("maxed commander unlocked %d abilities, want %d", len(all), len(models.SpecialAbilities))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("abilities not sorted: %q before %q", all[i-1].ID, all[i].ID)
		}
	}
}

func TestCanUseAbility(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	burst := models.SpecialAbilities["leadership_burst"] // cost: leadership 10

	tests := []struct {
		name        string
		traits      models.CommanderTraits
		cooldownEnd time.Time
		wantOK      bool
	}{
		{"ready", models.CommanderTraits{Leadership: 25}, time.Time{}, true},
		{"exact cost threshold", models.CommanderTraits{Leadership: 10}, time.Time{}, true},
		{"below cost threshold", models.CommanderTraits{Leadership: 9}, time.Time{}, false},
		{"on cooldown", models.CommanderTraits{Leadership: 25}, now.Add(30 * time.Second), false},
		{"cooldown expired", models.CommanderTraits{Leadership: 25}, now.Add(-time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanUseAbility(burst, tt.traits, tt.cooldownEnd, now)
			if ok != tt.wantOK {
				t.Errorf("CanUseAbility = %v (%q), want %v", ok, reason, tt.wantOK)
			}
			if !ok && reason == "" {
				t.Error("failure must carry a reason")
			}
		})
	}
}

func TestCanUseAbility_MultiTraitCost(t *testing.T) {
	now := time.Now()
	freeze := models.SpecialAbilities["protocol_freeze"] // cost: leadership 20, riskManagement 15

	if ok, _ := CanUseAbility(freeze, models.CommanderTraits{Leadership: 20, RiskManagement: 15}, time.Time{}, now); !ok {
		t.Error("both thresholds met, expected usable")
	}
	if ok, _ := CanUseAbility(freeze, models.CommanderTraits{Leadership: 20, RiskManagement: 14}, time.Time{}, now); ok {
		t.Error("risk threshold unmet, expected unusable")
	}
}

func TestAbilityCatalog_Consistent(t *testing.T) {
	for id, spec := range models.SpecialAbilities {
		if spec.ID != id {
			t.Errorf("ability %q keyed under %q", spec.ID, id)
		}
		if spec.Cooldown <= 0 {
			t.Errorf("ability %q has no cooldown", id)
		}
		if spec.RequiredTrait.Trait == "" || spec.RequiredTrait.Level <= 0 {
			t.Errorf("ability %q has no unlock gate", id)
		}
		if !models.ValidTrait(spec.RequiredTrait.Trait) {
			t.Errorf("ability %q unlock gate on unknown trait %q", id, spec.RequiredTrait.Trait)
		}
	}
}

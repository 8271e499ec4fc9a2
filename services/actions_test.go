package services

import (
	"testing"
	"time"

	"protocol-wars-engine/models"
)

func TestCurrentEnergy(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		stored  int
		elapsed time.Duration
		want    int
	}{
		{"no time passed", 50, 0, 50},
		{"one tick", 50, 2 * time.Second, 51},
		{"partial tick ignored", 50, 3 * time.Second, 51},
		{"ten ticks", 50, 20 * time.Second, 60},
		{"regen caps", 50, time.Hour, EnergyCap},
		{"already full", EnergyCap, time.Hour, EnergyCap},
		{"clock skew", 50, -time.Minute, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentEnergy(tt.stored, base, base.Add(tt.elapsed))
			if got != tt.want {
				t.Errorf("CurrentEnergy = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanPerform(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hack := models.ProtocolActions["hack"] // energy 30, riskManagement 5

	tests := []struct {
		name        string
		energy      int
		traits      models.CommanderTraits
		cooldownEnd time.Time
		wantOK      bool
	}{
		{"all gates pass", 50, models.CommanderTraits{RiskManagement: 10}, time.Time{}, true},
		{"on cooldown", 50, models.CommanderTraits{RiskManagement: 10}, now.Add(5 * time.Second), false},
		{"cooldown just expired", 50, models.CommanderTraits{RiskManagement: 10}, now, true},
		{"insufficient energy", 20, models.CommanderTraits{RiskManagement: 10}, time.Time{}, false},
		{"insufficient energy even off cooldown", 20, models.CommanderTraits{RiskManagement: 10}, now.Add(-time.Hour), false},
		{"trait below threshold", 50, models.CommanderTraits{RiskManagement: 4}, time.Time{}, false},
		{"exact energy", 30, models.CommanderTraits{RiskManagement: 5}, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CanPerform(hack, tt.energy, tt.traits, tt.cooldownEnd, now)
			if ok != tt.wantOK {
				t.Errorf("CanPerform = %v (%q), want %v", ok, reason, tt.wantOK)
			}
			if !ok && reason == "" {
				t.Error("failure must carry a reason")
			}
		})
	}
}

func TestEnergyCost(t *testing.T) {
	tests := []struct {
		actionID string
		want     int
	}{
		{"attack", 20},
		{"hack", 30},
		{"infiltrate", 10},
		{"market_siege", 40},
	}
	for _, tt := range tests {
		spec, ok := models.ProtocolActions[tt.actionID]
		if !ok {
			t.Fatalf("action %q missing from catalog", tt.actionID)
		}
		if got := spec.EnergyCost(); got != tt.want {
			t.Errorf("EnergyCost(%s) = %d, want %d", tt.actionID, got, tt.want)
		}
	}
}

func TestActionCatalog_OutcomesComplete(t *testing.T) {
	// Every action needs both a success and a failure payload; a miss would
	// surface as an empty result at runtime.
	for id := range models.ProtocolActions {
		if _, ok := models.ActionSuccessOutcomes[id]; !ok {
			t.Errorf("action %q has no success outcome", id)
		}
		if _, ok := models.ActionFailureOutcomes[id]; !ok {
			t.Errorf("action %q has no failure outcome", id)
		}
	}
	for _, spec := range models.ProtocolActions {
		if spec.SuccessRate <= 0 || spec.SuccessRate > 1 {
			t.Errorf("action %q success rate %v out of range", spec.ID, spec.SuccessRate)
		}
		if spec.EnergyCost() <= 0 {
			t.Errorf("action %q has no energy cost", spec.ID)
		}
	}
}

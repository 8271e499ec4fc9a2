package services

import (
	"testing"

	"protocol-wars-engine/models"
)

func TestClampTrait(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{101, 100},
		{1000, 100},
	}
	for _, tt := range tests {
		if got := ClampTrait(tt.in); got != tt.want {
			t.Errorf("ClampTrait(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestApplyDelta(t *testing.T) {
	base := models.CommanderTraits{Leadership: 10, RiskManagement: 10, CommunityBuilding: 10, EconomicStrategy: 10}

	got := ApplyDelta(base, models.TraitDelta{
		models.TraitLeadership:    5,
		models.TraitRiskManagement: -20,
		"bogus":                   99,
	})

	if got.Leadership != 15 {
		t.Errorf("Leadership = %d, want 15", got.Leadership)
	}
	if got.RiskManagement != 0 {
		t.Errorf("RiskManagement = %d, want 0 (clamped)", got.RiskManagement)
	}
	if got.CommunityBuilding != 10 || got.EconomicStrategy != 10 {
		t.Errorf("untouched traits changed: %+v", got)
	}
}

func TestApplyDelta_ClampIsSaturating(t *testing.T) {
	base := models.CommanderTraits{Leadership: 98}
	once := ApplyDelta(base, models.TraitDelta{models.TraitLeadership: 10})
	twice := ApplyDelta(once, models.TraitDelta{models.TraitLeadership: 10})

	if once.Leadership != 100 || twice.Leadership != 100 {
		t.Errorf("saturation broken: once=%d twice=%d, want 100/100", once.Leadership, twice.Leadership)
	}
}

func TestComputeTVL(t *testing.T) {
	tests := []struct {
		name   string
		traits models.CommanderTraits
		want   int64
	}{
		{"zero", models.CommanderTraits{}, 0},
		{"initial", InitialTraits(), 43000},
		{"fallback", FallbackTraits(), 69600},
		{"maxed", models.CommanderTraits{Leadership: 100, RiskManagement: 100, CommunityBuilding: 100, EconomicStrategy: 100}, 430000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeTVL(tt.traits); got != tt.want {
				t.Errorf("ComputeTVL(%+v) = %d, want %d", tt.traits, got, tt.want)
			}
		})
	}
}

func TestPlayerLevel(t *testing.T) {
	tests := []struct {
		name   string
		traits models.CommanderTraits
		want   int
	}{
		{"zero", models.CommanderTraits{}, 1},
		{"initial", InitialTraits(), 2},
		{"mixed", models.CommanderTraits{Leadership: 50, RiskManagement: 40, CommunityBuilding: 30, EconomicStrategy: 20}, 4},
		{"maxed", models.CommanderTraits{Leadership: 100, RiskManagement: 100, CommunityBuilding: 100, EconomicStrategy: 100}, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayerLevel(tt.traits); got != tt.want {
				t.Errorf("PlayerLevel(%+v) = %d, want %d", tt.traits, got, tt.want)
			}
		})
	}
}

func TestTraitAccessors(t *testing.T) {
	traits := models.CommanderTraits{Leadership: 1, RiskManagement: 2, CommunityBuilding: 3, EconomicStrategy: 4}

	for i, key := range models.TraitKeys {
		if got := traits.Get(key); got != i+1 {
			t.Errorf("Get(%q) = %d, want %d", key, got, i+1)
		}
	}
	if traits.Sum() != 10 {
		t.Errorf("Sum() = %d, want 10", traits.Sum())
	}
	if traits.Get("bogus") != 0 {
		t.Errorf("Get(bogus) = %d, want 0", traits.Get("bogus"))
	}
}

package services

import (
	"math"
	"testing"

	"protocol-wars-engine/models"
)

func TestPlayerPower(t *testing.T) {
	tests := []struct {
		name   string
		traits models.CommanderTraits
		want   float64
	}{
		{"zero", models.CommanderTraits{}, 0},
		{"initial", InitialTraits(), 75}, // 20 + 15 + 18 + 22
		{"weighted", models.CommanderTraits{Leadership: 10, RiskManagement: 20, CommunityBuilding: 30, EconomicStrategy: 40}, 192},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlayerPower(tt.traits); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PlayerPower = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnemyPower(t *testing.T) {
	tests := []struct {
		name string
		tvl  int64
		roll float64
		want float64
	}{
		{"no tvl min roll", 0, 0, 0},
		{"no tvl max roll", 0, 0.999, 49.95},
		{"tvl only", 1_000_000, 0, 100},
		{"tvl plus roll", 1_000_000, 0.5, 125},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EnemyPower(tt.tvl, tt.roll); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EnemyPower = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWinChance(t *testing.T) {
	tests := []struct {
		name        string
		playerPower float64
		enemyPower  float64
		want        float64
	}{
		{"even match", 100, 100, 0.5},
		{"floor", 0, 100, WinChanceFloor},
		{"hopeless still floored", 1, 10000, WinChanceFloor},
		{"ceiling", 10000, 1, WinChanceCeiling},
		{"unopposed capped", 100, 0, WinChanceCeiling},
		{"degenerate zero", 0, 0, 0.5},
		{"sixty forty", 60, 40, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WinChance(tt.playerPower, tt.enemyPower); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WinChance(%v, %v) = %v, want %v", tt.playerPower, tt.enemyPower, got, tt.want)
			}
		})
	}
}

func TestWinChance_AlwaysClamped(t *testing.T) {
	powers := []float64{0, 0.1, 1, 50, 1000, 1e9}
	for _, p := range powers {
		for _, e := range powers {
			got := WinChance(p, e)
			if got < WinChanceFloor || got > WinChanceCeiling {
				t.Errorf("WinChance(%v, %v) = %v, outside [%v, %v]", p, e, got, WinChanceFloor, WinChanceCeiling)
			}
		}
	}
}

func TestMinAttackGate(t *testing.T) {
	// Initial traits sum to 40, below the attack threshold; one mission's
	// worth of growth should not flip it, a serious build should.
	if InitialTraits().Sum() >= MinAttackTraitSum {
		t.Errorf("initial traits %d unexpectedly meet the attack threshold %d", InitialTraits().Sum(), MinAttackTraitSum)
	}
	ready := models.CommanderTraits{Leadership: 20, RiskManagement: 10, CommunityBuilding: 10, EconomicStrategy: 10}
	if ready.Sum() < MinAttackTraitSum {
		t.Errorf("traits summing to %d should meet the threshold %d", ready.Sum(), MinAttackTraitSum)
	}
}

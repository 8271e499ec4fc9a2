package services

import (
	"testing"
	"time"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 1.0},
		{3, 1.2},
		{4, 1.2},
		{5, 1.5},
		{6, 1.5},
		{7, 1.8},
		{9, 1.8},
		{10, 2.0},
		{1000, 2.0},
	}
	for _, tt := range tests {
		if got := Multiplier(tt.streak); got != tt.want {
			t.Errorf("Multiplier(%d) = %v, want %v", tt.streak, got, tt.want)
		}
	}
}

func TestComputeStreakBonus(t *testing.T) {
	tests := []struct {
		name        string
		streak      int
		baseXP      int64
		wantBonus   int64
		wantExtra   int64
		wantHas     bool
		wantMessage bool
	}{
		{"no streak", 0, 100, 100, 0, false, false},
		{"below bonus threshold", 3, 100, 120, 20, false, true},
		{"at threshold", 5, 100, 150, 50, true, true},
		{"week streak", 7, 100, 180, 80, true, true},
		{"capped multiplier", 30, 100, 200, 100, true, true},
		{"rounds down", 3, 25, 30, 5, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreakBonus(tt.streak, tt.baseXP)
			if got.BonusXP != tt.wantBonus {
				t.Errorf("BonusXP = %d, want %d", got.BonusXP, tt.wantBonus)
			}
			if got.ExtraXP != tt.wantExtra {
				t.Errorf("ExtraXP = %d, want %d", got.ExtraXP, tt.wantExtra)
			}
			if got.HasBonus != tt.wantHas {
				t.Errorf("HasBonus = %v, want %v", got.HasBonus, tt.wantHas)
			}
			if (got.Message != "") != tt.wantMessage {
				t.Errorf("Message = %q, want present=%v", got.Message, tt.wantMessage)
			}
			if got.BaseXP != tt.baseXP {
				t.Errorf("BaseXP = %d, want %d", got.BaseXP, tt.baseXP)
			}
		})
	}
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prevCount    int
		prevMax      int
		lastActivity time.Time
		want         StreakTransition
	}{
		{
			"first ever activity",
			0, 0, time.Time{},
			StreakTransition{Count: 1, MaxStreak: 1, WasReset: false, Extended: false},
		},
		{
			"inside window increments",
			4, 4, now.Add(-2 * time.Hour),
			StreakTransition{Count: 5, MaxStreak: 5, WasReset: false, Extended: true},
		},
		{
			"exactly at window edge increments",
			1, 3, now.Add(-24 * time.Hour),
			StreakTransition{Count: 2, MaxStreak: 3, WasReset: false, Extended: true},
		},
		{
			"outside window resets",
			7, 7, now.Add(-25 * time.Hour),
			StreakTransition{Count: 1, MaxStreak: 7, WasReset: true, Extended: false},
		},
		{
			"stale count of one still counts as reset",
			1, 1, now.Add(-48 * time.Hour),
			StreakTransition{Count: 1, MaxStreak: 1, WasReset: true, Extended: false},
		},
		{
			"max streak preserved across reset",
			12, 12, now.Add(-72 * time.Hour),
			StreakTransition{Count: 1, MaxStreak: 12, WasReset: true, Extended: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.prevCount, tt.prevMax, tt.lastActivity, now)
			if got != tt.want {
				t.Errorf("NextStreak = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStreakTransition_MilestoneHit(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Extending a 2-day streak to 3 fires the 3-day milestone.
	ext := NextStreak(2, 2, now.Add(-time.Hour), now)
	milestone, ok := ext.MilestoneHit()
	if !ok {
		t.Fatal("extension to 3 should fire the 3-day milestone")
	}
	if milestone.XP != 50 {
		t.Errorf("3-day milestone XP = %d, want 50", milestone.XP)
	}

	// Extending to a non-milestone count fires nothing.
	if _, ok := NextStreak(3, 3, now.Add(-time.Hour), now).MilestoneHit(); ok {
		t.Error("extension to 4 should not fire a milestone")
	}

	// A reset never fires a milestone, even at a milestone-adjacent count.
	if _, ok := NextStreak(9, 9, now.Add(-48*time.Hour), now).MilestoneHit(); ok {
		t.Error("reset should not fire a milestone")
	}

	// First-ever activity fires nothing either.
	if _, ok := NextStreak(0, 0, time.Time{}, now).MilestoneHit(); ok {
		t.Error("first activity should not fire a milestone")
	}
}

func TestComputeStreakBonus_NeverNegative(t *testing.T) {
	got := ComputeStreakBonus(2, 100)
	if got.ExtraXP != 0 || got.BonusXP != 100 {
		t.Errorf("streak below 3 must be neutral, got bonus=%d extra=%d", got.BonusXP, got.ExtraXP)
	}
}

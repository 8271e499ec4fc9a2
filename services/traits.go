package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"protocol-wars-engine/models"

	"gorm.io/gorm"
)

// TVL unit weights per trait point. TVL is always recomputed from the current
// traits, never adjusted independently.
const (
	TVLWeightLeadership        = 1000
	TVLWeightRiskManagement    = 500
	TVLWeightCommunityBuilding = 2000
	TVLWeightEconomicStrategy  = 800
)

// TVLWeights maps canonical trait keys to their TVL unit weights.
var TVLWeights = map[string]int64{
	models.TraitLeadership:        TVLWeightLeadership,
	models.TraitRiskManagement:    TVLWeightRiskManagement,
	models.TraitCommunityBuilding: TVLWeightCommunityBuilding,
	models.TraitEconomicStrategy:  TVLWeightEconomicStrategy,
}

// ClampTrait clamps a trait value to [0,100].
func ClampTrait(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ApplyDelta returns traits with delta applied and every touched value
// clamped. Keys absent from the delta are left unchanged; unknown keys are
// ignored.
func ApplyDelta(traits models.CommanderTraits, delta models.TraitDelta) models.CommanderTraits {
	out := traits
	for key, d := range delta {
		if !models.ValidTrait(key) {
			continue
		}
		out.Set(key, ClampTrait(out.Get(key)+d))
	}
	return out
}

// ComputeTVL converts traits into the derived value score.
func ComputeTVL(traits models.CommanderTraits) int64 {
	return int64(traits.Leadership)*TVLWeightLeadership +
		int64(traits.RiskManagement)*TVLWeightRiskManagement +
		int64(traits.CommunityBuilding)*TVLWeightCommunityBuilding +
		int64(traits.EconomicStrategy)*TVLWeightEconomicStrategy
}

// PlayerLevel derives a rough commander level from the trait average.
func PlayerLevel(traits models.CommanderTraits) int {
	avg := float64(traits.Sum()) / float64(len(models.TraitKeys))
	return int(math.Floor(avg/10)) + 1
}

// InitialTraits returns the starting trait block for a freshly initialized
// commander.
func InitialTraits() models.CommanderTraits {
	return models.CommanderTraits{
		Leadership:        10,
		RiskManagement:    10,
		CommunityBuilding: 10,
		EconomicStrategy:  10,
	}
}

// FallbackTraits is the safe default substituted when a profile read fails;
// the caller keeps playing against it rather than seeing an error.
func FallbackTraits() models.CommanderTraits {
	return models.CommanderTraits{
		Leadership:        15,
		RiskManagement:    10,
		CommunityBuilding: 20,
		EconomicStrategy:  12,
	}
}

type TraitService struct {
	DB     *gorm.DB
	Streak *StreakService
}

func NewTraitService(db *gorm.DB, streak *StreakService) *TraitService {
	return &TraitService{DB: db, Streak: streak}
}

// ErrPlayerNotFound signals an uninitialized player; callers decide whether
// to trigger the initialization flow.
var ErrPlayerNotFound = errors.New("player profile not found")

// InitializePlayer creates the profile with starting traits (idempotent).
func (s *TraitService) InitializePlayer(playerID string) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := s.DB.Where("external_player_id = ?", playerID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	initial := InitialTraits()
	profile = models.PlayerProfile{
		ExternalPlayerID: playerID,
		Energy:           EnergyCap,
	}
	profile.SetTraits(initial)
	profile.TVL = ComputeTVL(initial)
	if err := s.DB.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("create player profile: %w", err)
	}
	log.Printf("🎮 Initialized commander %s (TVL=%d)", playerID, profile.TVL)
	return &profile, nil
}

// GetProfile fetches the player profile. Returns ErrPlayerNotFound for
// uninitialized players.
func (s *TraitService) GetProfile(playerID string) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	err := s.DB.Where("external_player_id = ?", playerID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetPlayerTraits fetches current traits. On a store failure (not on a
// missing player) it falls back to the baseline demo traits so reads never
// propagate an error to the presentation layer.
func (s *TraitService) GetPlayerTraits(playerID string) (models.CommanderTraits, bool) {
	profile, err := s.GetProfile(playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return models.CommanderTraits{}, false
		}
		log.Printf("⚠️  Trait fetch failed for %s, using fallback: %v", playerID, err)
		return FallbackTraits(), true
	}
	return profile.Traits(), true
}

// UpdateTrait sets one trait to a streak-scaled value. The write, the TVL
// recompute and the streak touch happen in one transaction.
func (s *TraitService) UpdateTrait(playerID, trait string, value int) (*models.PlayerProfile, error) {
	if !models.ValidTrait(trait) {
		return nil, fmt.Errorf("invalid trait %q", trait)
	}
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("trait value must be between 0 and 100, got %d", value)
	}

	streak := s.Streak.GetStreak(playerID)
	scaled := ClampTrait(int(math.Floor(float64(value) * Multiplier(streak.StreakCount))))

	var updated *models.PlayerProfile
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.PlayerProfile
		if err := tx.Where("external_player_id = ?", playerID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		traits := profile.Traits()
		traits.Set(trait, scaled)
		profile.SetTraits(traits)
		profile.TVL = ComputeTVL(traits)
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		updated = &models.PlayerProfile{}
		*updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Qualifying activity: touch the streak after a successful write.
	if _, err := s.Streak.UpdateStreak(playerID); err != nil {
		log.Printf("⚠️  Streak update failed for %s: %v", playerID, err)
	}

	log.Printf("🎮 Trait updated: %s %s base=%d scaled=%d TVL=%d", playerID, trait, value, scaled, updated.TVL)
	return updated, nil
}

// applyTraitDeltaTx applies a trait delta to the profile inside an existing
// transaction and recomputes TVL. All mission and battle reward paths funnel
// through here so trait mutations stay a single read-modify-write.
func applyTraitDeltaTx(tx *gorm.DB, playerID string, delta models.TraitDelta) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	if err := tx.Where("external_player_id = ?", playerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	traits := ApplyDelta(profile.Traits(), delta)
	profile.SetTraits(traits)
	profile.TVL = ComputeTVL(traits)
	if err := tx.Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

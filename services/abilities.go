package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"protocol-wars-engine/models"

	"gorm.io/gorm"
)

// AvailableAbilities filters the catalog to abilities whose unlock trait
// requirement the player meets, sorted by id.
func AvailableAbilities(traits models.CommanderTraits) []models.AbilitySpec {
	var out []models.AbilitySpec
	for _, spec := range models.SpecialAbilities {
		if traits.Get(spec.RequiredTrait.Trait) >= spec.RequiredTrait.Level {
			out = append(out, spec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CanUseAbility checks an unlocked ability's gates: cooldown expired and
// every cost trait at or above its threshold. The unlock gate is separate —
// locked abilities are simply never offered.
func CanUseAbility(spec models.AbilitySpec, traits models.CommanderTraits, cooldownEnd, now time.Time) (bool, string) {
	if cooldownEnd.After(now) {
		return false, fmt.Sprintf("on cooldown for %s", cooldownEnd.Sub(now).Round(time.Second))
	}
	for trait, min := range spec.Cost {
		if traits.Get(trait) < min {
			return false, fmt.Sprintf("insufficient %s: have %d, need %d", trait, traits.Get(trait), min)
		}
	}
	return true, ""
}

// ErrAbilityLocked signals the player's traits do not meet the unlock gate.
var ErrAbilityLocked = errors.New("ability not unlocked")

// ErrAbilityUnavailable covers cooldown/cost failures on an unlocked ability.
var ErrAbilityUnavailable = errors.New("ability preconditions not met")

// ErrUnknownAbility signals an id missing from the ability catalog.
var ErrUnknownAbility = errors.New("unknown ability")

type AbilityService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewAbilityService(db *gorm.DB) *AbilityService {
	return &AbilityService{DB: db, now: time.Now}
}

// AbilityState is a catalog entry annotated with the player's runtime state.
type AbilityState struct {
	models.AbilitySpec
	CooldownRemaining time.Duration `json:"cooldown_remaining"`
	Active            bool          `json:"active"`
	ActiveUntil       *time.Time    `json:"active_until,omitempty"`
	CanUse            bool          `json:"can_use"`
	Reason            string        `json:"reason,omitempty"`
}

// AbilityStates lists the player's unlocked abilities with runtime state.
func (s *AbilityService) AbilityStates(playerID string) ([]AbilityState, error) {
	profile, err := s.profile(playerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	traits := profile.Traits()

	var rows []models.PlayerCooldown
	if err := s.DB.Where("external_player_id = ? AND kind = ?", playerID, models.CooldownKindAbility).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byRef := make(map[string]models.PlayerCooldown, len(rows))
	for _, row := range rows {
		byRef[row.RefID] = row
	}

	var out []AbilityState
	for _, spec := range AvailableAbilities(traits) {
		row := byRef[spec.ID]
		ok, reason := CanUseAbility(spec, traits, row.CooldownEnd, now)

		remaining := time.Duration(0)
		if row.CooldownEnd.After(now) {
			remaining = row.CooldownEnd.Sub(now)
		}
		active := row.ActiveEnd != nil && row.ActiveEnd.After(now)
		state := AbilityState{
			AbilitySpec:       spec,
			CooldownRemaining: remaining,
			Active:            active,
			CanUse:            ok,
			Reason:            reason,
		}
		if active {
			state.ActiveUntil = row.ActiveEnd
		}
		out = append(out, state)
	}
	return out, nil
}

// AbilityResult is returned from UseAbility; Effect is a descriptor for the
// caller to apply.
type AbilityResult struct {
	Ability     models.AbilitySpec     `json:"ability"`
	Effect      map[string]interface{} `json:"effect"`
	CooldownEnd time.Time              `json:"cooldown_end"`
	ActiveUntil *time.Time             `json:"active_until,omitempty"`
}

// UseAbility activates an ability: starts its cooldown and, for abilities
// with a duration, opens a persisted active window the scheduler sweeps.
func (s *AbilityService) UseAbility(playerID, abilityID string) (*AbilityResult, error) {
	spec, ok := models.SpecialAbilities[abilityID]
	if !ok {
		return nil, ErrUnknownAbility
	}

	var result AbilityResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.PlayerProfile
		if err := tx.Where("external_player_id = ?", playerID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		traits := profile.Traits()
		if traits.Get(spec.RequiredTrait.Trait) < spec.RequiredTrait.Level {
			return fmt.Errorf("%w: requires %s %d", ErrAbilityLocked, spec.RequiredTrait.Trait, spec.RequiredTrait.Level)
		}

		now := s.now()
		var cooldown models.PlayerCooldown
		err := tx.Where("external_player_id = ? AND kind = ? AND ref_id = ?",
			playerID, models.CooldownKindAbility, abilityID).First(&cooldown).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if ok, reason := CanUseAbility(spec, traits, cooldown.CooldownEnd, now); !ok {
			return fmt.Errorf("%w: %s", ErrAbilityUnavailable, reason)
		}

		cooldown.ExternalPlayerID = playerID
		cooldown.Kind = models.CooldownKindAbility
		cooldown.RefID = abilityID
		cooldown.CooldownEnd = now.Add(spec.Cooldown)
		cooldown.ActiveStart = nil
		cooldown.ActiveEnd = nil
		if spec.Duration > 0 {
			end := now.Add(spec.Duration)
			cooldown.ActiveStart = &now
			cooldown.ActiveEnd = &end
		}
		if err := tx.Save(&cooldown).Error; err != nil {
			return err
		}

		note := models.Notification{
			ExternalPlayerID: playerID,
			Kind:             models.NotificationAbilityUsed,
			Title:            spec.Name,
			Message:          fmt.Sprintf("%s activated!", spec.Name),
			Payload: map[string]interface{}{
				"ability_id": abilityID,
				"effect":     spec.Effect,
			},
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		result = AbilityResult{
			Ability:     spec,
			Effect:      spec.Effect,
			CooldownEnd: cooldown.CooldownEnd,
			ActiveUntil: cooldown.ActiveEnd,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🌟 %s activated %s", playerID, spec.Name)
	return &result, nil
}

// SweepExpired clears active windows whose end has passed. Runs on the
// engine scheduler at least once per second.
func (s *AbilityService) SweepExpired() {
	now := s.now()
	res := s.DB.Model(&models.PlayerCooldown{}).
		Where("kind = ? AND active_end IS NOT NULL AND active_end <= ?", models.CooldownKindAbility, now).
		Updates(map[string]interface{}{"active_start": nil, "active_end": nil})
	if res.Error != nil {
		log.Printf("[Scheduler] Ability sweep error: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("⏳ %d ability window(s) expired", res.RowsAffected)
	}
}

func (s *AbilityService) profile(playerID string) (*models.PlayerProfile, error) {
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

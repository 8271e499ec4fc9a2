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

// Energy regenerates at +1 per 2 seconds up to the cap, independent of any
// action. Regen is computed from elapsed wall-clock, not counted ticks.
const (
	EnergyCap         = 100
	EnergyRegenPeriod = 2 * time.Second
)

// CurrentEnergy returns the effective energy at `now` given the last persisted
// value and its anchor timestamp.
func CurrentEnergy(stored int, updatedAt, now time.Time) int {
	if stored >= EnergyCap {
		return EnergyCap
	}
	elapsed := now.Sub(updatedAt)
	if elapsed <= 0 {
		return stored
	}
	regen := int(elapsed / EnergyRegenPeriod)
	if stored+regen > EnergyCap {
		return EnergyCap
	}
	return stored + regen
}

// CanPerform checks an action's gates: cooldown expired, enough energy, and
// every non-energy cost trait at or above its threshold. Returns the first
// failing reason.
func CanPerform(spec models.ActionSpec, energy int, traits models.CommanderTraits, cooldownEnd, now time.Time) (bool, string) {
	if cooldownEnd.After(now) {
		return false, fmt.Sprintf("on cooldown for %s", cooldownEnd.Sub(now).Round(time.Second))
	}
	if energy < spec.EnergyCost() {
		return false, fmt.Sprintf("insufficient energy: have %d, need %d", energy, spec.EnergyCost())
	}
	for trait, min := range spec.Cost {
		if trait == "energy" {
			continue
		}
		if traits.Get(trait) < min {
			return false, fmt.Sprintf("insufficient %s: have %d, need %d", trait, traits.Get(trait), min)
		}
	}
	return true, ""
}

// ErrActionUnavailable covers action precondition failures (cooldown, energy,
// trait thresholds).
var ErrActionUnavailable = errors.New("action preconditions not met")

// ErrUnknownAction signals an id missing from the action catalog.
var ErrUnknownAction = errors.New("unknown action")

type ActionService struct {
	DB  *gorm.DB
	RNG *RNG

	now func() time.Time
}

func NewActionService(db *gorm.DB, rng *RNG) *ActionService {
	return &ActionService{DB: db, RNG: rng, now: time.Now}
}

// ActionState is a catalog entry annotated with the player's runtime state.
type ActionState struct {
	models.ActionSpec
	CooldownRemaining time.Duration `json:"cooldown_remaining"`
	CanPerform        bool          `json:"can_perform"`
	Reason            string        `json:"reason,omitempty"`
}

// ActionStates lists every action with cooldown/eligibility for the player,
// sorted by id for stable output.
func (s *ActionService) ActionStates(playerID string) ([]ActionState, int, error) {
	profile, err := s.profile(playerID)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	energy := CurrentEnergy(profile.Energy, profile.EnergyUpdatedAt, now)
	cooldowns := s.cooldowns(playerID, models.CooldownKindAction)

	out := make([]ActionState, 0, len(models.ProtocolActions))
	for _, spec := range models.ProtocolActions {
		end := cooldowns[spec.ID]
		ok, reason := CanPerform(spec, energy, profile.Traits(), end, now)
		remaining := time.Duration(0)
		if end.After(now) {
			remaining = end.Sub(now)
		}
		out = append(out, ActionState{
			ActionSpec:        spec,
			CooldownRemaining: remaining,
			CanPerform:        ok,
			Reason:            reason,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, energy, nil
}

// ActionResult is the engine's full answer to a performed action. The outcome
// payload is a descriptor for the caller to apply; nothing here mutates trait
// state.
type ActionResult struct {
	Action          models.ActionSpec    `json:"action"`
	TargetProtocol  string               `json:"target_protocol"`
	Success         bool                 `json:"success"`
	Outcome         models.ActionOutcome `json:"outcome"`
	EnergyRemaining int                  `json:"energy_remaining"`
	CooldownEnd     time.Time            `json:"cooldown_end"`
}

// PerformAction deducts energy, starts the cooldown, rolls success against
// the action's rate, and emits the fixed success/failure payload.
func (s *ActionService) PerformAction(playerID, actionID, targetProtocolID string) (*ActionResult, error) {
	spec, ok := models.ProtocolActions[actionID]
	if !ok {
		return nil, ErrUnknownAction
	}

	var result ActionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.PlayerProfile
		if err := tx.Where("external_player_id = ?", playerID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		var target models.Protocol
		if err := tx.First(&target, "id = ?", targetProtocolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProtocolNotFound
			}
			return err
		}

		now := s.now()
		energy := CurrentEnergy(profile.Energy, profile.EnergyUpdatedAt, now)

		var cooldown models.PlayerCooldown
		err := tx.Where("external_player_id = ? AND kind = ? AND ref_id = ?",
			playerID, models.CooldownKindAction, actionID).First(&cooldown).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if ok, reason := CanPerform(spec, energy, profile.Traits(), cooldown.CooldownEnd, now); !ok {
			return fmt.Errorf("%w: %s", ErrActionUnavailable, reason)
		}

		profile.Energy = energy - spec.EnergyCost()
		profile.EnergyUpdatedAt = now
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}

		cooldown.ExternalPlayerID = playerID
		cooldown.Kind = models.CooldownKindAction
		cooldown.RefID = actionID
		cooldown.CooldownEnd = now.Add(spec.Cooldown)
		if err := tx.Save(&cooldown).Error; err != nil {
			return err
		}

		success := s.RNG.Float64() < spec.SuccessRate
		outcome := models.ActionFailureOutcomes[actionID]
		if success {
			outcome = models.ActionSuccessOutcomes[actionID]
		}

		note := models.Notification{
			ExternalPlayerID: playerID,
			Kind:             models.NotificationActionResult,
			Title:            outcome.Title,
			Message:          outcome.Message,
			Payload: map[string]interface{}{
				"action_id":   actionID,
				"protocol_id": target.ID,
				"success":     success,
				"effects":     outcome.Effects,
			},
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		result = ActionResult{
			Action:          spec,
			TargetProtocol:  target.ID,
			Success:         success,
			Outcome:         outcome,
			EnergyRemaining: profile.Energy,
			CooldownEnd:     cooldown.CooldownEnd,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎯 %s performed %s on %s: success=%t", playerID, actionID, targetProtocolID, result.Success)
	return &result, nil
}

// PersistEnergy folds elapsed regen into the stored energy values so the
// anchor timestamps stay recent. Reads stay correct either way; this just
// keeps the persisted numbers honest across restarts.
func (s *ActionService) PersistEnergy() {
	now := s.now()
	var profiles []models.PlayerProfile
	if err := s.DB.Where("energy < ?", EnergyCap).Find(&profiles).Error; err != nil {
		log.Printf("[Scheduler] Energy sweep error: %v", err)
		return
	}
	for _, p := range profiles {
		energy := CurrentEnergy(p.Energy, p.EnergyUpdatedAt, now)
		if energy == p.Energy {
			continue
		}
		p.Energy = energy
		p.EnergyUpdatedAt = now
		if err := s.DB.Save(&p).Error; err != nil {
			log.Printf("[Scheduler] Energy save error for %s: %v", p.ExternalPlayerID, err)
		}
	}
}

func (s *ActionService) cooldowns(playerID, kind string) map[string]time.Time {
	var rows []models.PlayerCooldown
	if err := s.DB.Where("external_player_id = ? AND kind = ?", playerID, kind).Find(&rows).Error; err != nil {
		log.Printf("⚠️  Cooldown fetch failed for %s: %v", playerID, err)
		return nil
	}
	out := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		out[row.RefID] = row.CooldownEnd
	}
	return out
}

func (s *ActionService) profile(playerID string) (*models.PlayerProfile, error) {
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

package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"protocol-wars-engine/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MissionBaseXP is the base XP awarded for completing any mission, before the
// streak multiplier.
const MissionBaseXP = 100

// AvailableTemplates filters the catalog to templates the player qualifies
// for: level gate plus the rarity trait-sum gate.
func AvailableTemplates(traits models.CommanderTraits, playerLevel int) []models.MissionTemplate {
	sum := traits.Sum()
	var out []models.MissionTemplate
	for _, tpl := range models.MissionTemplates {
		if playerLevel < tpl.MinLevel {
			continue
		}
		if sum < models.RarityTraitSumGate[tpl.Rarity] {
			continue
		}
		out = append(out, tpl)
	}
	return out
}

// MissionDifficulty resolves a template's effective difficulty for a player.
// Higher average traits strictly reduce difficulty, floored at 0.3x base.
// Returns ok=false when a per-mission required-trait gate is unmet; that gate
// is checked independently of the rarity trait-sum gate.
func MissionDifficulty(traits models.CommanderTraits, baseDifficulty int, required models.TraitDelta) (int, bool) {
	for trait, min := range required {
		if traits.Get(trait) < min {
			return 0, false
		}
	}
	avg := float64(traits.Sum()) / float64(len(models.TraitKeys))
	modifier := math.Max(0.3, 1-avg/100)
	return int(math.Round(float64(baseDifficulty) * modifier)), true
}

// missionRewardMultiplier combines difficulty, player level and rarity.
func missionRewardMultiplier(difficulty, playerLevel int, rarity string) float64 {
	return math.Max(0.5, float64(difficulty)/50) *
		(1 + float64(playerLevel)*0.1) *
		models.RarityRewardMultiplier[rarity]
}

// TVLBonus converts a trait reward delta into its TVL value.
func TVLBonus(rewards models.TraitDelta) int64 {
	var bonus int64
	for trait, value := range rewards {
		bonus += int64(value) * TVLWeights[trait]
	}
	return bonus
}

var rewardClauseRe = regexp.MustCompile(`\+(\d+)\s+(.+)`)

// rewardNameToKey maps the human-readable trait names used in reward strings
// back to canonical keys.
var rewardNameToKey = map[string]string{
	"leadership":         models.TraitLeadership,
	"risk management":    models.TraitRiskManagement,
	"community building": models.TraitCommunityBuilding,
	"economic strategy":  models.TraitEconomicStrategy,
}

// ParseTraitRewards parses a reward string like
// "+2 Risk Management, +1 Leadership" into a trait delta. Clauses with
// unrecognized trait names are skipped, never fatal.
func ParseTraitRewards(reward string) models.TraitDelta {
	rewards := models.TraitDelta{}
	for _, part := range strings.Split(reward, ",") {
		m := rewardClauseRe.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		key, ok := rewardNameToKey[strings.ToLower(strings.TrimSpace(m[2]))]
		if !ok {
			continue
		}
		rewards[key] += value
	}
	return rewards
}

var titleCaser = cases.Title(language.English)

// TraitDisplayName renders a canonical trait key for reward strings
// ("riskManagement" -> "Risk Management").
func TraitDisplayName(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return titleCaser.String(b.String())
}

// FormatRewardString renders a trait delta as the display reward string, in
// canonical trait order so output is stable.
func FormatRewardString(rewards models.TraitDelta) string {
	var parts []string
	for _, key := range models.TraitKeys {
		if v, ok := rewards[key]; ok && v != 0 {
			parts = append(parts, fmt.Sprintf("+%d %s", v, TraitDisplayName(key)))
		}
	}
	return strings.Join(parts, ", ")
}

type MissionService struct {
	DB     *gorm.DB
	Traits *TraitService
	Streak *StreakService
	RNG    *RNG

	now func() time.Time
}

func NewMissionService(db *gorm.DB, traits *TraitService, streak *StreakService, rng *RNG) *MissionService {
	return &MissionService{DB: db, Traits: traits, Streak: streak, RNG: rng, now: time.Now}
}

// GenerateMission draws one mission for the player. Falls back to the fixed
// foundation mission when no template qualifies; returns nil when the drawn
// template's required-trait gate is unmet (the set generator retries).
func (s *MissionService) GenerateMission(traits models.CommanderTraits, playerLevel int) *models.Mission {
	available := AvailableTemplates(traits, playerLevel)
	if len(available) == 0 {
		return FallbackMission()
	}

	tpl := s.pickWeighted(available)
	difficulty, ok := MissionDifficulty(traits, tpl.BaseDifficulty, tpl.RequiredTraits)
	if !ok {
		return nil
	}

	mult := missionRewardMultiplier(difficulty, playerLevel, tpl.Rarity)
	scaled := models.TraitDelta{}
	for trait, base := range tpl.BaseReward {
		scaled[trait] = int(math.Round(float64(base) * mult))
	}

	return &models.Mission{
		Title:          tpl.Title,
		Description:    tpl.Description,
		Category:       tpl.Category,
		Rarity:         tpl.Rarity,
		PrimaryTrait:   tpl.PrimaryTrait,
		SecondaryTrait: tpl.SecondaryTrait,
		Reward:         FormatRewardString(scaled),
		Rewards:        datatypes.NewJSONType(scaled),
		TVLBonus:       TVLBonus(scaled),
		Difficulty:     difficulty,
		DurationSec:    int(math.Round(float64(tpl.BaseDuration) * (1 + float64(difficulty)/200))),
		Status:         models.MissionStatusAvailable,
	}
}

// pickWeighted draws a template using the rarity selection weights.
func (s *MissionService) pickWeighted(templates []models.MissionTemplate) models.MissionTemplate {
	total := 0
	for _, tpl := range templates {
		total += models.RaritySelectionWeight[tpl.Rarity]
	}
	draw := s.RNG.Intn(total)
	for _, tpl := range templates {
		draw -= models.RaritySelectionWeight[tpl.Rarity]
		if draw < 0 {
			return tpl
		}
	}
	return templates[len(templates)-1]
}

// FallbackMission is the deterministic low-reward mission handed out when no
// catalog template qualifies.
func FallbackMission() *models.Mission {
	rewards := models.TraitDelta{models.TraitLeadership: 1, models.TraitRiskManagement: 1}
	return &models.Mission{
		Title:          "Protocol Foundation",
		Description:    "Build the basic foundations of your DeFi protocol",
		Category:       "foundation",
		Rarity:         models.RarityCommon,
		PrimaryTrait:   models.TraitLeadership,
		SecondaryTrait: models.TraitRiskManagement,
		Reward:         FormatRewardString(rewards),
		Rewards:        datatypes.NewJSONType(rewards),
		TVLBonus:       TVLBonus(rewards),
		Difficulty:     30,
		DurationSec:    30,
		Status:         models.MissionStatusAvailable,
	}
}

// GenerateMissionDrafts builds count missions, retrying up to 10 draws per
// slot to avoid duplicate titles; a duplicate is accepted once retries are
// exhausted rather than failing the batch.
func (s *MissionService) GenerateMissionDrafts(traits models.CommanderTraits, playerLevel, count int) []*models.Mission {
	missions := make([]*models.Mission, 0, count)
	used := make(map[string]bool)

	for i := 0; i < count; i++ {
		var mission *models.Mission
		for attempts := 0; attempts < 10; attempts++ {
			mission = s.GenerateMission(traits, playerLevel)
			if mission != nil && !used[mission.Title] {
				break
			}
		}
		if mission == nil {
			continue
		}
		used[mission.Title] = true
		missions = append(missions, mission)
	}
	return missions
}

// GenerateMissionSet persists a fresh batch of missions for the player.
func (s *MissionService) GenerateMissionSet(playerID string, count int) ([]*models.Mission, error) {
	traits, ok := s.Traits.GetPlayerTraits(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}

	drafts := s.GenerateMissionDrafts(traits, PlayerLevel(traits), count)
	for _, m := range drafts {
		m.ExternalPlayerID = playerID
		if err := s.DB.Create(m).Error; err != nil {
			return nil, fmt.Errorf("create mission: %w", err)
		}
	}
	log.Printf("🗺️  Generated %d mission(s) for %s", len(drafts), playerID)
	return drafts, nil
}

// ActiveMission is a mission enhanced with the player's current streak bonus
// preview.
type ActiveMission struct {
	models.Mission
	BaseRewards      models.TraitDelta `json:"base_rewards"`
	BonusRewards     models.TraitDelta `json:"bonus_rewards"`
	StreakMultiplier float64           `json:"streak_multiplier"`
	StreakCount      int               `json:"streak_count"`
	PotentialBonus   bool              `json:"potential_bonus"`
	SecondsRemaining int               `json:"seconds_remaining"`
}

// GetActiveMissions returns all non-completed missions, each annotated with
// the streak-scaled reward preview. A store failure yields an empty list.
func (s *MissionService) GetActiveMissions(playerID string) []ActiveMission {
	var missions []models.Mission
	err := s.DB.Where("external_player_id = ? AND status <> ?", playerID, models.MissionStatusCompleted).
		Order("created_at DESC").
		Find(&missions).Error
	if err != nil {
		log.Printf("⚠️  Mission fetch failed for %s: %v", playerID, err)
		return nil
	}

	streak := s.Streak.GetStreak(playerID)
	now := s.now()

	out := make([]ActiveMission, 0, len(missions))
	for _, m := range missions {
		base := m.Rewards.Data()
		bonus := models.TraitDelta{}
		for trait, value := range base {
			bonus[trait] = int(math.Floor(float64(value) * streak.Multiplier))
		}

		remaining := 0
		if m.Status == models.MissionStatusInProgress && m.EndsAt != nil {
			remaining = int(m.EndsAt.Sub(now).Seconds())
			if remaining < 0 {
				remaining = 0
			}
		}

		out = append(out, ActiveMission{
			Mission:          m,
			BaseRewards:      base,
			BonusRewards:     bonus,
			StreakMultiplier: streak.Multiplier,
			StreakCount:      streak.StreakCount,
			PotentialBonus:   streak.Multiplier > 1,
			SecondsRemaining: remaining,
		})
	}
	return out
}

// ErrMissionState signals a lifecycle transition attempted from the wrong
// state (e.g. completing a mission whose countdown is still running).
var ErrMissionState = errors.New("mission is not in a valid state for this transition")

// ErrMissionNotFound signals an unknown mission id for this player.
var ErrMissionNotFound = errors.New("mission not found")

// StartMission moves an available mission into its countdown.
func (s *MissionService) StartMission(playerID, missionID string) (*models.Mission, error) {
	var mission models.Mission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND external_player_id = ?", missionID, playerID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissionNotFound
			}
			return err
		}
		if mission.Status != models.MissionStatusAvailable {
			return fmt.Errorf("%w: status=%s", ErrMissionState, mission.Status)
		}

		now := s.now()
		ends := now.Add(time.Duration(mission.DurationSec) * time.Second)
		mission.Status = models.MissionStatusInProgress
		mission.StartedAt = &now
		mission.EndsAt = &ends
		return tx.Save(&mission).Error
	})
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// CompletionResult is returned from CompleteMission.
type CompletionResult struct {
	Mission     models.Mission          `json:"mission"`
	Rewards     models.TraitDelta       `json:"rewards"`
	NewTraits   models.CommanderTraits  `json:"new_traits"`
	NewTVL      int64                   `json:"new_tvl"`
	StreakBonus StreakBonus             `json:"streak_bonus"`
	TotalXP     int64                   `json:"total_xp"`
}

// CompleteMission claims a finished mission: parses its reward string,
// applies the trait delta and TVL recompute atomically, credits streak-scaled
// XP, marks the mission completed, and queues a reward notification.
func (s *MissionService) CompleteMission(playerID, missionID string) (*CompletionResult, error) {
	bonus := s.Streak.ApplyStreakBonus(playerID, MissionBaseXP)

	var result CompletionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ? AND external_player_id = ?", missionID, playerID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMissionNotFound
			}
			return err
		}
		if mission.Status != models.MissionStatusClaimable {
			return fmt.Errorf("%w: status=%s", ErrMissionState, mission.Status)
		}

		rewards := ParseTraitRewards(mission.Reward)
		profile, err := applyTraitDeltaTx(tx, playerID, rewards)
		if err != nil {
			return err
		}

		profile.TotalMissions++
		profile.TotalXP += bonus.BonusXP
		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		mission.Status = models.MissionStatusCompleted
		mission.Completed = true
		mission.Progress = 100
		if err := tx.Save(&mission).Error; err != nil {
			return err
		}

		note := models.Notification{
			ExternalPlayerID: playerID,
			Kind:             models.NotificationMissionReward,
			Title:            "Mission Complete",
			Message: fmt.Sprintf("%s complete! Gained %d XP (%d streak bonus)",
				mission.Title, bonus.BonusXP, bonus.ExtraXP),
			Payload: map[string]interface{}{
				"mission_id": mission.ID,
				"reward":     mission.Reward,
				"tvl_bonus":  mission.TVLBonus,
			},
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		result = CompletionResult{
			Mission:     mission,
			Rewards:     rewards,
			NewTraits:   profile.Traits(),
			NewTVL:      profile.TVL,
			StreakBonus: bonus,
			TotalXP:     bonus.BonusXP,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Completing a mission is a qualifying activity for the streak.
	if _, err := s.Streak.UpdateStreak(playerID); err != nil {
		log.Printf("⚠️  Streak update failed for %s: %v", playerID, err)
	}

	log.Printf("✅ Mission %s completed by %s (+%d XP)", result.Mission.Title, playerID, result.TotalXP)
	return &result, nil
}

// SweepCountdowns flips in-progress missions whose countdowns have elapsed to
// claimable. Called by the engine scheduler; missions never auto-complete.
func (s *MissionService) SweepCountdowns() {
	now := s.now()
	res := s.DB.Model(&models.Mission{}).
		Where("status = ? AND ends_at <= ?", models.MissionStatusInProgress, now).
		Updates(map[string]interface{}{"status": models.MissionStatusClaimable, "progress": 100})
	if res.Error != nil {
		log.Printf("[Scheduler] Mission sweep error: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("⏱️  %d mission(s) became claimable", res.RowsAffected)
	}
}


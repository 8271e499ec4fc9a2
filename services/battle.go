package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"protocol-wars-engine/models"
	"protocol-wars-engine/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MinAttackTraitSum is the minimum total trait sum required to attack.
const MinAttackTraitSum = 50

// BattleVictoryXP is the base XP for capturing a protocol, before the streak
// multiplier.
const BattleVictoryXP = 50

// Win chance is always clamped so either side keeps at least a 10% chance.
const (
	WinChanceFloor   = 0.1
	WinChanceCeiling = 0.9
)

// PlayerPower computes attack power from commander traits.
func PlayerPower(traits models.CommanderTraits) float64 {
	return float64(traits.Leadership)*2 +
		float64(traits.RiskManagement)*1.5 +
		float64(traits.CommunityBuilding)*1.8 +
		float64(traits.EconomicStrategy)*2.2
}

// EnemyPower derives defender power from TVL plus a uniform roll in [0,50).
// roll must be in [0,1).
func EnemyPower(tvl int64, roll float64) float64 {
	return float64(tvl)/10000 + roll*50
}

// WinChance converts the power matchup into the player's victory probability,
// clamped to [0.1, 0.9].
func WinChance(playerPower, enemyPower float64) float64 {
	total := playerPower + enemyPower
	if total <= 0 {
		return 0.5
	}
	chance := playerPower / total
	return math.Max(WinChanceFloor, math.Min(WinChanceCeiling, chance))
}

// ErrBattleIneligible covers all attack precondition failures: protocol
// already owned or trait sum below the minimum threshold.
var ErrBattleIneligible = errors.New("battle preconditions not met")

// ErrProtocolNotFound signals an unknown battle target.
var ErrProtocolNotFound = errors.New("protocol not found")

type BattleService struct {
	DB      *gorm.DB
	Streak  *StreakService
	RNG     *RNG
	Archive *utils.ReportArchive // nil disables battle-report archival

	now func() time.Time
}

func NewBattleService(db *gorm.DB, streak *StreakService, rng *RNG, archive *utils.ReportArchive) *BattleService {
	return &BattleService{DB: db, Streak: streak, RNG: rng, Archive: archive, now: time.Now}
}

// BattleOdds is the pre-battle analysis shown before committing to an attack.
type BattleOdds struct {
	PlayerPower     int     `json:"player_power"`
	EnemyPower      int     `json:"enemy_power"`
	PlayerWinChance float64 `json:"player_win_chance"`
	CanAttack       bool    `json:"can_attack"`
	Reason          string  `json:"reason,omitempty"`
}

// CalculateOdds previews the matchup against a protocol. The enemy roll drawn
// here is a preview only; ExecuteBattle draws its own.
func (s *BattleService) CalculateOdds(playerID, protocolID string) (*BattleOdds, error) {
	var protocol models.Protocol
	if err := s.DB.First(&protocol, "id = ?", protocolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, err
	}

	profile, err := s.profile(playerID)
	if err != nil {
		return nil, err
	}

	traits := profile.Traits()
	playerPower := PlayerPower(traits)
	enemyPower := EnemyPower(protocol.TVL, s.RNG.Float64())

	odds := &BattleOdds{
		PlayerPower:     int(math.Round(playerPower)),
		EnemyPower:      int(math.Round(enemyPower)),
		PlayerWinChance: WinChance(playerPower, enemyPower),
		CanAttack:       true,
	}
	switch {
	case protocol.PlayerOwned:
		odds.CanAttack = false
		odds.Reason = "protocol already controlled"
	case traits.Sum() < MinAttackTraitSum:
		odds.CanAttack = false
		odds.Reason = fmt.Sprintf("trait sum %d below minimum %d", traits.Sum(), MinAttackTraitSum)
	}
	return odds, nil
}

// ExecuteBattle resolves a battle with a single stochastic draw, applies the
// reward or penalty delta atomically, and persists the battle record. On
// victory the target protocol's ownership flips to the player.
func (s *BattleService) ExecuteBattle(playerID, protocolID string) (*models.BattleReport, error) {
	var report models.BattleReport
	bonus := s.Streak.ApplyStreakBonus(playerID, BattleVictoryXP)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var protocol models.Protocol
		if err := tx.First(&protocol, "id = ?", protocolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProtocolNotFound
			}
			return err
		}

		var profile models.PlayerProfile
		if err := tx.Where("external_player_id = ?", playerID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlayerNotFound
			}
			return err
		}

		traits := profile.Traits()
		if protocol.PlayerOwned {
			return fmt.Errorf("%w: protocol already controlled", ErrBattleIneligible)
		}
		if traits.Sum() < MinAttackTraitSum {
			return fmt.Errorf("%w: trait sum %d below minimum %d", ErrBattleIneligible, traits.Sum(), MinAttackTraitSum)
		}

		playerPower := PlayerPower(traits)
		enemyPower := EnemyPower(protocol.TVL, s.RNG.Float64())
		winChance := WinChance(playerPower, enemyPower)

		// The entire stochastic outcome: one draw, no sub-rolls.
		victory := s.RNG.Float64() < winChance

		record := models.BattleRecord{
			ID:               uuid.NewString(),
			ExternalPlayerID: playerID,
			ProtocolID:       protocol.ID,
			PlayerPower:      int(math.Round(playerPower)),
			EnemyPower:       int(math.Round(enemyPower)),
			WinChance:        winChance,
		}

		var delta models.TraitDelta
		if victory {
			record.Result = models.BattleResultVictory
			record.TVLDelta = int64(math.Round(float64(protocol.TVL) * 0.3))
			record.XPEarned = bonus.BonusXP
			delta = models.TraitDelta{
				models.TraitLeadership:       s.RNG.Intn(3) + 1,
				models.TraitRiskManagement:   s.RNG.Intn(2) + 1,
				models.TraitEconomicStrategy: s.RNG.Intn(4) + 2,
			}

			protocol.PlayerOwned = true
			protocol.OwnerID = &playerID
			if err := tx.Save(&protocol).Error; err != nil {
				return err
			}
		} else {
			record.Result = models.BattleResultDefeat
			record.TVLDelta = -int64(math.Round(float64(profile.TVL) * 0.1))
			delta = models.TraitDelta{
				models.TraitLeadership:     -1,
				models.TraitRiskManagement: -1,
			}
		}
		record.TraitDelta = datatypes.NewJSONType(delta)

		updated, err := applyTraitDeltaTx(tx, playerID, delta)
		if err != nil {
			return err
		}
		updated.TotalBattles++
		if victory {
			updated.BattlesWon++
			updated.TotalXP += bonus.BonusXP
		}
		if err := tx.Save(updated).Error; err != nil {
			return err
		}

		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		title := "💥 DEFEAT! Retreat and regroup!"
		if victory {
			title = "🎉 VICTORY! Protocol captured!"
		}
		note := models.Notification{
			ExternalPlayerID: playerID,
			Kind:             models.NotificationBattleResult,
			Title:            title,
			Message:          fmt.Sprintf("Battle against %s: %s", protocol.Name, record.Result),
			Payload: map[string]interface{}{
				"protocol_id": protocol.ID,
				"result":      record.Result,
				"tvl_delta":   record.TVLDelta,
				"win_chance":  winChance,
			},
		}
		if err := tx.Create(&note).Error; err != nil {
			return err
		}

		report = models.BattleReport{
			Record:    record,
			Protocol:  protocol,
			PhaseLog:  append(append([]string{}, models.BattlePhases...), title),
			NewTraits: updated.Traits(),
			NewTVL:    updated.TVL,
			Captured:  victory,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Captured {
		if _, err := s.Streak.UpdateStreak(playerID); err != nil {
			log.Printf("⚠️  Streak update failed for %s: %v", playerID, err)
		}
	}

	if s.Archive != nil {
		go func(r models.BattleReport) {
			if err := s.Archive.StoreBattleReport(r.Record.ExternalPlayerID, r); err != nil {
				log.Printf("⚠️  Battle report archive failed: %v", err)
			}
		}(report)
	}

	log.Printf("⚔️  Battle %s vs %s: %s (chance=%.2f)", playerID, protocolID, report.Record.Result, report.Record.WinChance)
	return &report, nil
}

// RecentBattles returns the player's latest battle records.
func (s *BattleService) RecentBattles(playerID string, limit int) ([]models.BattleRecord, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var records []models.BattleRecord
	err := s.DB.Where("external_player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *BattleService) profile(playerID string) (*models.PlayerProfile, error) {
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

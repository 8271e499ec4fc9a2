// services/protocols.go
package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"protocol-wars-engine/models"
)

type ProtocolService struct {
	DB *gorm.DB
}

func NewProtocolService(db *gorm.DB) *ProtocolService {
	return &ProtocolService{DB: db}
}

// SeedIfEmpty inserts the initial protocol registry on first boot. IDs are
// slugs of the protocol name so they stay stable across environments.
func (s *ProtocolService) SeedIfEmpty() error {
	var count int64
	if err := s.DB.Model(&models.Protocol{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count protocols: %w", err)
	}
	if count > 0 {
		return nil
	}

	protocols := make([]models.Protocol, len(models.SeedProtocols))
	copy(protocols, models.SeedProtocols)
	for i := range protocols {
		protocols[i].ID = slug.Make(protocols[i].Name)
	}

	if err := s.DB.Create(&protocols).Error; err != nil {
		return fmt.Errorf("failed to seed protocols: %w", err)
	}
	log.Printf("🌱 Seeded %d protocols", len(protocols))
	return nil
}

// List returns every protocol on the grid, largest TVL first. When
// protocolType is non-empty the result is filtered to that category.
func (s *ProtocolService) List(protocolType string) ([]models.Protocol, error) {
	q := s.DB.Order("tvl DESC")
	if protocolType != "" {
		q = q.Where("type = ?", protocolType)
	}

	var protocols []models.Protocol
	if err := q.Find(&protocols).Error; err != nil {
		return nil, fmt.Errorf("failed to list protocols: %w", err)
	}
	return protocols, nil
}

// Get returns a single protocol by its slug ID.
func (s *ProtocolService) Get(id string) (*models.Protocol, error) {
	var protocol models.Protocol
	if err := s.DB.First(&protocol, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProtocolNotFound
		}
		return nil, fmt.Errorf("failed to load protocol: %w", err)
	}
	return &protocol, nil
}

// OwnedBy returns the protocols a player has captured.
func (s *ProtocolService) OwnedBy(playerID string) ([]models.Protocol, error) {
	var protocols []models.Protocol
	err := s.DB.Where("player_owned = ? AND owner_id = ?", true, playerID).
		Order("tvl DESC").Find(&protocols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list captured protocols: %w", err)
	}
	return protocols, nil
}

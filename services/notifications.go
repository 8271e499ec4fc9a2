// services/notifications.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"protocol-wars-engine/models"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

var ErrNotificationNotFound = errors.New("notification not found")

// List returns the player's notifications, newest first. When unviewedOnly
// is set, already-seen entries are skipped.
func (s *NotificationService) List(playerID string, unviewedOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := s.DB.Where("external_player_id = ?", playerID)
	if unviewedOnly {
		q = q.Where("viewed = ?", false)
	}

	var notes []models.Notification
	if err := q.Order("created_at DESC").Limit(limit).Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notes, nil
}

// MarkViewed flags a single notification as seen.
func (s *NotificationService) MarkViewed(playerID, notificationID string) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND external_player_id = ?", notificationID, playerID).
		Update("viewed", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark notification viewed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// MarkAllViewed flags every unseen notification for the player.
func (s *NotificationService) MarkAllViewed(playerID string) (int64, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("external_player_id = ? AND viewed = ?", playerID, false).
		Update("viewed", true)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications viewed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

package repository

import (
	"time"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository is the data access layer for notifications.
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

// Add writes a notification, superseding any prior one of the same
// name for the same user. The delete and the insert share one
// transaction (a savepoint when the repository is already bound to
// one), so a reader never observes zero or two live rows for a
// (user, name) pair.
func (r *NotificationRepository) Add(userID uint, name string, payload models.JSONMap) (*models.Notification, error) {
	n := &models.Notification{
		Name:      name,
		UserID:    userID,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Payload:   payload,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND name = ?", userID, name).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Create(n).Error
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListByUserID returns a user's notifications with timestamp greater
// than since, in chronological order.
func (r *NotificationRepository) ListByUserID(userID uint, since float64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.
		Where("user_id = ? AND timestamp > ?", userID, since).
		Order("timestamp ASC").
		Find(&notifications).Error
	return notifications, err
}

// GetByUserIDAndName returns the live notification of a given name, if
// any.
func (r *NotificationRepository) GetByUserIDAndName(userID uint, name string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.Where("user_id = ? AND name = ?", userID, name).First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

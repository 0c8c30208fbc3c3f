package repository

import (
	"time"

	"microblog/internal/models"

	"gorm.io/gorm"
)

// MessageRepository is the data access layer for private messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a message repository.
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create inserts a message.
func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListReceived returns messages sent to the user, newest first.
func (r *MessageRepository) ListReceived(userID uint, offset, limit int) ([]models.Message, int64, error) {
	query := r.db.Model(&models.Message{}).Where("recipient_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.Preload("Sender").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	return messages, total, err
}

// CountReceivedSince counts messages received after t.
func (r *MessageRepository) CountReceivedSince(userID uint, t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND created_at > ?", userID, t).
		Count(&count).Error
	return count, err
}

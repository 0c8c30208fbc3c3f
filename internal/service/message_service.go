package service

import (
	"fmt"
	"time"

	"microblog/internal/models"
	"microblog/internal/repository"

	"gorm.io/gorm"
)

// UnreadMessagesNotification carries the recipient's unread message
// count.
const UnreadMessagesNotification = "unread_message_count"

// MessageService handles private messages and the unread-count
// notification that accompanies them.
type MessageService struct {
	db               *gorm.DB
	messageRepo      *repository.MessageRepository
	notificationRepo *repository.NotificationRepository
	userRepo         *repository.UserRepository
}

// NewMessageService creates a message service.
func NewMessageService(
	db *gorm.DB,
	messageRepo *repository.MessageRepository,
	notificationRepo *repository.NotificationRepository,
	userRepo *repository.UserRepository,
) *MessageService {
	return &MessageService{
		db:               db,
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// Send stores a message for the named recipient and refreshes their
// unread-count notification in the same transaction.
func (s *MessageService) Send(senderID uint, recipientUsername, body string) (*models.Message, error) {
	recipient, err := s.userRepo.GetByUsername(recipientUsername)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if recipient.ID == senderID {
		return nil, fmt.Errorf("cannot message yourself")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        body,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.WithTx(tx).Create(message); err != nil {
			return err
		}

		since := time.Time{}
		if recipient.LastMessageReadTime != nil {
			since = *recipient.LastMessageReadTime
		}
		count, err := s.messageRepo.WithTx(tx).CountReceivedSince(recipient.ID, since)
		if err != nil {
			return err
		}

		_, err = s.notificationRepo.WithTx(tx).Add(recipient.ID, UnreadMessagesNotification, models.JSONMap{
			"count": count,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	return message, nil
}

// Received returns the user's inbox, newest first, moves the read
// marker and zeroes the unread-count notification.
func (s *MessageService) Received(userID uint, page, perPage int) ([]models.Message, int64, error) {
	now := time.Now()
	if err := s.userRepo.UpdateLastMessageRead(userID, now); err != nil {
		return nil, 0, err
	}
	if _, err := s.notificationRepo.Add(userID, UnreadMessagesNotification, models.JSONMap{"count": 0}); err != nil {
		return nil, 0, err
	}

	offset, limit := pageBounds(page, perPage)
	return s.messageRepo.ListReceived(userID, offset, limit)
}

// UnreadCount counts messages received since the user's read marker.
func (s *MessageService) UnreadCount(userID uint) (int64, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, ErrUserNotFound
	}

	since := time.Time{}
	if user.LastMessageReadTime != nil {
		since = *user.LastMessageReadTime
	}
	return s.messageRepo.CountReceivedSince(userID, since)
}

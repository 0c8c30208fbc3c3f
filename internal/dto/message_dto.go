package dto

import (
	"time"

	"microblog/internal/models"
)

// SendMessageRequest is the private message payload.
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=140"`
}

// MessageResponse is the public view of a message.
type MessageResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Sender    string    `json:"sender"`
	SenderID  uint      `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessageResponse maps a message model to its public view.
func NewMessageResponse(message *models.Message) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		Body:      message.Body,
		Sender:    message.Sender.Username,
		SenderID:  message.SenderID,
		CreatedAt: message.CreatedAt,
	}
}

// NewMessageResponses maps a slice of message models.
func NewMessageResponses(messages []models.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = NewMessageResponse(&messages[i])
	}
	return responses
}

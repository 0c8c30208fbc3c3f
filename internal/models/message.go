package models

import (
	"time"
)

// Message is a private message between two users.
type Message struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	SenderID    uint      `gorm:"index;not null" json:"sender_id"`
	RecipientID uint      `gorm:"index;not null" json:"recipient_id"`
	Body        string    `gorm:"size:140;not null" json:"body"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Sender    User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}

// TableName sets the table name.
func (Message) TableName() string {
	return "messages"
}

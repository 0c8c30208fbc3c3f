package models

import (
	"time"
)

// Post is a short text update. Posts are immutable once created and
// are mirrored into the search index on commit.
type Post struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Body      string    `gorm:"size:140;not null" json:"body"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Post) TableName() string {
	return "posts"
}

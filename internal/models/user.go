package models

import (
	"time"
)

// User is an identity record.
type User struct {
	ID                  uint       `gorm:"primarykey" json:"id"`
	Username            string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email               string     `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash        string     `gorm:"size:128;not null" json:"-"`
	AboutMe             string     `gorm:"size:140" json:"about_me"`
	IsAdmin             bool       `gorm:"default:false" json:"is_admin"`
	LastSeen            *time.Time `json:"last_seen"`
	LastMessageReadTime *time.Time `json:"last_message_read_time"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Posts         []Post         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	Notifications []Notification `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"notifications,omitempty"`
	Jobs          []Job          `gorm:"foreignKey:UserID" json:"jobs,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// SessionID identifies the user to the session layer.
func (u *User) SessionID() uint {
	return u.ID
}

// SessionName is the stable display name carried in session tokens.
func (u *User) SessionName() string {
	return u.Username
}

// SessionAdmin reports whether the session carries admin rights.
func (u *User) SessionAdmin() bool {
	return u.IsAdmin
}

// Follow is a directed edge meaning the follower sees the followed
// user's posts in their feed. Edges carry no payload and are never
// mutated, only created and destroyed.
type Follow struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	FollowerID uint      `gorm:"uniqueIndex:idx_follow_edge;index;not null" json:"follower_id"`
	FollowedID uint      `gorm:"uniqueIndex:idx_follow_edge;index;not null" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name.
func (Follow) TableName() string {
	return "follows"
}

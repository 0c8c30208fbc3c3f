package models

import (
	"time"
)

// Job is a durable record of a launched background task. Its primary
// key is the queue task id, so the row and the live task metadata can
// be correlated without a mapping table. Progress percent lives only
// in the queue's ephemeral side-channel while the task runs; Complete
// is the sole durable terminal state.
type Job struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	Name        string    `gorm:"index:idx_job_owner_name;size:128;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	UserID      uint      `gorm:"index:idx_job_owner_name;not null" json:"user_id"`
	Complete    bool      `gorm:"default:false" json:"complete"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Job) TableName() string {
	return "jobs"
}

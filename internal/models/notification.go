package models

import (
	"database/sql/driver"
	"encoding/json"
)

// Notification is a superseding-by-name, per-user asynchronous message.
// At most one row exists per (user, name) pair; writing a new one of the
// same name replaces the previous payload. The unique index backstops
// the invariant at the schema level.
type Notification struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Name      string  `gorm:"uniqueIndex:idx_notification_owner;size:128;not null" json:"name"`
	UserID    uint    `gorm:"uniqueIndex:idx_notification_owner;not null" json:"user_id"`
	Timestamp float64 `gorm:"index" json:"timestamp"`
	Payload   JSONMap `gorm:"type:text" json:"payload"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}

// JSONMap stores arbitrary structured data as a JSON text column.
type JSONMap map[string]interface{}

// Scan implements sql.Scanner.
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Value implements driver.Valuer.
func (j JSONMap) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

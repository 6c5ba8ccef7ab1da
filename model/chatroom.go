package model

import "time"

// Chatroom is a named campus-wide discussion channel. Any authenticated user
// may create one; the application never deletes them.
type Chatroom struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Name        string
	Description string
	CreatedBy   string
}

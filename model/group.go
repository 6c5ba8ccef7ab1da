package model

import "time"

/*

Group is a membership-gated collection of users with its own message stream.

Id: primary key
Name: display name
Description: free text description
CreatedBy: founding user; only they may delete the group or remove members
Members: membership rows, removed at the store level when the group goes
Messages: the group's stream, removed at the store level when the group goes
*/
type Group struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	Name        string
	Description string
	CreatedBy   string
	Members     []GroupMember  `gorm:"constraint:OnDelete:CASCADE;"`
	Messages    []GroupMessage `gorm:"constraint:OnDelete:CASCADE;"`
}

// GroupMember ties one user to one group. Rows are created when a member is
// added and removed only by the group creator, never for themselves.
type GroupMember struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	GroupID   string `gorm:"index"`
	UserID    string
	User      Profile `gorm:"foreignKey:UserID"`
}

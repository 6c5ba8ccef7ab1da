package model

import "time"

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

func (s ConnectionStatus) IsValid() bool {
	switch s {
	case ConnectionStatusPending, ConnectionStatusAccepted, ConnectionStatusRejected:
		return true
	}
	return false
}

func (s ConnectionStatus) String() string {
	return string(s)
}

/*

Connection is a relationship request between two users.

Id: primary key
RequesterID:
Requester: the user who sent the request, "belongs-to" relation
ReceiverID:
Receiver: the user the request was sent to, "belongs-to" relation
Status: pending on creation, then accepted or rejected exactly once by the
receiver. A resolved connection never transitions again and is never deleted.

At most one active (pending or accepted) connection may exist per unordered
pair of users; requestConnection checks this before insert.
*/
type Connection struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	RequesterID string
	Requester   Profile `gorm:"foreignKey:RequesterID"`
	ReceiverID  string
	Receiver    Profile          `gorm:"foreignKey:ReceiverID"`
	Status      ConnectionStatus `gorm:"default:pending"`
}

package model

import "time"

const NotificationTypeConnectionRequest = "connection_request"

/*

Notification is a per-user inbox entry announcing a connection-related event.

Id: primary key
UserID: the owner whose inbox this entry lives in
Type: event kind, currently only "connection_request"
Content: free text displayed next to the actor's name
RelatedUserID:
RelatedUser: the acting user the entry is about, "belongs-to" relation
Read: false on creation, flipped to true exactly once by the owner, either
explicitly or as a side effect of responding to the underlying request.
Rows are never deleted.
*/
type Notification struct {
	Id            string `gorm:"primaryKey"`
	CreatedAt     time.Time
	UserID        string
	Type          string
	Content       string
	RelatedUserID string
	RelatedUser   Profile `gorm:"foreignKey:RelatedUserID"`
	Read          bool    `gorm:"default:false"`
}

package model

import "time"

/*

MessageCore is the column set shared by every chat surface.

Id: primary key
SenderID: the authoring user; content and flags are mutable only by them
Content: plain text body, may be empty when a file is attached
FileUrl: URL of the uploaded attachment (public or time-limited signed,
depending on the surface policy), nil when the message is text only
FileName: original display name of the attachment
Edited: set once the sender rewrites the content, no history retained
Deleted: soft-delete flag; flagged rows stay in storage and are dropped
from the displayed list only (surfaces with a hard-delete policy remove
the row instead and never set this flag)
*/
type MessageCore struct {
	Id        string `gorm:"primaryKey"`
	CreatedAt time.Time
	SenderID  string
	Content   string
	FileUrl   *string
	FileName  *string
	Edited    bool `gorm:"default:false"`
	Deleted   bool `gorm:"default:false"`
}

// Message is the campus-wide open chat: no scope key, every authenticated
// user reads and writes the same stream.
type Message struct {
	MessageCore `gorm:"embedded"`
}

// ConnectedMessage is the pairwise chat between two connected users, scoped
// by the unordered {sender, receiver} pair.
type ConnectedMessage struct {
	MessageCore `gorm:"embedded"`
	ReceiverID  string `gorm:"index"`
}

// CampusMessage is the chatroom-scoped campus discussion stream.
type CampusMessage struct {
	MessageCore `gorm:"embedded"`
	ChatroomID  string `gorm:"index"`
}

// GroupMessage is the membership-gated group stream. The group_id foreign
// key carries a store-level cascade so deleting a group removes its messages.
type GroupMessage struct {
	MessageCore `gorm:"embedded"`
	GroupID     string `gorm:"index"`
}

package chat

import (
	"github.com/Sameena10-06/community-chat-hub/filestore"
	"github.com/Sameena10-06/community-chat-hub/stream"
	"gorm.io/gorm"
)

// Surface names routable from the API.
const (
	SurfaceGlobal    = "global"
	SurfaceConnected = "connected"
	SurfaceCampus    = "campus"
	SurfaceGroup     = "group"
)

// DefaultSurfaces instantiates every chat surface of the product over the
// shared Conversation implementation.
//
// The policy spread is deliberate and mirrors the product behavior:
// connected-pair attachments live in a private bucket and are resolved
// through year-long signed URLs, everything else is public; the group stream
// is the only surface with hard deletion, and the only one that refuses an
// empty content column, storing the "(file)" placeholder instead.
func DefaultSurfaces(db *gorm.DB, store filestore.UploadFileStore, feed *stream.ChangeFeed) map[string]*Conversation {
	return map[string]*Conversation{
		SurfaceGlobal: NewConversation(db, store, feed,
			SurfaceGlobal, "messages", nil, false,
			Policy{UsesSignedURL: false, Delete: SoftDelete, AllowEmptyTextWithFile: true}),
		SurfaceConnected: NewConversation(db, store, feed,
			SurfaceConnected, "connected_messages", []string{"receiver_id"}, true,
			Policy{UsesSignedURL: true, Delete: SoftDelete, AllowEmptyTextWithFile: true}),
		SurfaceCampus: NewConversation(db, store, feed,
			SurfaceCampus, "campus_messages", []string{"chatroom_id"}, false,
			Policy{UsesSignedURL: false, Delete: SoftDelete, AllowEmptyTextWithFile: true}),
		SurfaceGroup: NewConversation(db, store, feed,
			SurfaceGroup, "group_messages", []string{"group_id"}, false,
			Policy{UsesSignedURL: false, Delete: HardDelete, AllowEmptyTextWithFile: false}),
	}
}

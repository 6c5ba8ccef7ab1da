package filestore

import (
	"io"
	"time"

	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/google/uuid"
)

/*

UploadFileStore is the boundary every uploaded avatar and chat attachment
goes through. A caller first Stores the bytes under a key, then resolves the
key into either a permanent public URL or a time-limited signed URL; which of
the two ends up on the row is decided by the chat surface policy, not by the
store itself.
*/
type UploadFileStore interface {
	Store(key string, body io.Reader, contentType string) error
	PublicUrl(key string) string
	SignedUrl(key string, ttl time.Duration) (string, error)
	CleanUp()
}

// KeyForUpload builds the store key for a user upload: namespaced by the
// uploading user's id, random base name, original extension preserved.
func KeyForUpload(userID string, fileName string) string {
	return userID + "/" + uuid.New().String() + utils.FileExtWithDot(fileName)
}

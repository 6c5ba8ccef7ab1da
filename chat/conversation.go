package chat

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Sameena10-06/community-chat-hub/filestore"
	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/stream"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DeleteStrategy decides what Unsend does to the row.
type DeleteStrategy string

const (
	// SoftDelete flags the row and keeps it in storage; only the displayed
	// list drops it.
	SoftDelete DeleteStrategy = "soft"
	// HardDelete removes the row from storage.
	HardDelete DeleteStrategy = "hard"
)

// Policy is the per-surface behavior knobs. Every chat surface shares one
// Conversation implementation; the historical differences between them live
// here instead of in four parallel copies of the code.
type Policy struct {
	// UsesSignedURL stores a time-limited signed URL for attachments instead
	// of a permanent public one.
	UsesSignedURL bool
	// Delete picks soft or hard deletion for Unsend.
	Delete DeleteStrategy
	// AllowEmptyTextWithFile permits an empty content column when a file is
	// attached. When false the literal "(file)" placeholder is stored
	// instead.
	AllowEmptyTextWithFile bool
}

const (
	// Signed attachment URLs stay valid for a year.
	signedUrlTTL = 365 * 24 * time.Hour

	filePlaceholder = "(file)"
)

var (
	ErrEmptyMessage    = errors.New("message requires text or an attachment")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotSender       = errors.New("only the sender may modify a message")
	ErrMissingScope    = errors.New("missing conversation scope key")
)

// Scope maps a surface's scope columns to concrete values, e.g.
// {"group_id": "..."} for a group stream. The global surface uses an empty
// scope.
type Scope map[string]string

// Upload is an attachment handed to Send before it reaches the file store.
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Message is the listed view of one row, sender profile joined in.
type Message struct {
	Id           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	ReceiverID   *string   `json:"receiver_id,omitempty"`
	ChatroomID   *string   `json:"chatroom_id,omitempty"`
	GroupID      *string   `json:"group_id,omitempty"`
	Content      string    `json:"content"`
	FileUrl      *string   `json:"file_url,omitempty"`
	FileName     *string   `json:"file_name,omitempty"`
	Edited       bool      `json:"edited"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	SenderName   string    `json:"sender_name"`
	SenderAvatar string    `json:"sender_avatar"`
}

/*

Conversation is one chat surface: a backing table, the scope columns that
partition it into conversations, and a Policy. All surfaces share the same
send/edit/unsend/list contract; every mutation also publishes a change event
so realtime subscribers re-run their list query.

A pairwise surface (the connected chat) is scoped by the unordered
{sender, receiver} pair rather than by a plain equality on its scope column,
so its list query matches both directions of the pair.
*/
type Conversation struct {
	name         string
	table        string
	scopeColumns []string
	pairwise     bool
	policy       Policy

	db    *gorm.DB
	store filestore.UploadFileStore
	feed  *stream.ChangeFeed
}

func NewConversation(db *gorm.DB, store filestore.UploadFileStore, feed *stream.ChangeFeed, name string, table string, scopeColumns []string, pairwise bool, policy Policy) *Conversation {
	return &Conversation{
		name:         name,
		table:        table,
		scopeColumns: scopeColumns,
		pairwise:     pairwise,
		policy:       policy,
		db:           db,
		store:        store,
		feed:         feed,
	}
}

func (c *Conversation) Name() string { return c.name }

func (c *Conversation) Table() string { return c.table }

func (c *Conversation) Policy() Policy { return c.policy }

func (c *Conversation) validateScope(scope Scope) error {
	for _, col := range c.scopeColumns {
		if scope[col] == "" {
			return errors.Wrap(ErrMissingScope, col)
		}
	}
	return nil
}

// Send stores an optional attachment, then inserts the message row. The
// insert never happens when the upload fails, so a message can not lose its
// attachment silently. Requires non-empty text or a file.
func (c *Conversation) Send(senderID string, scope Scope, text string, upload *Upload) (string, error) {
	if err := c.validateScope(scope); err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" && upload == nil {
		return "", ErrEmptyMessage
	}

	content := text
	var fileUrl, fileName *string
	if upload != nil {
		key := filestore.KeyForUpload(senderID, upload.Name)
		if err := c.store.Store(key, upload.Body, upload.ContentType); err != nil {
			return "", errors.Wrap(err, "cannot store attachment")
		}

		var url string
		var err error
		if c.policy.UsesSignedURL {
			url, err = c.store.SignedUrl(key, signedUrlTTL)
			if err != nil {
				return "", errors.Wrap(err, "cannot sign attachment url")
			}
		} else {
			url = c.store.PublicUrl(key)
		}
		fileUrl = &url
		name := upload.Name
		fileName = &name

		if strings.TrimSpace(text) == "" && !c.policy.AllowEmptyTextWithFile {
			content = filePlaceholder
		}
	}

	id := uuid.New().String()
	row := map[string]interface{}{
		"id":         id,
		"created_at": time.Now(),
		"sender_id":  senderID,
		"content":    content,
		"file_url":   fileUrl,
		"file_name":  fileName,
		"edited":     false,
		"deleted":    false,
	}
	for col, val := range scope {
		row[col] = val
	}

	if err := c.db.Table(c.table).Create(row).Error; err != nil {
		return "", errors.Wrap(err, "cannot insert message")
	}

	c.publish(model.ChangeActionInsert, id, row)
	return id, nil
}

// Edit rewrites the content of a message. Only the original sender may edit;
// no edit history is retained, last write wins.
func (c *Conversation) Edit(messageID string, callerID string, newText string) error {
	if strings.TrimSpace(newText) == "" {
		return ErrEmptyMessage
	}

	row, err := c.fetchRow(messageID)
	if err != nil {
		return err
	}
	if rowString(row, "sender_id") != callerID {
		return ErrNotSender
	}

	err = c.db.Table(c.table).
		Where("id = ? AND sender_id = ?", messageID, callerID).
		Updates(map[string]interface{}{"content": newText, "edited": true}).Error
	if err != nil {
		return errors.Wrap(err, "cannot edit message")
	}

	c.publish(model.ChangeActionUpdate, messageID, row)
	return nil
}

// Unsend removes a message from display: soft surfaces flag the row, hard
// surfaces remove it. Only the original sender may unsend.
func (c *Conversation) Unsend(messageID string, callerID string) error {
	row, err := c.fetchRow(messageID)
	if err != nil {
		return err
	}
	if rowString(row, "sender_id") != callerID {
		return ErrNotSender
	}

	if c.policy.Delete == HardDelete {
		err = c.db.Table(c.table).
			Where("id = ? AND sender_id = ?", messageID, callerID).
			Delete(nil).Error
		if err != nil {
			return errors.Wrap(err, "cannot delete message")
		}
		c.publish(model.ChangeActionDelete, messageID, row)
		return nil
	}

	err = c.db.Table(c.table).
		Where("id = ? AND sender_id = ?", messageID, callerID).
		Update("deleted", true).Error
	if err != nil {
		return errors.Wrap(err, "cannot unsend message")
	}
	c.publish(model.ChangeActionUpdate, messageID, row)
	return nil
}

// List returns the conversation for one scope, creation time ascending,
// sender profile joined in, soft-deleted rows dropped.
func (c *Conversation) List(callerID string, scope Scope) ([]Message, error) {
	all, err := c.ListRaw(callerID, scope)
	if err != nil {
		return nil, err
	}

	// Soft-deleted rows stay in storage and are dropped from the displayed
	// list only.
	visible := make([]Message, 0, len(all))
	for _, m := range all {
		if m.Deleted {
			continue
		}
		visible = append(visible, m)
	}
	return visible, nil
}

// ListRaw is List without the soft-delete exclusion.
func (c *Conversation) ListRaw(callerID string, scope Scope) ([]Message, error) {
	if err := c.validateScope(scope); err != nil {
		return nil, err
	}

	query := c.db.Table(c.table+" AS m").
		Select("m.*, profiles.full_name AS sender_name, profiles.avatar_url AS sender_avatar").
		Joins("LEFT JOIN profiles ON profiles.id = m.sender_id").
		Order("m.created_at ASC")

	if c.pairwise {
		peer := scope["receiver_id"]
		query = query.Where(
			"(m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)",
			callerID, peer, peer, callerID,
		)
	} else {
		for _, col := range c.scopeColumns {
			query = query.Where("m."+col+" = ?", scope[col])
		}
	}

	var messages []Message
	if err := query.Scan(&messages).Error; err != nil {
		return nil, errors.Wrap(err, "cannot list messages")
	}
	return messages, nil
}

func (c *Conversation) fetchRow(messageID string) (map[string]interface{}, error) {
	row := map[string]interface{}{}
	result := c.db.Table(c.table).Where("id = ?", messageID).Take(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "cannot fetch message")
	}
	return row, nil
}

// publish broadcasts the mutation with the row's scope keys (plus the sender
// and receiver for pairwise surfaces) so filtered subscribers can match.
func (c *Conversation) publish(action model.ChangeAction, id string, row map[string]interface{}) {
	keyColumns := c.scopeColumns
	if c.pairwise {
		keyColumns = []string{"sender_id", "receiver_id"}
	}

	keys := make(map[string]string, len(keyColumns))
	for _, col := range keyColumns {
		keys[col] = rowString(row, col)
	}

	c.feed.Publish(model.ChangeEvent{
		Table:  c.table,
		Action: action,
		RowID:  id,
		Keys:   keys,
	})
}

func rowString(row map[string]interface{}, col string) string {
	val, ok := row[col]
	if !ok || val == nil {
		return ""
	}
	if s, ok := val.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", val)
}

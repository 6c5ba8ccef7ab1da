package handlers

import (
	"net/http"

	"github.com/Sameena10-06/community-chat-hub/chat"
	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// surfaceScope builds the chat scope from request parameters. The connected
// surface takes `peer_id`, the campus and group surfaces their own id param;
// the global surface takes nothing.
func surfaceScope(c *gin.Context, surface string) chat.Scope {
	param := func(name string) string {
		if v := c.Query(name); v != "" {
			return v
		}
		return c.PostForm(name)
	}

	switch surface {
	case chat.SurfaceConnected:
		return chat.Scope{"receiver_id": param("peer_id")}
	case chat.SurfaceCampus:
		return chat.Scope{"chatroom_id": param("chatroom_id")}
	case chat.SurfaceGroup:
		return chat.Scope{"group_id": param("group_id")}
	}
	return chat.Scope{}
}

func (a *API) surface(c *gin.Context) *chat.Conversation {
	conv, ok := a.Surfaces[c.Param("surface")]
	if !ok {
		notFound(c, "unknown chat surface")
		return nil
	}
	return conv
}

func (a *API) isGroupMember(groupID string, userID string) (bool, error) {
	var count int64
	err := a.DB.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (a *API) hasAcceptedConnection(userID string, peerID string) (bool, error) {
	var count int64
	err := a.DB.Model(&model.Connection{}).
		Where("((requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)) AND status = ?",
			userID, peerID, peerID, userID, model.ConnectionStatusAccepted).
		Count(&count).Error
	return count > 0, err
}

// requireScopeAccess enforces the surface's server-side access rules: group
// streams are visible to members only, the connected-pair stream requires an
// accepted connection with the peer. The checks run on stored rows, never on
// anything the client claims.
func (a *API) requireScopeAccess(c *gin.Context, conv *chat.Conversation, userID string, scope chat.Scope) bool {
	switch conv.Name() {
	case chat.SurfaceGroup:
		member, err := a.isGroupMember(scope["group_id"], userID)
		if err != nil {
			storeError(c, err)
			return false
		}
		if !member {
			forbidden(c, "not a member of this group")
			return false
		}
	case chat.SurfaceConnected:
		peer := scope["receiver_id"]
		if peer == "" {
			// The chat layer reports the missing scope key as a bad request.
			return true
		}
		connected, err := a.hasAcceptedConnection(userID, peer)
		if err != nil {
			storeError(c, err)
			return false
		}
		if !connected {
			forbidden(c, "not connected to this user")
			return false
		}
	}
	return true
}

// SendMessage posts one message to a surface, with an optional multipart
// attachment under the "file" field.
func (a *API) SendMessage(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	conv := a.surface(c)
	if conv == nil {
		return
	}

	scope := surfaceScope(c, conv.Name())
	if !a.requireScopeAccess(c, conv, userID, scope) {
		return
	}

	content := c.PostForm("content")

	var upload *chat.Upload
	if header, err := c.FormFile("file"); err == nil {
		file, err := header.Open()
		if err != nil {
			badRequest(c, "cannot read uploaded file")
			return
		}
		defer file.Close()
		upload = &chat.Upload{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	id, err := conv.Send(userID, scope, content, upload)
	if err != nil {
		a.chatError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListMessages returns one conversation of a surface. `include_deleted=true`
// keeps soft-deleted rows in the response.
func (a *API) ListMessages(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	conv := a.surface(c)
	if conv == nil {
		return
	}

	scope := surfaceScope(c, conv.Name())
	if !a.requireScopeAccess(c, conv, userID, scope) {
		return
	}

	var messages []chat.Message
	var err error
	if c.Query("include_deleted") == "true" {
		messages, err = conv.ListRaw(userID, scope)
	} else {
		messages, err = conv.List(userID, scope)
	}
	if err != nil {
		a.chatError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type editMessageInput struct {
	Content string `json:"content" binding:"required"`
}

// EditMessage rewrites a message's text. The sender check lives in the chat
// layer and maps to 403 here.
func (a *API) EditMessage(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	conv := a.surface(c)
	if conv == nil {
		return
	}

	var input editMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := conv.Edit(c.Param("id"), userID, input.Content); err != nil {
		a.chatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "edited": true})
}

// UnsendMessage removes a message from display, soft or hard per surface.
func (a *API) UnsendMessage(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	conv := a.surface(c)
	if conv == nil {
		return
	}

	if err := conv.Unsend(c.Param("id"), userID); err != nil {
		a.chatError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "deleted": true})
}

func (a *API) chatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrNotSender):
		forbidden(c, err.Error())
	case errors.Is(err, chat.ErrMessageNotFound):
		notFound(c, err.Error())
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrMissingScope):
		badRequest(c, err.Error())
	default:
		storeError(c, err)
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createChatroomInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type chatroomView struct {
	Id          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

// CreateChatroom opens a new campus-wide channel. Chatrooms are never
// deleted, so there is no matching delete endpoint.
func (a *API) CreateChatroom(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input createChatroomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	chatroom := model.Chatroom{
		Id:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   userID,
	}
	if err := a.DB.Create(&chatroom).Error; err != nil {
		storeError(c, err)
		return
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "chatrooms",
		Action: model.ChangeActionInsert,
		RowID:  chatroom.Id,
	})

	c.JSON(http.StatusCreated, toChatroomView(&chatroom))
}

// ListChatrooms returns every campus channel, newest first.
func (a *API) ListChatrooms(c *gin.Context) {
	var chatrooms []model.Chatroom
	err := a.DB.Order("created_at DESC").Find(&chatrooms).Error
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]chatroomView, 0, len(chatrooms))
	for i := range chatrooms {
		views = append(views, toChatroomView(&chatrooms[i]))
	}
	c.JSON(http.StatusOK, views)
}

func toChatroomView(r *model.Chatroom) chatroomView {
	return chatroomView{
		Id:          r.Id,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		Name:        r.Name,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
	}
}

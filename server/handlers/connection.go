package handlers

import (
	"net/http"
	"time"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	Logger "github.com/Sameena10-06/community-chat-hub/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type requestConnectionInput struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
}

type respondConnectionInput struct {
	Accept         bool   `json:"accept"`
	NotificationID string `json:"notification_id"`
}

type connectionView struct {
	Id        string                 `json:"id"`
	Status    model.ConnectionStatus `json:"status"`
	CreatedAt string                 `json:"created_at"`
	Profile   profileView            `json:"profile"`
}

// RequestConnection inserts a pending connection and then the notification
// announcing it to the receiver. The two writes are sequential and
// independent: when the notification insert fails the connection stays, the
// failure is surfaced and the caller may retry the whole flow.
func (a *API) RequestConnection(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input requestConnectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if input.ReceiverID == userID {
		badRequest(c, "cannot request a connection to yourself")
		return
	}

	var receiver model.Profile
	if err := a.DB.Where("id = ?", input.ReceiverID).Take(&receiver).Error; err != nil {
		notFound(c, "receiver profile not found")
		return
	}

	// At most one active connection per unordered pair.
	var active int64
	err := a.DB.Model(&model.Connection{}).
		Where("((requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)) AND status IN ?",
			userID, input.ReceiverID, input.ReceiverID, userID,
			[]model.ConnectionStatus{model.ConnectionStatusPending, model.ConnectionStatusAccepted}).
		Count(&active).Error
	if err != nil {
		storeError(c, err)
		return
	}
	if active > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "an active connection with this user already exists"})
		return
	}

	connection := model.Connection{
		Id:          uuid.New().String(),
		RequesterID: userID,
		ReceiverID:  input.ReceiverID,
		Status:      model.ConnectionStatusPending,
	}
	if err := a.DB.Create(&connection).Error; err != nil {
		storeError(c, err)
		return
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "connections",
		Action: model.ChangeActionInsert,
		RowID:  connection.Id,
	})

	notification := model.Notification{
		Id:            uuid.New().String(),
		UserID:        input.ReceiverID,
		Type:          model.NotificationTypeConnectionRequest,
		Content:       "sent you a connection request",
		RelatedUserID: userID,
	}
	if err := a.DB.Create(&notification).Error; err != nil {
		Logger.Log.Errorln("connection created but notification insert failed: ", err)
		storeError(c, err)
		return
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "notifications",
		Action: model.ChangeActionInsert,
		RowID:  notification.Id,
		Keys:   map[string]string{"user_id": notification.UserID},
	})

	c.JSON(http.StatusCreated, gin.H{
		"id":              connection.Id,
		"status":          connection.Status,
		"notification_id": notification.Id,
	})
}

// RespondConnection resolves a pending request: accept or reject, exactly
// once, by the receiver only. The triggering notification is marked read as
// a side effect; that second write is independent, so a failure there
// leaves an unread notification pointing at an already-resolved connection.
// Notification read-state is advisory, never authoritative.
func (a *API) RespondConnection(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input respondConnectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	var connection model.Connection
	err := a.DB.Where("id = ?", c.Param("id")).Take(&connection).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "connection not found")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}

	if connection.ReceiverID != userID {
		forbidden(c, "only the receiver may respond to a connection request")
		return
	}
	if connection.Status != model.ConnectionStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "connection request already resolved"})
		return
	}

	status := model.ConnectionStatusRejected
	if input.Accept {
		status = model.ConnectionStatusAccepted
	}
	err = a.DB.Model(&model.Connection{}).
		Where("id = ?", connection.Id).
		Update("status", status).Error
	if err != nil {
		storeError(c, err)
		return
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "connections",
		Action: model.ChangeActionUpdate,
		RowID:  connection.Id,
	})

	if input.NotificationID != "" {
		err = a.DB.Model(&model.Notification{}).
			Where("id = ? AND user_id = ?", input.NotificationID, userID).
			Update("read", true).Error
		if err != nil {
			Logger.Log.Warnln("connection resolved but notification not marked read: ", err)
		} else {
			a.Feed.Publish(model.ChangeEvent{
				Table:  "notifications",
				Action: model.ChangeActionUpdate,
				RowID:  input.NotificationID,
				Keys:   map[string]string{"user_id": userID},
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": connection.Id, "status": status})
}

// ListConnections returns the caller's accepted connections with the
// counterpart profile joined in.
func (a *API) ListConnections(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var connections []model.Connection
	err := a.DB.
		Preload("Requester").Preload("Receiver").
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?", userID, userID, model.ConnectionStatusAccepted).
		Order("created_at DESC").
		Find(&connections).Error
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]connectionView, 0, len(connections))
	for _, conn := range connections {
		counterpart := conn.Requester
		if conn.RequesterID == userID {
			counterpart = conn.Receiver
		}
		views = append(views, connectionView{
			Id:        conn.Id,
			Status:    conn.Status,
			CreatedAt: conn.CreatedAt.Format(time.RFC3339),
			Profile:   toProfileView(&counterpart),
		})
	}
	c.JSON(http.StatusOK, views)
}

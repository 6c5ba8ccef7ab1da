package handlers

import (
	"net/http"
	"time"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type notificationView struct {
	Id          string      `json:"id"`
	CreatedAt   string      `json:"created_at"`
	Type        string      `json:"type"`
	Content     string      `json:"content"`
	Read        bool        `json:"read"`
	RelatedUser profileView `json:"related_user"`
}

// ListNotifications returns the caller's inbox, newest first, with the
// acting user's profile joined in.
func (a *API) ListNotifications(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var notifications []model.Notification
	err := a.DB.
		Preload("RelatedUser").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]notificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, notificationView{
			Id:          n.Id,
			CreatedAt:   n.CreatedAt.Format(time.RFC3339),
			Type:        n.Type,
			Content:     n.Content,
			Read:        n.Read,
			RelatedUser: toProfileView(&n.RelatedUser),
		})
	}
	c.JSON(http.StatusOK, views)
}

// UnreadCount re-queries the store on every call. The badge is derived from
// persisted rows, never from a client-side counter.
func (a *API) UnreadCount(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var count int64
	err := a.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead flips a single notification to read. Only the owner may do so;
// marking an already-read notification is a no-op that still returns 200.
func (a *API) MarkRead(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var notification model.Notification
	err := a.DB.Where("id = ?", c.Param("id")).Take(&notification).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "notification not found")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	if notification.UserID != userID {
		forbidden(c, "not your notification")
		return
	}

	if !notification.Read {
		err = a.DB.Model(&model.Notification{}).
			Where("id = ?", notification.Id).
			Update("read", true).Error
		if err != nil {
			storeError(c, err)
			return
		}
		a.Feed.Publish(model.ChangeEvent{
			Table:  "notifications",
			Action: model.ChangeActionUpdate,
			RowID:  notification.Id,
			Keys:   map[string]string{"user_id": userID},
		})
	}

	c.JSON(http.StatusOK, gin.H{"id": notification.Id, "read": true})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/Sameena10-06/community-chat-hub/utils"
	Logger "github.com/Sameena10-06/community-chat-hub/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createGroupInput struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type addMembersInput struct {
	MemberIDs []string `json:"member_ids" binding:"required"`
}

type groupView struct {
	Id          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"created_by"`
}

type memberView struct {
	Id      string      `json:"id"`
	Profile profileView `json:"profile"`
}

func toGroupView(g *model.Group) groupView {
	return groupView{
		Id:          g.Id,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
	}
}

// CreateGroup inserts the group, then the creator's membership, then one row
// per requested member. The inserts are sequential and independent: a
// failure partway leaves the rows already written in place, reported to the
// caller without rollback.
func (a *API) CreateGroup(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input createGroupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	group := model.Group{
		Id:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   userID,
	}
	if err := a.DB.Create(&group).Error; err != nil {
		storeError(c, err)
		return
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "groups",
		Action: model.ChangeActionInsert,
		RowID:  group.Id,
	})

	// One membership row per distinct id across the creator and member_ids.
	inserted := []string{}
	for _, memberID := range append([]string{userID}, input.MemberIDs...) {
		if utils.ContainsString(inserted, memberID) {
			continue
		}
		row := model.GroupMember{
			Id:      uuid.New().String(),
			GroupID: group.Id,
			UserID:  memberID,
		}
		if err := a.DB.Create(&row).Error; err != nil {
			Logger.Log.Errorln("group created but member insert failed: ", err)
			storeError(c, err)
			return
		}
		inserted = append(inserted, memberID)
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "group_members",
		Action: model.ChangeActionInsert,
		RowID:  group.Id,
		Keys:   map[string]string{"group_id": group.Id},
	})

	c.JSON(http.StatusCreated, toGroupView(&group))
}

// ListGroups returns the groups the caller belongs to, newest first.
func (a *API) ListGroups(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var groups []model.Group
	err := a.DB.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]groupView, 0, len(groups))
	for i := range groups {
		views = append(views, toGroupView(&groups[i]))
	}
	c.JSON(http.StatusOK, views)
}

// DeleteGroup removes the group and, in the same transaction, every message
// and membership under it. Creator only. A deleted group leaves no orphaned
// rows behind.
func (a *API) DeleteGroup(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	groupID := c.Param("id")

	var group model.Group
	err := a.DB.Where("id = ?", groupID).Take(&group).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "group not found")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	if group.CreatedBy != userID {
		forbidden(c, "only the creator may delete a group")
		return
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupID).Delete(&model.GroupMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&group).Error
	})
	if err != nil {
		storeError(c, err)
		return
	}

	a.Feed.Publish(model.ChangeEvent{
		Table:  "groups",
		Action: model.ChangeActionDelete,
		RowID:  groupID,
	})
	c.JSON(http.StatusOK, gin.H{"id": groupID, "deleted": true})
}

// ListGroupMembers returns the membership roll with profiles joined in.
// Members only.
func (a *API) ListGroupMembers(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	groupID := c.Param("id")

	member, err := a.isGroupMember(groupID, userID)
	if err != nil {
		storeError(c, err)
		return
	}
	if !member {
		forbidden(c, "not a member of this group")
		return
	}

	var rows []model.GroupMember
	err = a.DB.Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		storeError(c, err)
		return
	}

	views := make([]memberView, 0, len(rows))
	for i := range rows {
		views = append(views, memberView{
			Id:      rows[i].UserID,
			Profile: toProfileView(&rows[i].User),
		})
	}
	c.JSON(http.StatusOK, views)
}

// AddGroupMembers lets any current member grow the group. Additions are
// sequential inserts with no duplicate screening; a member added twice gets
// two membership rows, and removal takes them all out at once.
func (a *API) AddGroupMembers(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	groupID := c.Param("id")

	member, err := a.isGroupMember(groupID, userID)
	if err != nil {
		storeError(c, err)
		return
	}
	if !member {
		forbidden(c, "not a member of this group")
		return
	}

	var input addMembersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	for _, memberID := range input.MemberIDs {
		row := model.GroupMember{
			Id:      uuid.New().String(),
			GroupID: groupID,
			UserID:  memberID,
		}
		if err := a.DB.Create(&row).Error; err != nil {
			storeError(c, err)
			return
		}
	}
	a.Feed.Publish(model.ChangeEvent{
		Table:  "group_members",
		Action: model.ChangeActionInsert,
		RowID:  groupID,
		Keys:   map[string]string{"group_id": groupID},
	})
	c.JSON(http.StatusCreated, gin.H{"added": len(input.MemberIDs)})
}

// RemoveGroupMember drops one member. Creator only, and never the creator
// themselves; a group cannot shed its owner.
func (a *API) RemoveGroupMember(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)
	groupID := c.Param("id")
	targetID := c.Param("userId")

	var group model.Group
	err := a.DB.Where("id = ?", groupID).Take(&group).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "group not found")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	if group.CreatedBy != userID {
		forbidden(c, "only the creator may remove members")
		return
	}
	if targetID == group.CreatedBy {
		badRequest(c, "the creator cannot be removed from their own group")
		return
	}

	result := a.DB.Where("group_id = ? AND user_id = ?", groupID, targetID).
		Delete(&model.GroupMember{})
	if result.Error != nil {
		storeError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		notFound(c, "member not found")
		return
	}

	a.Feed.Publish(model.ChangeEvent{
		Table:  "group_members",
		Action: model.ChangeActionDelete,
		RowID:  groupID,
		Keys:   map[string]string{"group_id": groupID},
	})
	c.JSON(http.StatusOK, gin.H{"removed": targetID})
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/Sameena10-06/community-chat-hub/chat"
	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupMembershipRows(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	a := utils.TestCreateProfile(t, api.DB, "a")
	b := utils.TestCreateProfile(t, api.DB, "b")
	c := utils.TestCreateProfile(t, api.DB, "c")

	recorder := perform(t, api.CreateGroup, creator, gin.H{
		"name":       "study group",
		"member_ids": []string{a, b, c},
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var view groupView
	decodeJSON(t, recorder, &view)
	require.Equal(t, creator, view.CreatedBy)

	// Exactly one membership row per id across the creator and a, b, c.
	var rows []model.GroupMember
	require.NoError(t, api.DB.Where("group_id = ?", view.Id).Find(&rows).Error)
	require.Len(t, rows, 4)
	seen := map[string]int{}
	for _, row := range rows {
		seen[row.UserID]++
	}
	for _, id := range []string{creator, a, b, c} {
		require.Equal(t, 1, seen[id])
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	member := utils.TestCreateProfile(t, api.DB, "member")
	groupID := utils.TestCreateGroup(t, api.DB, creator, "doomed")
	require.NoError(t, api.DB.Create(&model.GroupMember{
		Id: "m1", GroupID: groupID, UserID: member,
	}).Error)

	_, err := api.Surfaces[chat.SurfaceGroup].Send(
		member, chat.Scope{"group_id": groupID}, "hello", nil)
	require.NoError(t, err)

	idParam := gin.Param{Key: "id", Value: groupID}

	recorder := perform(t, api.DeleteGroup, member, nil, idParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = perform(t, api.DeleteGroup, creator, nil, idParam)
	require.Equal(t, http.StatusOK, recorder.Code)

	var groups, members, messages int64
	require.NoError(t, api.DB.Model(&model.Group{}).Where("id = ?", groupID).Count(&groups).Error)
	require.NoError(t, api.DB.Model(&model.GroupMember{}).Where("group_id = ?", groupID).Count(&members).Error)
	require.NoError(t, api.DB.Model(&model.GroupMessage{}).Where("group_id = ?", groupID).Count(&messages).Error)
	require.Zero(t, groups)
	require.Zero(t, members)
	require.Zero(t, messages)
}

func TestRemoveMemberCreatorOnlyAndNeverSelf(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	member := utils.TestCreateProfile(t, api.DB, "member")
	groupID := utils.TestCreateGroup(t, api.DB, creator, "club")
	require.NoError(t, api.DB.Create(&model.GroupMember{
		Id: "m1", GroupID: groupID, UserID: member,
	}).Error)

	groupParam := gin.Param{Key: "id", Value: groupID}

	recorder := perform(t, api.RemoveGroupMember, member, nil,
		groupParam, gin.Param{Key: "userId", Value: creator})
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = perform(t, api.RemoveGroupMember, creator, nil,
		groupParam, gin.Param{Key: "userId", Value: creator})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = perform(t, api.RemoveGroupMember, creator, nil,
		groupParam, gin.Param{Key: "userId", Value: member})
	require.Equal(t, http.StatusOK, recorder.Code)

	var members int64
	require.NoError(t, api.DB.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, member).Count(&members).Error)
	require.Zero(t, members)
}

func TestGroupStreamMembersOnly(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	utils.TestCreateProfile(t, api.DB, "outsider")
	groupID := utils.TestCreateGroup(t, api.DB, creator, "insiders")

	member, err := api.isGroupMember(groupID, creator)
	require.NoError(t, err)
	require.True(t, member)

	member, err = api.isGroupMember(groupID, "outsider-id")
	require.NoError(t, err)
	require.False(t, member)
}

func TestListGroupsMembershipScoped(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	other := utils.TestCreateProfile(t, api.DB, "other")
	utils.TestCreateGroup(t, api.DB, creator, "mine")

	recorder := perform(t, api.ListGroups, creator, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	var views []groupView
	decodeJSON(t, recorder, &views)
	require.Len(t, views, 1)
	require.Equal(t, "mine", views[0].Name)

	recorder = perform(t, api.ListGroups, other, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	decodeJSON(t, recorder, &views)
	require.Empty(t, views)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestCreateChatroom(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := perform(t, api.CreateChatroom, alice, gin.H{
		"name":        "lounge",
		"description": "everything off-topic",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var view chatroomView
	decodeJSON(t, recorder, &view)
	require.NotEmpty(t, view.Id)
	require.Equal(t, "lounge", view.Name)
	require.Equal(t, alice, view.CreatedBy)

	var stored model.Chatroom
	require.NoError(t, api.DB.Where("id = ?", view.Id).Take(&stored).Error)
	require.Equal(t, "lounge", stored.Name)
}

func TestCreateChatroomRequiresName(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := perform(t, api.CreateChatroom, alice, gin.H{
		"description": "nameless"})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListChatroomsVisibleToEveryone(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")

	perform(t, api.CreateChatroom, alice, gin.H{"name": "lounge"})
	perform(t, api.CreateChatroom, alice, gin.H{"name": "exam prep"})

	// Chatrooms are campus-wide: no membership gate on listing.
	recorder := perform(t, api.ListChatrooms, bob, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var views []chatroomView
	decodeJSON(t, recorder, &views)
	require.Len(t, views, 2)
	// Newest first.
	require.Equal(t, "exam prep", views[0].Name)
	require.Equal(t, "lounge", views[1].Name)
}

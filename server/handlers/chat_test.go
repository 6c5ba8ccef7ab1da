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

func TestConnectedStreamRequiresAcceptedConnection(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")
	surfaceParam := gin.Param{Key: "surface", Value: chat.SurfaceConnected}

	// No connection at all.
	recorder := performWithQuery(t, api.ListMessages, alice, "peer_id="+bob, surfaceParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	recorder = performWithQuery(t, api.SendMessage, alice, "peer_id="+bob, surfaceParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	// A pending request is not a relationship yet.
	connID := utils.TestCreateConnection(t, api.DB, alice, bob, model.ConnectionStatusPending)
	recorder = performWithQuery(t, api.ListMessages, alice, "peer_id="+bob, surfaceParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	require.NoError(t, api.DB.Model(&model.Connection{}).
		Where("id = ?", connID).
		Update("status", model.ConnectionStatusAccepted).Error)

	// Accepted, in both directions of the pair.
	recorder = performWithQuery(t, api.ListMessages, alice, "peer_id="+bob, surfaceParam)
	require.Equal(t, http.StatusOK, recorder.Code)
	recorder = performWithQuery(t, api.ListMessages, bob, "peer_id="+alice, surfaceParam)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGroupStreamRejectsNonMembers(t *testing.T) {
	api := prepareAPI(t)
	creator := utils.TestCreateProfile(t, api.DB, "creator")
	outsider := utils.TestCreateProfile(t, api.DB, "outsider")
	groupID := utils.TestCreateGroup(t, api.DB, creator, "insiders")
	surfaceParam := gin.Param{Key: "surface", Value: chat.SurfaceGroup}

	recorder := performWithQuery(t, api.ListMessages, outsider, "group_id="+groupID, surfaceParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = performWithQuery(t, api.ListMessages, creator, "group_id="+groupID, surfaceParam)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestUnknownChatSurface(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := performWithQuery(t, api.ListMessages, alice, "",
		gin.Param{Key: "surface", Value: "carrier-pigeon"})
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestConnectedSendWithoutPeerIsBadRequest(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := performWithQuery(t, api.SendMessage, alice, "",
		gin.Param{Key: "surface", Value: chat.SurfaceConnected})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

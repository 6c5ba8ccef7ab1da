package handlers

import (
	"net/http"
	"testing"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequestConnectionCreatesRowAndNotification(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")

	recorder := perform(t, api.RequestConnection, alice,
		gin.H{"receiver_id": bob})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var connections int64
	require.NoError(t, api.DB.Model(&model.Connection{}).
		Where("requester_id = ? AND receiver_id = ? AND status = ?",
			alice, bob, model.ConnectionStatusPending).
		Count(&connections).Error)
	require.EqualValues(t, 1, connections)

	var notifications []model.Notification
	require.NoError(t, api.DB.Where("user_id = ?", bob).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, model.NotificationTypeConnectionRequest, notifications[0].Type)
	require.Equal(t, alice, notifications[0].RelatedUserID)
	require.False(t, notifications[0].Read)
}

func TestDuplicatePendingRequestRejected(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")

	recorder := perform(t, api.RequestConnection, alice, gin.H{"receiver_id": bob})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Same direction again, then the reverse direction. Both hit the same
	// unordered pair and are rejected.
	recorder = perform(t, api.RequestConnection, alice, gin.H{"receiver_id": bob})
	require.Equal(t, http.StatusConflict, recorder.Code)
	recorder = perform(t, api.RequestConnection, bob, gin.H{"receiver_id": alice})
	require.Equal(t, http.StatusConflict, recorder.Code)

	var connections int64
	require.NoError(t, api.DB.Model(&model.Connection{}).Count(&connections).Error)
	require.EqualValues(t, 1, connections)
}

func TestRequestConnectionToSelfRejected(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := perform(t, api.RequestConnection, alice, gin.H{"receiver_id": alice})
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRespondConnectionReceiverOnly(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")
	mallory := utils.TestCreateProfile(t, api.DB, "mallory")
	connID := utils.TestCreateConnection(t, api.DB, alice, bob, model.ConnectionStatusPending)

	idParam := gin.Param{Key: "id", Value: connID}

	// Neither the requester nor a third party may resolve the request.
	recorder := perform(t, api.RespondConnection, alice, gin.H{"accept": true}, idParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)
	recorder = perform(t, api.RespondConnection, mallory, gin.H{"accept": true}, idParam)
	require.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = perform(t, api.RespondConnection, bob, gin.H{"accept": true}, idParam)
	require.Equal(t, http.StatusOK, recorder.Code)

	var conn model.Connection
	require.NoError(t, api.DB.Where("id = ?", connID).Take(&conn).Error)
	require.Equal(t, model.ConnectionStatusAccepted, conn.Status)

	// Resolved exactly once.
	recorder = perform(t, api.RespondConnection, bob, gin.H{"accept": false}, idParam)
	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestAcceptedConnectionListSymmetry(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")
	carol := utils.TestCreateProfile(t, api.DB, "carol")
	utils.TestCreateConnection(t, api.DB, alice, bob, model.ConnectionStatusAccepted)

	for caller, expected := range map[string]string{alice: bob, bob: alice} {
		recorder := perform(t, api.ListConnections, caller, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var views []connectionView
		decodeJSON(t, recorder, &views)
		require.Len(t, views, 1)
		require.Equal(t, expected, views[0].Profile.Id)
	}

	// Each other's non-connected list keeps carol and drops the counterpart.
	for caller, connected := range map[string]string{alice: bob, bob: alice} {
		recorder := perform(t, api.ListNonConnected, caller, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var views []profileView
		decodeJSON(t, recorder, &views)
		ids := make([]string, 0, len(views))
		for _, v := range views {
			ids = append(ids, v.Id)
		}
		require.Contains(t, ids, carol)
		require.NotContains(t, ids, connected)
		require.NotContains(t, ids, caller)
	}
}

func TestPendingConnectionStaysNonConnected(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")
	bob := utils.TestCreateProfile(t, api.DB, "bob")
	utils.TestCreateConnection(t, api.DB, alice, bob, model.ConnectionStatusPending)

	for caller, pending := range map[string]string{alice: bob, bob: alice} {
		recorder := perform(t, api.ListNonConnected, caller, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var views []profileView
		decodeJSON(t, recorder, &views)
		ids := make([]string, 0, len(views))
		for _, v := range views {
			ids = append(ids, v.Id)
		}
		require.Contains(t, ids, pending)
	}
}

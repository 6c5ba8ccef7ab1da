package handlers

import (
	"net/http"
	"testing"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testCreateAccount(t *testing.T, api *API, email string) string {
	t.Helper()
	recorder := perform(t, api.SignUp, "", gin.H{
		"email": email, "password": "Strongpass12!"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	var session sessionView
	decodeJSON(t, recorder, &session)
	return session.UserID
}

func TestUpsertProfileDerivesIdentityFromAccount(t *testing.T) {
	api := prepareAPI(t)
	userID := testCreateAccount(t, api, "alice@x.edu")

	recorder := perform(t, api.UpsertProfile, userID, gin.H{
		"full_name":  "Alice Lidell",
		"department": "Mathematics",
		// A payload cannot override who the profile belongs to.
		"email": "mallory@x.edu",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var view profileView
	decodeJSON(t, recorder, &view)
	require.Equal(t, userID, view.Id)
	require.Equal(t, "alice@x.edu", view.Email)
	require.Equal(t, "alice", view.Username)
	require.Equal(t, "Alice Lidell", view.FullName)
}

// Re-submitting profile setup replaces the whole card: fields omitted the
// second time come back empty, not carried over.
func TestUpsertProfileReplacesOnResubmit(t *testing.T) {
	api := prepareAPI(t)
	userID := testCreateAccount(t, api, "alice@x.edu")

	recorder := perform(t, api.UpsertProfile, userID, gin.H{
		"full_name":   "Alice Lidell",
		"department":  "Mathematics",
		"about_me":    "first draft",
		"soft_skills": []string{"listening"},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = perform(t, api.UpsertProfile, userID, gin.H{
		"full_name":  "Alice Lidell",
		"department": "Physics",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	var profile model.Profile
	require.NoError(t, api.DB.Where("id = ?", userID).Take(&profile).Error)
	require.Equal(t, "Physics", profile.Department)
	require.Equal(t, "", profile.AboutMe)
	require.Empty(t, profile.SoftSkills)

	var count int64
	require.NoError(t, api.DB.Model(&model.Profile{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetMyProfileBeforeFirstSetup(t *testing.T) {
	api := prepareAPI(t)
	userID := testCreateAccount(t, api, "alice@x.edu")

	recorder := perform(t, api.GetMyProfile, userID, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	perform(t, api.UpsertProfile, userID, gin.H{"full_name": "Alice Lidell"})

	recorder = perform(t, api.GetMyProfile, userID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetProfileNotFound(t *testing.T) {
	api := prepareAPI(t)
	alice := utils.TestCreateProfile(t, api.DB, "alice")

	recorder := perform(t, api.GetProfile, alice, nil,
		gin.Param{Key: "id", Value: "no-such-id"})
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = perform(t, api.GetProfile, alice, nil,
		gin.Param{Key: "id", Value: alice})
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestListProfilesOrderedByName(t *testing.T) {
	api := prepareAPI(t)
	utils.TestCreateProfile(t, api.DB, "zoe")
	utils.TestCreateProfile(t, api.DB, "alice")

	recorder := perform(t, api.ListProfiles, "whoever", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var views []profileView
	decodeJSON(t, recorder, &views)
	require.Len(t, views, 2)
	require.Equal(t, "alice", views[0].FullName)
	require.Equal(t, "zoe", views[1].FullName)
}

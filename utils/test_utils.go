package utils

import (
	"testing"

	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestCreateProfile inserts a profile with the given display name, does
// sanity checks and returns its id.
func TestCreateProfile(t *testing.T, db *gorm.DB, fullName string) string {
	t.Helper()

	profile := model.Profile{
		Id:       uuid.New().String(),
		Username: fullName,
		FullName: fullName,
		Email:    fullName + "@x.edu",
	}
	require.NoError(t, db.Create(&profile).Error)
	return profile.Id
}

// TestCreateConnection inserts a connection in the requested status and
// returns its id.
func TestCreateConnection(t *testing.T, db *gorm.DB, requesterID string, receiverID string, status model.ConnectionStatus) string {
	t.Helper()

	conn := model.Connection{
		Id:          uuid.New().String(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      status,
	}
	require.NoError(t, db.Create(&conn).Error)
	return conn.Id
}

// TestCreateGroup inserts a group plus its creator membership and returns
// the group id.
func TestCreateGroup(t *testing.T, db *gorm.DB, creatorID string, name string) string {
	t.Helper()

	group := model.Group{
		Id:        uuid.New().String(),
		Name:      name,
		CreatedBy: creatorID,
	}
	require.NoError(t, db.Create(&group).Error)
	require.NoError(t, db.Create(&model.GroupMember{
		Id:      uuid.New().String(),
		GroupID: group.Id,
		UserID:  creatorID,
	}).Error)
	return group.Id
}

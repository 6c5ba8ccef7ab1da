package handlers

import (
	"net/http"
	"strings"

	"github.com/Sameena10-06/community-chat-hub/filestore"
	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type profileInput struct {
	FullName        string   `json:"full_name" binding:"required"`
	Department      string   `json:"department"`
	AboutMe         string   `json:"about_me"`
	SoftSkills      []string `json:"soft_skills"`
	TechnicalSkills []string `json:"technical_skills"`
	Achievements    string   `json:"achievements"`
	AvatarUrl       string   `json:"avatar_url"`
}

type profileView struct {
	Id              string   `json:"id"`
	Username        string   `json:"username"`
	FullName        string   `json:"full_name"`
	Department      string   `json:"department"`
	Email           string   `json:"email"`
	AboutMe         string   `json:"about_me"`
	SoftSkills      []string `json:"soft_skills"`
	TechnicalSkills []string `json:"technical_skills"`
	Achievements    string   `json:"achievements"`
	AvatarUrl       string   `json:"avatar_url"`
}

func toProfileView(p *model.Profile) profileView {
	var view profileView
	copier.Copy(&view, p)
	return view
}

// UpsertProfile creates the caller's profile at first submission and fully
// replaces it afterwards. Identity, username and email always come from the
// account, never from the payload.
func (a *API) UpsertProfile(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	var account model.Account
	if err := a.DB.Where("id = ?", userID).Take(&account).Error; err != nil {
		storeError(c, err)
		return
	}

	profile := model.Profile{
		Id:              userID,
		Username:        strings.Split(account.Email, "@")[0],
		FullName:        input.FullName,
		Department:      input.Department,
		Email:           account.Email,
		AboutMe:         input.AboutMe,
		SoftSkills:      pq.StringArray(input.SoftSkills),
		TechnicalSkills: pq.StringArray(input.TechnicalSkills),
		Achievements:    input.Achievements,
		AvatarUrl:       input.AvatarUrl,
	}

	err := a.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&profile).Error
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProfileView(&profile))
}

// UploadAvatar stores the uploaded image and returns its public URL; the
// client includes the URL in its next profile upsert.
func (a *API) UploadAvatar(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		badRequest(c, "avatar file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer file.Close()

	key := filestore.KeyForUpload(userID, fileHeader.Filename)
	if err := a.Store.Store(key, file, fileHeader.Header.Get("Content-Type")); err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": a.Store.PublicUrl(key)})
}

// GetProfile returns one profile by id.
func (a *API) GetProfile(c *gin.Context) {
	var profile model.Profile
	err := a.DB.Where("id = ?", c.Param("id")).Take(&profile).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "profile not found")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(&profile))
}

// GetMyProfile returns the caller's own profile, 404 before first setup.
func (a *API) GetMyProfile(c *gin.Context) {
	var profile model.Profile
	err := a.DB.Where("id = ?", middlewares.CurrentUserID(c)).Take(&profile).Error
	if err == gorm.ErrRecordNotFound {
		notFound(c, "profile not set up yet")
		return
	}
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileView(&profile))
}

// ListProfiles returns every profile ordered by display name.
func (a *API) ListProfiles(c *gin.Context) {
	var profiles []model.Profile
	if err := a.DB.Order("full_name").Find(&profiles).Error; err != nil {
		storeError(c, err)
		return
	}

	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, toProfileView(&profiles[i]))
	}
	c.JSON(http.StatusOK, views)
}

// ListNonConnected returns every profile that is neither the caller nor a
// counterpart in one of the caller's accepted connections. Pending and
// rejected connections deliberately do not exclude a profile: pending is
// not yet a relationship.
func (a *API) ListNonConnected(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var accepted []model.Connection
	err := a.DB.
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?", userID, userID, model.ConnectionStatusAccepted).
		Find(&accepted).Error
	if err != nil {
		storeError(c, err)
		return
	}

	excluded := []string{userID}
	for _, conn := range accepted {
		if conn.RequesterID == userID {
			excluded = append(excluded, conn.ReceiverID)
		} else {
			excluded = append(excluded, conn.RequesterID)
		}
	}

	var profiles []model.Profile
	if err := a.DB.Where("id NOT IN ?", excluded).Order("full_name").Find(&profiles).Error; err != nil {
		storeError(c, err)
		return
	}

	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		views = append(views, toProfileView(&profiles[i]))
	}
	c.JSON(http.StatusOK, views)
}

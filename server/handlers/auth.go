package handlers

import (
	"net/http"
	"strings"

	"github.com/Sameena10-06/community-chat-hub/auth"
	"github.com/Sameena10-06/community-chat-hub/model"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type signUpInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Username string `json:"username"`
}

type signInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type sessionView struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SignUp creates an account and opens a session for it. The password policy
// is enforced before anything touches the store.
func (a *API) SignUp(c *gin.Context) {
	var input signUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := auth.ValidatePassword(input.Password); err != nil {
		badRequest(c, err.Error())
		return
	}

	var existing model.Account
	result := a.DB.Where("email = ?", input.Email).Take(&existing)
	if result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		storeError(c, err)
		return
	}

	username := input.Username
	if username == "" {
		username = strings.Split(input.Email, "@")[0]
	}

	account := model.Account{
		Id:           uuid.New().String(),
		Email:        input.Email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := a.DB.Create(&account).Error; err != nil {
		// A sign-up racing past the existence check lands on the email
		// unique index instead.
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
			return
		}
		storeError(c, err)
		return
	}

	token, _, err := a.Tokens.GenerateToken(account.Id, account.Email)
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sessionView{
		Token:    token,
		UserID:   account.Id,
		Email:    account.Email,
		Username: account.Username,
	})
}

// SignIn opens a session for an existing account. The response also reports
// whether a profile exists yet, so the client knows to route first-time
// users into profile setup.
func (a *API) SignIn(c *gin.Context) {
	var input signInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	var account model.Account
	result := a.DB.Where("email = ?", input.Email).Take(&account)
	if result.Error != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if err := auth.CheckPassword(account.PasswordHash, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, _, err := a.Tokens.GenerateToken(account.Id, account.Email)
	if err != nil {
		storeError(c, err)
		return
	}

	var profile model.Profile
	profileComplete := false
	if err := a.DB.Where("id = ?", account.Id).Take(&profile).Error; err == nil {
		profileComplete = profile.FullName != ""
	}

	c.JSON(http.StatusOK, gin.H{
		"token":            token,
		"user_id":          account.Id,
		"email":            account.Email,
		"username":         account.Username,
		"profile_complete": profileComplete,
	})
}

// SignOut revokes the current session token. The denylist entry lives as
// long as the token itself could have.
func (a *API) SignOut(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		badRequest(c, "missing session token")
		return
	}

	if err := a.Denylist.Revoke(token, a.Tokens.Duration()); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// Session echoes the authenticated identity back to the caller.
func (a *API) Session(c *gin.Context) {
	userID := middlewares.CurrentUserID(c)

	var account model.Account
	if err := a.DB.Where("id = ?", userID).Take(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			notFound(c, "account not found")
			return
		}
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  account.Id,
		"email":    account.Email,
		"username": account.Username,
	})
}

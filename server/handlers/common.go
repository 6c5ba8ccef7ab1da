// Package handlers holds the REST surface of the application. Every handler
// is a thin translation layer: resolve the caller from the request context,
// run the store queries, publish a change event when a watched table
// mutated, and surface any store error verbatim to the client.
package handlers

import (
	"net/http"
	"strings"

	"github.com/Sameena10-06/community-chat-hub/auth"
	"github.com/Sameena10-06/community-chat-hub/chat"
	"github.com/Sameena10-06/community-chat-hub/filestore"
	"github.com/Sameena10-06/community-chat-hub/stream"
	"github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles the collaborators every handler needs. One instance serves the
// whole router; all fields are safe for concurrent use.
type API struct {
	DB       *gorm.DB
	Feed     *stream.ChangeFeed
	Store    filestore.UploadFileStore
	Tokens   *auth.TokenManager
	Denylist utils.TokenDenylist
	Surfaces map[string]*chat.Conversation
}

func NewAPI(db *gorm.DB, feed *stream.ChangeFeed, store filestore.UploadFileStore, tokens *auth.TokenManager, denylist utils.TokenDenylist) *API {
	return &API{
		DB:       db,
		Feed:     feed,
		Store:    store,
		Tokens:   tokens,
		Denylist: denylist,
		Surfaces: chat.DefaultSurfaces(db, store, feed),
	}
}

// isUniqueViolation reports whether a store error is a postgres unique-index
// violation (SQLSTATE 23505), which surfaces when two inserts race past the
// same existence check.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// storeError reports a failed store operation. Per the product's error
// policy the message is surfaced verbatim and the operation is not retried.
func storeError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

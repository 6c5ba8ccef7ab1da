package main

import (
	"github.com/Sameena10-06/community-chat-hub/server/handlers"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/Sameena10-06/community-chat-hub/stream"
	"github.com/gin-gonic/gin"
)

// AddAuthRoutes registers the unauthenticated session endpoints.
func AddAuthRoutes(rg *gin.RouterGroup, api *handlers.API) {
	auth := rg.Group("/auth")

	auth.POST("/signup", api.SignUp)
	auth.POST("/signin", api.SignIn)
}

// AddAPIRoutes registers every endpoint behind the JWT middleware.
func AddAPIRoutes(rg *gin.RouterGroup, api *handlers.API, feed *stream.ChangeFeed) {
	rg.POST("/auth/signout", api.SignOut)
	rg.GET("/auth/session", api.Session)

	rg.PUT("/profile", api.UpsertProfile)
	rg.GET("/profile", api.GetMyProfile)
	rg.POST("/profile/avatar", api.UploadAvatar)
	rg.GET("/profiles", api.ListProfiles)
	rg.GET("/profiles/:id", api.GetProfile)
	rg.GET("/discover", api.ListNonConnected)

	rg.POST("/connections", api.RequestConnection)
	rg.POST("/connections/:id/respond", api.RespondConnection)
	rg.GET("/connections", api.ListConnections)

	rg.GET("/notifications", api.ListNotifications)
	rg.GET("/notifications/unread_count", api.UnreadCount)
	rg.POST("/notifications/:id/read", api.MarkRead)

	rg.POST("/chat/:surface/messages", api.SendMessage)
	rg.GET("/chat/:surface/messages", api.ListMessages)
	rg.PATCH("/chat/:surface/messages/:id", api.EditMessage)
	rg.DELETE("/chat/:surface/messages/:id", api.UnsendMessage)

	rg.POST("/groups", api.CreateGroup)
	rg.GET("/groups", api.ListGroups)
	rg.DELETE("/groups/:id", api.DeleteGroup)
	rg.GET("/groups/:id/members", api.ListGroupMembers)
	rg.POST("/groups/:id/members", api.AddGroupMembers)
	rg.DELETE("/groups/:id/members/:userId", api.RemoveGroupMember)

	rg.POST("/chatrooms", api.CreateChatroom)
	rg.GET("/chatrooms", api.ListChatrooms)

	// Websocket clients authenticate through the "token" query parameter,
	// handled by the same JWT middleware as the rest of the group.
	rg.GET("/realtime", stream.RealtimeHandler(feed))
}

// rateLimitedGroup wraps a router group with the per-caller limiter.
func rateLimitedGroup(rg *gin.RouterGroup, store *middlewares.LimiterStore) *gin.RouterGroup {
	rg.Use(middlewares.RateLimit(store))
	return rg
}

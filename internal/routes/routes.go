package routes

import (
	"github.com/gin-gonic/gin"

	"souqly_backend/internal/auth"
	"souqly_backend/internal/handlers"
	"souqly_backend/internal/middleware"
)

// Setup mounts every route onto the engine.
func Setup(r *gin.Engine, h *handlers.AppHandlers, tokens *auth.TokenManager) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	h.Health.RegisterRoutes(r)
	r.GET("/ws", h.WebSocket.Serve)

	api := r.Group("/api/v1")

	public := api.Group("")
	h.Products.RegisterPublicRoutes(public)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(tokens))
	h.Conversations.RegisterRoutes(authed)
	h.Notifications.RegisterRoutes(authed)
	h.Products.RegisterRoutes(authed)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"souqly_backend/internal/services"
	"souqly_backend/internal/services/dto"
)

// ConversationHandler exposes the messaging endpoints.
type ConversationHandler struct {
	BaseHandler
	messaging services.MessagingService
}

func NewConversationHandler(messaging services.MessagingService) *ConversationHandler {
	return &ConversationHandler{messaging: messaging}
}

func (h *ConversationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/conversations", h.Create)
	r.GET("/conversations", h.List)
	r.GET("/conversations/:conversationId/messages", h.Messages)
	r.POST("/conversations/:conversationId/messages", h.SendMessage)
}

// Create returns the existing thread for the triple when one exists, so the
// client can always POST without checking first.
func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.CreateConversationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	conv, created, err := h.messaging.StartConversation(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"conversation": conv})
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	convs, err := h.messaging.GetConversations(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// Messages returns the thread history. Fetching marks the caller's incoming
// messages as read.
func (h *ConversationHandler) Messages(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversationId")

	msgs, err := h.messaging.FetchAndMarkRead(c.Request.Context(), conversationID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}
	conversationID := c.Param("conversationId")

	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	msg, err := h.messaging.SendMessage(c.Request.Context(), conversationID, userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

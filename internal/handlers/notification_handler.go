package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"souqly_backend/internal/services"
)

// NotificationHandler exposes the notification feed endpoints.
type NotificationHandler struct {
	BaseHandler
	notifications services.NotificationService
}

func NewNotificationHandler(notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/notifications", h.List)
	r.GET("/notifications/unread-count", h.UnreadCount)
	r.GET("/notifications/stats", h.Stats)
	r.GET("/notifications/type/:type", h.ListByType)
	r.PATCH("/notifications/:notificationId/read", h.MarkAsRead)
	r.PATCH("/notifications/mark-all-read", h.MarkAllAsRead)
	r.DELETE("/notifications/:notificationId", h.Delete)
	r.DELETE("/notifications/type/:type", h.DeleteAllByType)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}
	limit, offset := h.ParsePagination(c)

	list, err := h.notifications.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) ListByType(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}
	limit, offset := h.ParsePagination(c)

	list, err := h.notifications.ListForUserByType(c.Request.Context(), userID, c.Param("type"), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

func (h *NotificationHandler) Stats(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	stats, err := h.notifications.Stats(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	if err := h.notifications.MarkAsRead(c.Request.Context(), c.Param("notificationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllAsRead flips the whole feed, or one type when ?type= is given.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var updated int64
	var err error
	if notifType := c.Query("type"); notifType != "" {
		updated, err = h.notifications.MarkAllAsReadByType(c.Request.Context(), userID, notifType)
	} else {
		updated, err = h.notifications.MarkAllAsRead(c.Request.Context(), userID)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	if err := h.notifications.Delete(c.Request.Context(), c.Param("notificationId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) DeleteAllByType(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	deleted, err := h.notifications.DeleteAllByType(c.Request.Context(), userID, c.Param("type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}

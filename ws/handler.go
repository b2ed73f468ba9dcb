package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"souqly_backend/internal/logger"
)

// UserChecker verifies that a user id belongs to a real account before the
// connection joins the manager.
type UserChecker interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// Envelope is the frame pushed to clients.
type Envelope struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests into managed websocket connections.
type Handler struct {
	manager    *Manager
	users      UserChecker
	sendBuffer int
}

func NewHandler(manager *Manager, users UserChecker, sendBuffer int) *Handler {
	return &Handler{
		manager:    manager,
		users:      users,
		sendBuffer: sendBuffer,
	}
}

// Serve handles GET /ws?user_id=<uuid>. A missing id is rejected before the
// upgrade; an unknown user gets a policy-violation close frame after it, so
// browser clients see a clean close code.
func (h *Handler) Serve(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	exists, err := h.users.Exists(c.Request.Context(), userID)
	if err != nil {
		logger.Error("websocket user lookup failed", "user_id", userID, "error", err)
		h.closeWithPolicyViolation(conn, "user lookup failed")
		return
	}
	if !exists {
		h.closeWithPolicyViolation(conn, "unknown user")
		return
	}

	client := NewClient(userID, conn, h.manager, h.sendBuffer)
	h.manager.Register(client)

	go client.WritePump()
	go client.ReadPump()

	client.trySend(Envelope{
		Type:    "connected",
		Message: "Connecté aux notifications en temps réel",
	})
}

func (h *Handler) closeWithPolicyViolation(conn *websocket.Conn, reason string) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason)
	conn.WriteMessage(websocket.CloseMessage, msg)
	conn.Close()
}

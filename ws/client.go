package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"souqly_backend/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one live websocket connection owned by a single user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan any

	manager *Manager

	mu     sync.Mutex
	closed bool
}

func NewClient(userID string, conn *websocket.Conn, manager *Manager, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan any, sendBuffer),
		manager: manager,
	}
}

// trySend queues a payload without blocking. A full buffer means the reader
// has stalled, so the payload is dropped. The closed flag is checked under
// the same mutex closeSend holds, so a deliverer holding a stale pointer can
// never hit a closed channel.
func (c *Client) trySend(payload any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		logger.Warn("websocket send buffer full, dropping payload", "user_id", c.UserID)
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// inboundFrame is the only client-to-server payload the protocol accepts.
type inboundFrame struct {
	Action         string `json:"action"`
	To             string `json:"to"`
	ConversationID string `json:"conversationId"`
}

// TypingEvent is relayed to the other party of a conversation while the
// sender is typing. Never persisted.
type TypingEvent struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId"`
	From           string `json:"from"`
}

// ReadPump consumes inbound frames. Typing indicators are forwarded best
// effort to the addressed user, everything else is dropped. The pump also
// keeps pong handling and close detection alive.
func (c *Client) ReadPump() {
	defer func() {
		c.manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read error", "user_id", c.UserID, "error", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		switch frame.Action {
		case "typing":
			if frame.To != "" {
				c.manager.DeliverToUser(frame.To, TypingEvent{
					Type:           "typing",
					ConversationID: frame.ConversationID,
					From:           c.UserID,
				})
			}
		default:
			logger.Debug("websocket frame dropped",
				"user_id", c.UserID, "action", frame.Action)
		}
	}
}

// WritePump serializes queued payloads onto the connection and keeps the
// ping timer running.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(payload); err != nil {
				logger.Warn("websocket write error", "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

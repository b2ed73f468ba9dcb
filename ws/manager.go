package ws

import (
	"context"
	"sync"

	"souqly_backend/internal/logger"
)

// Manager tracks one live connection per user and routes outbound payloads.
// A reconnect replaces the previous connection for that user.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister events until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case client := <-m.unregister:
			m.removeClient(client)
		case <-ctx.Done():
			m.closeAll()
			return
		}
	}
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	old, replaced := m.clients[client.UserID]
	m.clients[client.UserID] = client
	m.mu.Unlock()

	if replaced {
		old.closeSend()
	}
	logger.Info("websocket client connected", "user_id", client.UserID, "replaced", replaced)
}

// removeClient only evicts the map entry when it still points at the same
// client. A slow unregister from a replaced connection must not take down
// the fresh one.
func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	current, ok := m.clients[client.UserID]
	if ok && current == client {
		delete(m.clients, client.UserID)
	}
	m.mu.Unlock()

	client.closeSend()
	logger.Info("websocket client disconnected", "user_id", client.UserID)
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	for _, client := range m.clients {
		client.closeSend()
	}
	m.clients = make(map[string]*Client)
	m.mu.Unlock()
}

// Register hands a new connection to the run loop.
func (m *Manager) Register(client *Client) {
	m.register <- client
}

// Unregister removes a connection. Safe to call more than once per client.
func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

// DeliverToUser queues a payload for the user's connection. It returns false
// when the user is offline or their send buffer is full, and never blocks.
func (m *Manager) DeliverToUser(userID string, payload any) bool {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return client.trySend(payload)
}

// IsConnected reports whether the user currently has a live connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	_, ok := m.clients[userID]
	m.mu.RUnlock()
	return ok
}

// ClientCount returns the number of connected users.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	n := len(m.clients)
	m.mu.RUnlock()
	return n
}

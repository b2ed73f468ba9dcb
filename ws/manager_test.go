package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go m.Run(ctx)
	return m
}

func waitOnline(t *testing.T, m *Manager, userID string) {
	t.Helper()
	require.Eventually(t, func() bool {
		return m.IsConnected(userID)
	}, time.Second, 5*time.Millisecond)
}

func TestManagerRegisterAndDeliver(t *testing.T) {
	m := startManager(t)

	client := NewClient("user-1", nil, m, 8)
	m.Register(client)
	waitOnline(t, m, "user-1")

	ok := m.DeliverToUser("user-1", Envelope{Type: "notification"})
	require.True(t, ok)

	payload := <-client.Send
	env, isEnv := payload.(Envelope)
	require.True(t, isEnv)
	assert.Equal(t, "notification", env.Type)
}

func TestManagerDeliverToOfflineUser(t *testing.T) {
	m := startManager(t)

	assert.False(t, m.DeliverToUser("nobody", Envelope{Type: "notification"}))
	assert.False(t, m.IsConnected("nobody"))
}

func TestManagerDeliverDropsWhenBufferFull(t *testing.T) {
	m := startManager(t)

	client := NewClient("user-1", nil, m, 1)
	m.Register(client)
	waitOnline(t, m, "user-1")

	require.True(t, m.DeliverToUser("user-1", "first"))
	assert.False(t, m.DeliverToUser("user-1", "second"))
}

func TestManagerReconnectReplacesClient(t *testing.T) {
	m := startManager(t)

	first := NewClient("user-1", nil, m, 8)
	m.Register(first)
	waitOnline(t, m, "user-1")

	second := NewClient("user-1", nil, m, 8)
	m.Register(second)

	require.Eventually(t, func() bool {
		return m.DeliverToUser("user-1", "ping") && len(second.Send) > 0
	}, time.Second, 5*time.Millisecond)

	// The replaced client's send channel is closed so its write pump exits.
	// Drain anything delivered before the replacement took effect.
	require.Eventually(t, func() bool {
		select {
		case _, open := <-first.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestManagerStaleUnregisterKeepsFreshClient(t *testing.T) {
	m := startManager(t)

	first := NewClient("user-1", nil, m, 8)
	m.Register(first)
	waitOnline(t, m, "user-1")

	second := NewClient("user-1", nil, m, 8)
	m.Register(second)

	// The old connection's read pump fires a late unregister. It must not
	// evict the replacement.
	m.Unregister(first)

	require.Eventually(t, func() bool {
		return m.ClientCount() == 1
	}, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsConnected("user-1"))
	assert.True(t, m.DeliverToUser("user-1", "still here"))
}

func TestManagerUnregisterRemovesClient(t *testing.T) {
	m := startManager(t)

	client := NewClient("user-1", nil, m, 8)
	m.Register(client)
	waitOnline(t, m, "user-1")

	m.Unregister(client)
	require.Eventually(t, func() bool {
		return !m.IsConnected("user-1")
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, m.ClientCount())
}

func TestDeliverToDepartedClientDoesNotPanic(t *testing.T) {
	m := startManager(t)

	client := NewClient("user-1", nil, m, 8)
	m.Register(client)
	waitOnline(t, m, "user-1")

	m.Unregister(client)
	require.Eventually(t, func() bool {
		return !m.IsConnected("user-1")
	}, time.Second, 5*time.Millisecond)

	// A deliverer that resolved the client pointer just before the
	// unregister still calls trySend on the departed client. That must be
	// a dropped payload, never a send on a closed channel.
	assert.NotPanics(t, func() {
		assert.False(t, client.trySend("late payload"))
	})
	assert.False(t, m.DeliverToUser("user-1", "after close"))
}

func TestManagerClientCount(t *testing.T) {
	m := startManager(t)

	m.Register(NewClient("a", nil, m, 8))
	m.Register(NewClient("b", nil, m, 8))
	waitOnline(t, m, "a")
	waitOnline(t, m, "b")

	assert.Equal(t, 2, m.ClientCount())
}

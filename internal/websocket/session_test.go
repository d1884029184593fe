package websocket

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/jossyfresh/EduAssist/internal/model"

	"github.com/stretchr/testify/assert"
)

// fakeStore counts persistence calls and can be told to fail.
type fakeStore struct {
	mu      sync.Mutex
	calls   int
	failing bool
	nextID  uint
}

func (f *fakeStore) CreateMessage(groupID uint, senderID, content string) (*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing {
		return nil, errors.New("database unavailable")
	}
	f.nextID++
	return &model.Message{ID: f.nextID, GroupID: groupID, SenderID: senderID, Content: content}, nil
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestSessions(store *fakeStore) (*SessionManager, *Registry) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())
	return NewSessionManager(registry, dispatcher, store), registry
}

func TestSessionConnectRegistersClient(t *testing.T) {
	sessions, registry := newTestSessions(&fakeStore{})
	client := newFakeClient(1, "u1")

	sessions.OnConnect(client)

	assert.Len(t, registry.ConnectionsForGroup(1), 1)
	assert.Len(t, registry.ConnectionsForUser("u1"), 1)
}

func TestSessionMessagePersistsThenBroadcasts(t *testing.T) {
	store := &fakeStore{}
	sessions, _ := newTestSessions(store)

	sender := newFakeClient(7, "u1")
	peer := newFakeClient(7, "u2")
	sessions.OnConnect(sender)
	sessions.OnConnect(peer)

	sessions.OnMessage(sender, "hello group")

	assert.Equal(t, 1, store.callCount())

	// Both the sender and the peer receive the stored message.
	for _, c := range []*fakeClient{sender, peer} {
		frames := c.received()
		assert.Len(t, frames, 1)

		var event Event
		assert.NoError(t, json.Unmarshal(frames[0], &event))
		assert.Equal(t, EventMessage, event.Type)
		assert.Equal(t, "hello group", event.Content)
		assert.Equal(t, "u1", event.SenderID)
		assert.NotZero(t, event.ID)
	}
}

func TestSessionStoreFailureReachesOriginatorOnly(t *testing.T) {
	store := &fakeStore{failing: true}
	sessions, _ := newTestSessions(store)

	sender := newFakeClient(7, "u1")
	peer := newFakeClient(7, "u2")
	sessions.OnConnect(sender)
	sessions.OnConnect(peer)

	sessions.OnMessage(sender, "doomed")

	frames := sender.received()
	assert.Len(t, frames, 1)

	var event Event
	assert.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, EventError, event.Type)

	assert.Empty(t, peer.received(), "peers must not see anything when persistence fails")
}

func TestSessionTypingSignalSkipsPersistence(t *testing.T) {
	store := &fakeStore{}
	sessions, _ := newTestSessions(store)

	sender := newFakeClient(7, "u1")
	peer := newFakeClient(7, "u2")
	sessions.OnConnect(sender)
	sessions.OnConnect(peer)

	sessions.OnMessage(sender, `{"type":"typing","is_typing":true}`)

	assert.Equal(t, 0, store.callCount())

	frames := peer.received()
	assert.Len(t, frames, 1)

	var event Event
	assert.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, EventTyping, event.Type)
	assert.Equal(t, "true", event.Content)
}

func TestSessionReadSignalSkipsPersistence(t *testing.T) {
	store := &fakeStore{}
	sessions, _ := newTestSessions(store)

	sender := newFakeClient(7, "u1")
	peer := newFakeClient(7, "u2")
	sessions.OnConnect(sender)
	sessions.OnConnect(peer)

	sessions.OnMessage(sender, `{"type":"read","message_id":33}`)

	assert.Equal(t, 0, store.callCount())

	frames := peer.received()
	assert.Len(t, frames, 1)

	var event Event
	assert.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, EventRead, event.Type)
	assert.Equal(t, "33", event.Content)
}

func TestSessionJSONChatTextStillPersists(t *testing.T) {
	store := &fakeStore{}
	sessions, _ := newTestSessions(store)

	sender := newFakeClient(7, "u1")
	sessions.OnConnect(sender)

	// Braces alone do not make a control signal.
	sessions.OnMessage(sender, `{"note":"just chat that happens to be json"}`)

	assert.Equal(t, 1, store.callCount())
}

func TestSessionDisconnectDeregisters(t *testing.T) {
	sessions, registry := newTestSessions(&fakeStore{})
	client := newFakeClient(1, "u1")

	sessions.OnConnect(client)
	sessions.OnDisconnect(client)

	assert.Equal(t, 0, registry.GroupCount())
	assert.Equal(t, 0, registry.UserCount())

	// A second disconnect from another exit path is harmless.
	sessions.OnDisconnect(client)
	assert.Equal(t, 0, registry.GroupCount())
}

func TestSessionFullLifecycle(t *testing.T) {
	store := &fakeStore{}
	sessions, registry := newTestSessions(store)

	u1a := newFakeClient(7, "u1")
	u1b := newFakeClient(7, "u1") // second device, same user
	u2 := newFakeClient(7, "u2")

	sessions.OnConnect(u1a)
	sessions.OnConnect(u1b)
	sessions.OnConnect(u2)
	assert.Len(t, registry.ConnectionsForGroup(7), 3)
	assert.Len(t, registry.ConnectionsForUser("u1"), 2)

	sessions.OnMessage(u2, "first")
	sessions.OnMessage(u1a, "second")

	for _, c := range []*fakeClient{u1a, u1b, u2} {
		assert.Len(t, c.received(), 2)
	}

	sessions.OnDisconnect(u1a)
	sessions.OnMessage(u2, "third")

	assert.Len(t, u1a.received(), 2, "deregistered connection receives nothing more")
	assert.Len(t, u1b.received(), 3)

	sessions.OnDisconnect(u1b)
	sessions.OnDisconnect(u2)
	assert.Equal(t, 0, registry.GroupCount())
	assert.Equal(t, 0, registry.UserCount())
	assert.Equal(t, 3, store.callCount())
}

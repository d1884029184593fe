package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/pkg/config"

	"github.com/stretchr/testify/assert"
)

func testWSConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		SendBufferSize:      8,
		SendRetryCount:      2,
		SendRetryIntervalMs: 10,
	}
}

func TestBroadcastToGroupReachesAllMembers(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	clients := []*fakeClient{
		newFakeClient(7, "u1"),
		newFakeClient(7, "u2"),
		newFakeClient(7, "u3"),
	}
	for _, c := range clients {
		registry.Register(c)
	}
	outsider := newFakeClient(8, "u4")
	registry.Register(outsider)

	message := &model.Message{ID: 42, GroupID: 7, SenderID: "u1", Content: "hello", CreatedAt: time.Now()}
	dispatcher.BroadcastToGroup(NewMessageEvent(message))

	for _, c := range clients {
		frames := c.received()
		assert.Len(t, frames, 1, "client %s should receive the event", c.UserID())

		var event Event
		assert.NoError(t, json.Unmarshal(frames[0], &event))
		assert.Equal(t, EventMessage, event.Type)
		assert.Equal(t, uint(42), event.ID)
		assert.Equal(t, "hello", event.Content)
	}
	assert.Empty(t, outsider.received(), "other groups must not see the event")
}

func TestBroadcastSerializesOnce(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	c1 := newFakeClient(1, "u1")
	c2 := newFakeClient(1, "u2")
	registry.Register(c1)
	registry.Register(c2)

	dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: 1, GroupID: 1, SenderID: "u1", Content: "x"}))

	assert.Equal(t, c1.received(), c2.received(), "all recipients get identical bytes")
}

func TestBroadcastSkipsFailedRecipient(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	healthy1 := newFakeClient(1, "u1")
	stuck := newFakeClient(1, "u2")
	stuck.failFor = 100
	healthy2 := newFakeClient(1, "u3")

	registry.Register(healthy1)
	registry.Register(stuck)
	registry.Register(healthy2)

	dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: 5, GroupID: 1, SenderID: "u1", Content: "hi"}))

	// Healthy recipients are served regardless of the stuck one.
	assert.Len(t, healthy1.received(), 1)
	assert.Len(t, healthy2.received(), 1)

	// The stuck client is retried and eventually closed.
	assert.Eventually(t, stuck.isClosed, time.Second, 10*time.Millisecond)
	assert.Empty(t, stuck.received())
}

func TestTrySendRetrySucceedsAfterDrain(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	client := newFakeClient(1, "u1")
	client.failFor = 1 // first attempt fails, first retry succeeds
	registry.Register(client)

	dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: 9, GroupID: 1, SenderID: "u1", Content: "late"}))

	assert.Eventually(t, func() bool {
		return len(client.received()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.False(t, client.isClosed())
}

func TestSendToUserTargetsEveryConnection(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	// Same user connected to two groups.
	conn1 := newFakeClient(1, "u1")
	conn2 := newFakeClient(2, "u1")
	other := newFakeClient(1, "u2")
	registry.Register(conn1)
	registry.Register(conn2)
	registry.Register(other)

	dispatcher.SendToUser(NewErrorEvent(1, "boom"), "u1")

	assert.Len(t, conn1.received(), 1)
	assert.Len(t, conn2.received(), 1)
	assert.Empty(t, other.received())
}

func TestBroadcastTypingEvent(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	client := newFakeClient(3, "u1")
	registry.Register(client)

	dispatcher.BroadcastTyping(3, "u2", true)

	frames := client.received()
	assert.Len(t, frames, 1)

	var event Event
	assert.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, EventTyping, event.Type)
	assert.Equal(t, "u2", event.SenderID)
	assert.Equal(t, "true", event.Content)
}

func TestBroadcastReadReceiptEvent(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	client := newFakeClient(3, "u1")
	registry.Register(client)

	dispatcher.BroadcastReadReceipt(3, "u2", 17)

	frames := client.received()
	assert.Len(t, frames, 1)

	var event Event
	assert.NoError(t, json.Unmarshal(frames[0], &event))
	assert.Equal(t, EventRead, event.Type)
	assert.Equal(t, "17", event.Content)
}

func TestBroadcastPreservesOrderThroughFullBuffer(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	client := newFakeClient(1, "u1")
	client.failFor = 1 // first enqueue overflows, retries succeed
	registry.Register(client)

	dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: 1, GroupID: 1, SenderID: "u2", Content: "first"}))
	dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: 2, GroupID: 1, SenderID: "u2", Content: "second"}))

	assert.Eventually(t, func() bool {
		return len(client.received()) == 2
	}, time.Second, 10*time.Millisecond)

	frames := client.received()
	for i, frame := range frames {
		var event Event
		assert.NoError(t, json.Unmarshal(frame, &event))
		assert.Equal(t, uint(i+1), event.ID, "retried frame must not fall behind later broadcasts")
	}
	assert.False(t, client.isClosed())
}

func TestBroadcastPreservesOrderPerConnection(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry, testWSConfig())

	client := newFakeClient(1, "u1")
	registry.Register(client)

	for i := 1; i <= 5; i++ {
		dispatcher.BroadcastToGroup(NewMessageEvent(&model.Message{ID: uint(i), GroupID: 1, SenderID: "u2", Content: "m"}))
	}

	frames := client.received()
	assert.Len(t, frames, 5)
	for i, frame := range frames {
		var event Event
		assert.NoError(t, json.Unmarshal(frame, &event))
		assert.Equal(t, uint(i+1), event.ID)
	}
}

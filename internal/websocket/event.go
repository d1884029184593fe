package websocket

import (
	"strconv"
	"time"

	"github.com/jossyfresh/EduAssist/internal/model"
)

type EventType string

const (
	EventMessage EventType = "message"
	EventTyping  EventType = "typing"
	EventRead    EventType = "read"
	EventError   EventType = "error"
)

// Event is the single wire shape pushed to websocket clients. It is
// constructed once per dispatch, never mutated afterwards, and serialized
// identically to every recipient of a broadcast.
type Event struct {
	Type      EventType `json:"type"`
	ID        uint      `json:"id,omitempty"` // message id, for message events
	GroupID   uint      `json:"group_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	FileURL   string    `json:"file_url,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageEvent wraps a stored message into its broadcast form.
func NewMessageEvent(m *model.Message) *Event {
	return &Event{
		Type:      EventMessage,
		ID:        m.ID,
		GroupID:   m.GroupID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		FileURL:   m.FileURL,
		Timestamp: m.CreatedAt,
	}
}

// NewTypingEvent builds an ephemeral typing indicator. Not persisted.
func NewTypingEvent(groupID uint, userID string, isTyping bool) *Event {
	return &Event{
		Type:      EventTyping,
		GroupID:   groupID,
		SenderID:  userID,
		Content:   strconv.FormatBool(isTyping),
		Timestamp: time.Now(),
	}
}

// NewReadReceiptEvent builds an ephemeral read receipt. Not persisted.
func NewReadReceiptEvent(groupID uint, userID string, messageID uint) *Event {
	return &Event{
		Type:      EventRead,
		GroupID:   groupID,
		SenderID:  userID,
		Content:   strconv.FormatUint(uint64(messageID), 10),
		Timestamp: time.Now(),
	}
}

// NewErrorEvent reports a failure back to a single originating connection.
func NewErrorEvent(groupID uint, detail string) *Event {
	return &Event{
		Type:      EventError,
		GroupID:   groupID,
		Content:   detail,
		Timestamp: time.Now(),
	}
}

package interfaces

import "github.com/jossyfresh/EduAssist/internal/model"

// Client is one live websocket session registered with the fan-out core.
// The group and user identity are fixed when the connection is accepted.
type Client interface {
	GroupID() uint
	UserID() string
	// QueueBytes enqueues a frame without blocking. It returns an error
	// if the client's send buffer is full or the client is closed.
	QueueBytes(data []byte) error
	Close()
}

// MessageStore persists inbound chat text before it is broadcast.
// service.ChatService implements it.
type MessageStore interface {
	CreateMessage(groupID uint, senderID, content string) (*model.Message, error)
}

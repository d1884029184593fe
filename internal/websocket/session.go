package websocket

import (
	"encoding/json"
	"strings"

	"github.com/jossyfresh/EduAssist/internal/interfaces"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

// inboundSignal is the optional JSON control form a client may send for
// ephemeral events. Anything that does not parse as one is treated as
// plain chat text.
type inboundSignal struct {
	Type      string `json:"type"`
	IsTyping  bool   `json:"is_typing"`
	MessageID uint   `json:"message_id"`
}

// SessionManager binds transport accept/receive/close events to the
// registry and dispatcher, and bridges inbound text to the message store.
// One instance serves every connection in the process.
type SessionManager struct {
	registry   *Registry
	dispatcher *Dispatcher
	store      interfaces.MessageStore
}

func NewSessionManager(registry *Registry, dispatcher *Dispatcher, store interfaces.MessageStore) *SessionManager {
	return &SessionManager{
		registry:   registry,
		dispatcher: dispatcher,
		store:      store,
	}
}

// OnConnect registers an accepted connection; from here on it is a valid
// broadcast target for its group and user.
func (s *SessionManager) OnConnect(client interfaces.Client) {
	s.registry.Register(client)
	logger.L.Info("Client connected",
		zap.Uint("groupID", client.GroupID()),
		zap.String("userID", client.UserID()))
}

// OnMessage handles one inbound text frame. Chat text is persisted before
// any broadcast: if the store fails, the error goes back to the originating
// connection only and nothing reaches the group. Typing and read signals
// skip persistence entirely.
func (s *SessionManager) OnMessage(client interfaces.Client, text string) {
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		var signal inboundSignal
		if err := json.Unmarshal([]byte(text), &signal); err == nil {
			switch signal.Type {
			case string(EventTyping):
				s.dispatcher.BroadcastTyping(client.GroupID(), client.UserID(), signal.IsTyping)
				return
			case string(EventRead):
				s.dispatcher.BroadcastReadReceipt(client.GroupID(), client.UserID(), signal.MessageID)
				return
			}
		}
	}

	message, err := s.store.CreateMessage(client.GroupID(), client.UserID(), text)
	if err != nil {
		logger.L.Error("Failed to persist inbound message",
			zap.Uint("groupID", client.GroupID()),
			zap.String("userID", client.UserID()),
			zap.Error(err))
		s.sendError(client, "failed to save message")
		return
	}

	s.dispatcher.BroadcastToGroup(NewMessageEvent(message))
}

// OnDisconnect removes the connection from the registry. Idempotent, so
// every exit path may call it without coordination.
func (s *SessionManager) OnDisconnect(client interfaces.Client) {
	s.registry.Deregister(client)
	logger.L.Info("Client disconnected",
		zap.Uint("groupID", client.GroupID()),
		zap.String("userID", client.UserID()))
}

func (s *SessionManager) sendError(client interfaces.Client, detail string) {
	data, err := json.Marshal(NewErrorEvent(client.GroupID(), detail))
	if err != nil {
		return
	}
	if err := client.QueueBytes(data); err != nil {
		logger.L.Debug("Failed to deliver error event",
			zap.String("userID", client.UserID()),
			zap.Error(err))
	}
}

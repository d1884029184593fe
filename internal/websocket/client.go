package websocket

import (
	"errors"
	"sync"
	"time"

	"github.com/jossyfresh/EduAssist/pkg/config"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	defaultWriteWait      = 10 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultMaxMessageSize = 4096
	defaultSendBuffer     = 256
)

var (
	ErrSendBufferFull = errors.New("client send buffer is full")
	ErrClientClosed   = errors.New("client is closed")
)

// Client wraps one gorilla websocket connection bound to a group and a
// user. WritePump is the sole writer to the socket, which gives every
// connection in-order delivery of the events queued for it.
type Client struct {
	groupID uint
	userID  string
	conn    *websocket.Conn

	send   chan []byte
	mu     sync.Mutex
	closed bool

	sessions *SessionManager

	writeWait      time.Duration
	pongWait       time.Duration
	maxMessageSize int64
}

func NewClient(groupID uint, userID string, conn *websocket.Conn, sessions *SessionManager, wsConfig config.WebSocketConfig) *Client {
	bufSize := wsConfig.SendBufferSize
	if bufSize <= 0 {
		bufSize = defaultSendBuffer
	}
	writeWait := time.Duration(wsConfig.WriteWaitSeconds) * time.Second
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}
	pongWait := time.Duration(wsConfig.PongWaitSeconds) * time.Second
	if pongWait <= 0 {
		pongWait = defaultPongWait
	}
	maxMessageSize := int64(wsConfig.MaxMessageSize)
	if maxMessageSize <= 0 {
		maxMessageSize = defaultMaxMessageSize
	}

	return &Client{
		groupID:        groupID,
		userID:         userID,
		conn:           conn,
		send:           make(chan []byte, bufSize),
		sessions:       sessions,
		writeWait:      writeWait,
		pongWait:       pongWait,
		maxMessageSize: maxMessageSize,
	}
}

func (c *Client) GroupID() uint  { return c.groupID }
func (c *Client) UserID() string { return c.userID }

// QueueBytes enqueues one frame for the write pump without blocking.
func (c *Client) QueueBytes(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close shuts the send channel and the underlying connection. Safe to call
// from any goroutine and any number of times.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
	_ = c.conn.Close()
}

// ReadPump consumes inbound frames until the transport reports closure or
// error, then runs disconnect cleanup exactly once per exit path.
func (c *Client) ReadPump() {
	defer func() {
		c.sessions.OnDisconnect(c)
		c.Close()
	}()

	c.conn.SetReadLimit(c.maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.L.Warn("Unexpected websocket close",
					zap.String("userID", c.userID),
					zap.Uint("groupID", c.groupID),
					zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			logger.L.Debug("Ignoring non-text frame",
				zap.Int("messageType", messageType),
				zap.String("userID", c.userID))
			continue
		}
		c.sessions.OnMessage(c, string(data))
	}
}

// WritePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings.
func (c *Client) WritePump() {
	pingPeriod := (c.pongWait * 9) / 10
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.L.Debug("Write failed, closing connection",
					zap.String("userID", c.userID),
					zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

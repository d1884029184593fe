package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jossyfresh/EduAssist/internal/interfaces"
	"github.com/jossyfresh/EduAssist/pkg/config"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

// Dispatcher fans one event out to every connection registered for its
// target. Each recipient send is isolated: a dead or slow socket never
// blocks delivery to the rest or surfaces an error to the caller. Frames
// that overflow a recipient's buffer go into a per-client backlog drained
// by a single goroutine, so each connection still sees events in the order
// they were broadcast.
type Dispatcher struct {
	registry *Registry

	retryCount    int
	retryInterval time.Duration

	mu       sync.Mutex
	backlogs map[interfaces.Client][][]byte
}

func NewDispatcher(registry *Registry, wsConfig config.WebSocketConfig) *Dispatcher {
	retryCount := wsConfig.SendRetryCount
	if retryCount <= 0 {
		retryCount = 3
		logger.L.Warn("Invalid send retry count, using default", zap.Int("default", retryCount))
	}

	retryInterval := time.Duration(wsConfig.SendRetryIntervalMs) * time.Millisecond
	if retryInterval <= 0 {
		retryInterval = 100 * time.Millisecond
		logger.L.Warn("Invalid send retry interval, using default", zap.Duration("default", retryInterval))
	}

	return &Dispatcher{
		registry:      registry,
		retryCount:    retryCount,
		retryInterval: retryInterval,
		backlogs:      make(map[interfaces.Client][][]byte),
	}
}

// BroadcastToGroup delivers the event to every connection in its group.
// The event is serialized once; recipients all receive identical bytes.
func (d *Dispatcher) BroadcastToGroup(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.L.Error("Failed to marshal event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	for _, client := range d.registry.ConnectionsForGroup(event.GroupID) {
		d.trySend(client, data)
	}
}

// SendToUser delivers the event to every connection of a single user.
func (d *Dispatcher) SendToUser(event *Event, userID string) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.L.Error("Failed to marshal event", zap.String("type", string(event.Type)), zap.Error(err))
		return
	}

	for _, client := range d.registry.ConnectionsForUser(userID) {
		d.trySend(client, data)
	}
}

// BroadcastTyping pushes an ephemeral typing indicator to the group.
func (d *Dispatcher) BroadcastTyping(groupID uint, userID string, isTyping bool) {
	d.BroadcastToGroup(NewTypingEvent(groupID, userID, isTyping))
}

// BroadcastReadReceipt pushes an ephemeral read receipt to the group.
func (d *Dispatcher) BroadcastReadReceipt(groupID uint, userID string, messageID uint) {
	d.BroadcastToGroup(NewReadReceiptEvent(groupID, userID, messageID))
}

// trySend enqueues the frame for one recipient. If the recipient already
// has a backlog, the frame joins it so the connection sees events in
// broadcast order. On a full buffer the frame opens a backlog and the
// bounded retry runs on the drain goroutine, so a stalled peer cannot hold
// up the broadcast loop.
func (d *Dispatcher) trySend(client interfaces.Client, data []byte) {
	d.mu.Lock()
	if queue, ok := d.backlogs[client]; ok {
		d.backlogs[client] = append(queue, data)
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	if err := client.QueueBytes(data); err == nil {
		return
	}

	d.mu.Lock()
	if queue, ok := d.backlogs[client]; ok {
		// A drain started since the check above; stay behind it.
		d.backlogs[client] = append(queue, data)
		d.mu.Unlock()
		return
	}
	d.backlogs[client] = [][]byte{data}
	d.mu.Unlock()

	go d.drainBacklog(client)
}

// drainBacklog retries the client's queued frames one at a time, oldest
// first. A client that stays stuck through every retry of a frame is
// closed, its backlog discarded, and left for disconnect cleanup.
func (d *Dispatcher) drainBacklog(client interfaces.Client) {
	for {
		d.mu.Lock()
		queue := d.backlogs[client]
		if len(queue) == 0 {
			delete(d.backlogs, client)
			d.mu.Unlock()
			return
		}
		data := queue[0]
		d.mu.Unlock()

		if !d.retryFrame(client, data) {
			logger.L.Error("Client send buffer still full after retries, closing connection",
				zap.String("userID", client.UserID()),
				zap.Int("attempts", d.retryCount))
			client.Close()
			d.mu.Lock()
			delete(d.backlogs, client)
			d.mu.Unlock()
			return
		}

		d.mu.Lock()
		d.backlogs[client] = d.backlogs[client][1:]
		d.mu.Unlock()
	}
}

func (d *Dispatcher) retryFrame(client interfaces.Client, data []byte) bool {
	for i := 0; i < d.retryCount; i++ {
		logger.L.Warn("Client send buffer full, retry attempt",
			zap.String("userID", client.UserID()),
			zap.Uint("groupID", client.GroupID()),
			zap.Int("attempt", i+1))
		time.Sleep(d.retryInterval)
		if err := client.QueueBytes(data); err == nil {
			return true
		}
	}
	return false
}

package websocket

import (
	"sync"

	"github.com/jossyfresh/EduAssist/internal/interfaces"
)

// Registry tracks which live connections belong to which chat group and
// which user. It is the only state shared between session goroutines, so
// every read and mutation takes the lock. A single instance is constructed
// at startup and injected everywhere it is needed.
type Registry struct {
	mu     sync.RWMutex
	groups map[uint][]interfaces.Client
	users  map[string][]interfaces.Client
}

func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[uint][]interfaces.Client),
		users:  make(map[string][]interfaces.Client),
	}
}

// Register inserts the client into both maps. Registering the same client
// twice is a no-op, so a connection can never receive duplicate deliveries.
func (r *Registry) Register(client interfaces.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups[client.GroupID()] = appendUnique(r.groups[client.GroupID()], client)
	r.users[client.UserID()] = appendUnique(r.users[client.UserID()], client)
}

// Deregister removes the client from both maps, pruning a key entirely once
// its list empties. Unknown clients and already-removed clients are a no-op,
// so cleanup is safe to run from every exit path.
func (r *Registry) Deregister(client interfaces.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	groupID := client.GroupID()
	if remaining := remove(r.groups[groupID], client); len(remaining) == 0 {
		delete(r.groups, groupID)
	} else {
		r.groups[groupID] = remaining
	}

	userID := client.UserID()
	if remaining := remove(r.users[userID], client); len(remaining) == 0 {
		delete(r.users, userID)
	} else {
		r.users[userID] = remaining
	}
}

// ConnectionsForGroup returns a snapshot of the group's live connections.
// An unknown group yields an empty slice, never an error.
func (r *Registry) ConnectionsForGroup(groupID uint) []interfaces.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot(r.groups[groupID])
}

// ConnectionsForUser returns a snapshot of one user's live connections.
func (r *Registry) ConnectionsForUser(userID string) []interfaces.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return snapshot(r.users[userID])
}

// GroupCount reports how many groups currently have at least one connection.
func (r *Registry) GroupCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}

// UserCount reports how many users currently have at least one connection.
func (r *Registry) UserCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func appendUnique(clients []interfaces.Client, client interfaces.Client) []interfaces.Client {
	for _, c := range clients {
		if c == client {
			return clients
		}
	}
	return append(clients, client)
}

func remove(clients []interfaces.Client, client interfaces.Client) []interfaces.Client {
	for i, c := range clients {
		if c == client {
			return append(clients[:i], clients[i+1:]...)
		}
	}
	return clients
}

func snapshot(clients []interfaces.Client) []interfaces.Client {
	out := make([]interfaces.Client, len(clients))
	copy(out, clients)
	return out
}

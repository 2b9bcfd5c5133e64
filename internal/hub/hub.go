package hub

import (
	"encoding/json"
	"sync"

	"linkup/backend/pkg/logger"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types emitted over the real-time channel.
const (
	EventOnlineUsers     = "getOnlineUsers"
	EventNewMessage      = "newMessage"
	EventNewNotification = "newNotification"
)

// Hub maps a user id to its single live connection. A later connection for
// the same user replaces the earlier registration; there is no multi-device
// fan-out.
type Hub struct {
	clients map[uint]*Client
	mu      sync.RWMutex

	// OnPresenceChange, when set, is invoked after every offline<->online
	// transition. Used to mirror the online set into redis.
	OnPresenceChange func(userID uint, online bool)
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]*Client),
	}
}

// Register adds a client, replacing and closing any earlier connection for
// the same user, then broadcasts the updated online list to everyone.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.UserID]; ok {
		old.closeSend()
	}
	h.clients[client.UserID] = client
	h.mu.Unlock()

	if h.OnPresenceChange != nil {
		h.OnPresenceChange(client.UserID, true)
	}
	h.BroadcastOnlineUsers()
}

// Unregister removes a client. A stale client (already replaced by a newer
// connection for the same user) is ignored so the replacement survives.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	current, ok := h.clients[client.UserID]
	if !ok || current != client {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.UserID)
	client.closeSend()
	h.mu.Unlock()

	if h.OnPresenceChange != nil {
		h.OnPresenceChange(client.UserID, false)
	}
	h.BroadcastOnlineUsers()
}

// IsOnline reports whether a user currently has a live connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

// OnlineUsers returns the ids of all currently connected users.
func (h *Hub) OnlineUsers() []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]uint, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// PushToUser delivers an event to a user's live connection if one exists.
// Fire-and-forget: no acknowledgement, no retry. Returns whether the event
// was handed to a connection.
func (h *Hub) PushToUser(userID uint, event Event) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event", event.Type).Msg("Failed to marshal event")
		return false
	}

	client.trySend(data)
	return true
}

// BroadcastOnlineUsers sends the full online id list to every connected
// client. Called on every presence change; not scoped to friends.
func (h *Hub) BroadcastOnlineUsers() {
	ids := h.OnlineUsers()
	data, err := json.Marshal(Event{Type: EventOnlineUsers, Payload: ids})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		client.trySend(data)
	}
}

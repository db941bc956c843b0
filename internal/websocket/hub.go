package websocket

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub is the in-memory room registry: it maps a room id to the clients
// currently connected to it and fans broadcasts out to them. It holds no
// durable state; after a restart it is rebuilt from scratch as clients
// reconnect. All methods are safe for concurrent use.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Client]bool
	logger *zap.SugaredLogger
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]bool),
		logger: logger,
	}
}

// JoinRoom registers the client under its room. A join that returns before
// a Broadcast call begins is guaranteed to receive that broadcast.
func (h *Hub) JoinRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.RoomID]; !ok {
		h.rooms[client.RoomID] = make(map[*Client]bool)
	}
	h.rooms[client.RoomID][client] = true

	h.logger.Debugf("client joined room %s (user %s)", client.RoomID, client.UserID)
}

// LeaveRoom removes the client and closes its send queue. Safe to call for
// a client that never joined or already left.
func (h *Hub) LeaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.RoomID]
	if !ok || !room[client] {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.RoomID)
	}

	h.logger.Debugf("client left room %s (user %s)", client.RoomID, client.UserID)
}

// Broadcast delivers the event to every client currently joined to the
// room. Delivery goes through each client's bounded send queue; a client
// whose queue is full has the event dropped rather than stalling the rest
// of the room.
func (h *Hub) Broadcast(roomID uuid.UUID, event Event) {
	data, err := Encode(event)
	if err != nil {
		h.logger.Errorf("broadcast encode: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[roomID] {
		if !client.enqueue(data) {
			h.logger.Warnf("send queue full, dropping event for user %s in room %s", client.UserID, roomID)
		}
	}
}

// RoomSize reports how many clients are joined to the room.
func (h *Hub) RoomSize(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

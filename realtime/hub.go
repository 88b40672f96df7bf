// File: realtime/hub.go
package realtime

import (
	"encoding/json"
	"sync"

	"homely/models"
	"homely/utils"

	"go.uber.org/zap"
)

// Hub tracks connected clients and their room memberships, and fans pushed events
// out to everyone in a room. One room per user id, plus the shared admin room.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan roomMessage
	mu         sync.RWMutex

	bridge *Bridge
}

type roomMessage struct {
	room string
	data []byte
}

// NewHub creates a hub. Call Run in a goroutine before serving connections.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
	}
}

// SetBridge attaches a cross-instance relay. Emit then also publishes through the
// bridge; frames arriving from the bridge are delivered locally only.
func (h *Hub) SetBridge(b *Bridge) {
	h.bridge = b
}

// Run processes register/unregister/broadcast events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.joinRoom(client, client.UserID)
			if client.Role == models.RoleAdmin {
				h.joinRoom(client, AdminRoom)
			}
			utils.GetLogger().Debug("realtime: client registered",
				zap.String("userID", client.UserID))

		case client := <-h.unregister:
			h.removeClient(client)
			utils.GetLogger().Debug("realtime: client unregistered",
				zap.String("userID", client.UserID))

		case msg := <-h.broadcast:
			h.deliverLocal(msg.room, msg.data)
		}
	}
}

// Register adds a client and joins it to its own user room.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from every room and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// JoinRoom adds the client to a room, enforcing that a socket may only join the room
// of the identity its token carries (admins may also join the shared admin room).
func (h *Hub) JoinRoom(client *Client, room string) bool {
	if !client.mayJoin(room) {
		utils.GetLogger().Warn("realtime: join refused",
			zap.String("userID", client.UserID), zap.String("room", room))
		return false
	}
	h.joinRoom(client, room)
	return true
}

// LeaveRoom removes the client from a room.
func (h *Hub) LeaveRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(client, room)
}

func (h *Hub) joinRoom(client *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

func (h *Hub) leaveRoomLocked(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		if members[client] {
			h.leaveRoomLocked(client, room)
		}
	}
	if !client.closed {
		client.closed = true
		close(client.Send)
	}
}

// Emit pushes an event to a room on this instance and relays it through the bridge
// for clients connected elsewhere.
func (h *Hub) Emit(room, event string, data any) {
	frame := Frame{Event: event, Data: data}
	payload, err := json.Marshal(frame)
	if err != nil {
		utils.GetLogger().Error("realtime: failed to marshal frame",
			zap.String("event", event), zap.Error(err))
		return
	}

	h.broadcast <- roomMessage{room: room, data: payload}

	if h.bridge != nil {
		h.bridge.Relay(room, payload)
	}
}

// EmitAdmins pushes an event to every connected admin session.
func (h *Hub) EmitAdmins(event string, data any) {
	h.Emit(AdminRoom, event, data)
}

// Broadcast pushes an event to every connected client.
func (h *Hub) Broadcast(event string, data any) {
	h.Emit(BroadcastRoom, event, data)
}

// deliverLocal writes the payload to every member of the room. Slow clients whose
// send queue is full are dropped rather than blocked on.
func (h *Hub) deliverLocal(room string, data []byte) {
	h.mu.RLock()
	targets := make(map[*Client]bool)
	if room == BroadcastRoom {
		for _, members := range h.rooms {
			for client := range members {
				targets[client] = true
			}
		}
	} else {
		for client := range h.rooms[room] {
			targets[client] = true
		}
	}

	var slow []*Client
	for client := range targets {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		go func(c *Client) { h.unregister <- c }(client)
	}
}

// RoomSize reports how many clients are joined to a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

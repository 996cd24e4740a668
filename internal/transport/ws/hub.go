package ws

import (
	"sync"
)

type Conn interface {
	ID() string
	Send(msg Message) error
	Close() error
}

// Hub держит broadcast-группы комнат и глобальный набор соединений для
// availableRooms.
type Hub struct {
	mu    sync.RWMutex
	all   map[Conn]struct{}
	rooms map[string]map[Conn]struct{} // roomID -> set of connections
}

func NewHub() *Hub {
	return &Hub{
		all:   make(map[Conn]struct{}),
		rooms: make(map[string]map[Conn]struct{}),
	}
}

func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[c] = struct{}{}
}

func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.all, c)
	for roomID, rs := range h.rooms {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func (h *Hub) Join(roomID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rs, ok := h.rooms[roomID]
	if !ok {
		rs = make(map[Conn]struct{})
		h.rooms[roomID] = rs
	}
	rs[c] = struct{}{}
}

func (h *Hub) Leave(roomID string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if rs, ok := h.rooms[roomID]; ok {
		delete(rs, c)
		if len(rs) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// DropRoom распускает broadcast-группу комнаты; соединения остаются в
// глобальном наборе.
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomID)
}

func (h *Hub) Broadcast(roomID string, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[roomID]; ok {
		for c := range rs {
			_ = c.Send(msg) // best-effort
		}
	}
}

// BroadcastExcept шлёт всем в комнате, кроме except (аналог socket.to(room)).
func (h *Hub) BroadcastExcept(roomID string, msg Message, except Conn) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if rs, ok := h.rooms[roomID]; ok {
		for c := range rs {
			if c != except {
				_ = c.Send(msg)
			}
		}
	}
}

// BroadcastAll шлёт всем подключённым клиентам.
func (h *Hub) BroadcastAll(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.all {
		_ = c.Send(msg)
	}
}

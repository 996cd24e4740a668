package registry

import (
	"log/slog"
	"sync"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"

	"github.com/google/uuid"
)

const roomIDLength = 8

// Summary — срез состояния комнаты для debug-списка HTTP.
type Summary struct {
	ID             string            `json:"id"`
	PlayerCount    int               `json:"playerCount"`
	SpectatorCount int               `json:"spectatorCount"`
	Active         bool              `json:"active"`
	Status         domain.RoomStatus `json:"status"`
}

// Registry — единственный владелец объектов Room. Мутация комнат идёт
// только из диспетчера шлюза; mutex защищает саму map от конкурентных
// чтений (HTTP debug-список, таймеры).
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]*domain.Room
	timers map[string]*time.Timer

	grace    time.Duration
	onExpire func(roomID string)
}

func New(grace time.Duration) *Registry {
	return &Registry{
		rooms:  make(map[string]*domain.Room),
		timers: make(map[string]*time.Timer),
		grace:  grace,
	}
}

// SetExpiryHandler задаёт обработчик срабатывания таймера удаления.
// Обработчик вызывается из горутины таймера и должен сам вернуться в
// последовательный контекст (почтовый ящик шлюза).
func (r *Registry) SetExpiryHandler(fn func(roomID string)) {
	r.onExpire = fn
}

// Create создаёт комнату в статусе ожидания с одним хостом за X.
func (r *Registry) Create(connID, name string) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := &domain.Room{
		ID: r.newRoomID(),
		Players: []*domain.Player{{
			ConnID:    connID,
			Name:      name,
			Symbol:    domain.SymbolX,
			Connected: true,
			IsHost:    true,
		}},
		CurrentPlayer: domain.SymbolX,
		Status:        domain.RoomWaiting,
		Scores:        map[domain.Symbol]int{domain.SymbolX: 0, domain.SymbolO: 0},
		CreatorID:     connID,
		CreatorName:   name,
		CreatedAt:     time.Now(),
	}
	r.rooms[room.ID] = room
	return room
}

// CreateFromMatch создаёт комнату сразу в игре: оба игрока рассажены,
// первый — хост за X, комната ожидания пропускается.
func (r *Registry) CreateFromMatch(aConnID, aName, bConnID, bName string) *domain.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := &domain.Room{
		ID: r.newRoomID(),
		Players: []*domain.Player{
			{ConnID: aConnID, Name: aName, Symbol: domain.SymbolX, Connected: true, IsHost: true},
			{ConnID: bConnID, Name: bName, Symbol: domain.SymbolO, Connected: true},
		},
		CurrentPlayer: domain.SymbolX,
		GameActive:    true,
		Status:        domain.RoomPlaying,
		Scores:        map[domain.Symbol]int{domain.SymbolX: 0, domain.SymbolO: 0},
		CreatorID:     aConnID,
		CreatorName:   aName,
		IsRandomMatch: true,
		CreatedAt:     time.Now(),
	}
	r.rooms[room.ID] = room
	return room
}

func (r *Registry) Get(id string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}

// Delete удаляет комнату и снимает её таймер. Возвращает false, если
// комната уже удалена другим путём.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return false
	}
	delete(r.rooms, id)
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
	return true
}

// FindByConn ищет комнату, где conn id числится игроком или зрителем.
// Читает списки участников, поэтому вызывается только из диспетчера.
func (r *Registry) FindByConn(connID string) *domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, room := range r.rooms {
		if room.PlayerByConn(connID) != nil || room.SpectatorByConn(connID) != nil {
			return room
		}
	}
	return nil
}

// IDs возвращает идентификаторы всех комнат (payload для availableRooms).
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.rooms))
	for id := range r.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Summarize собирает срез состояния комнаты. Читает внутренности Room,
// поэтому вызывается только из диспетчера.
func Summarize(room *domain.Room) Summary {
	return Summary{
		ID:             room.ID,
		PlayerCount:    len(room.Players),
		SpectatorCount: len(room.Spectators),
		Active:         room.GameActive,
		Status:         room.Status,
	}
}

// Summaries собирает срезы всех комнат. Как и Summarize, вызывается
// только из диспетчера: mutex защищает map, но не внутренности Room.
func (r *Registry) Summaries() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, Summarize(room))
	}
	return out
}

// ScheduleDeletion взводит таймер удаления комнаты. Уже взведённый таймер
// не перевзводится: окно отсчитывается от первого полного дисконнекта.
func (r *Registry) ScheduleDeletion(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return
	}
	if _, ok := r.timers[id]; ok {
		return
	}
	r.timers[id] = time.AfterFunc(r.grace, func() { r.expire(id) })
	slog.Info("room deletion scheduled", "room", id, "grace", r.grace)
}

// CancelDeletion снимает отложенное удаление; no-op, если таймера нет.
func (r *Registry) CancelDeletion(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(r.timers, id)
	slog.Info("room deletion cancelled", "room", id)
	return true
}

// HasPendingDeletion сообщает, взведён ли таймер удаления.
func (r *Registry) HasPendingDeletion(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.timers[id]
	return ok
}

func (r *Registry) expire(id string) {
	r.mu.Lock()
	delete(r.timers, id)
	_, exists := r.rooms[id]
	fn := r.onExpire
	r.mu.Unlock()

	// Комната могла быть удалена другим путём, пока таймер летел.
	if exists && fn != nil {
		fn(id)
	}
}

// newRoomID выдаёт свежий 8-символьный id с проверкой коллизий.
// Вызывается под mu.
func (r *Registry) newRoomID() string {
	for {
		id := uuid.NewString()[:roomIDLength]
		if _, ok := r.rooms[id]; !ok {
			return id
		}
	}
}

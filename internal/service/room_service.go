package service

import (
	"log/slog"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
)

type RoomService struct {
	reg *registry.Registry
}

func NewRoomService(reg *registry.Registry) *RoomService {
	return &RoomService{reg: reg}
}

// JoinResult — итог любого пути присоединения к комнате.
type JoinResult struct {
	Room        *domain.Room
	Participant domain.Participant
	IsNew       bool // новый участник, а не переподключение
	IsSpectator bool
	Reconnected bool
	// CapacityRedirect: просился игроком, но оба места заняты — посажен зрителем.
	CapacityRedirect bool
}

type LeaveResult struct {
	Room        *domain.Room
	Removed     bool
	RoomDeleted bool
	NewHost     *domain.Player
}

type DisconnectResult struct {
	Room              *domain.Room
	ParticipantName   string
	WasPlayer         bool
	WasSpectator      bool
	RoomDeleted       bool
	DeletionScheduled bool
}

type CancelResult struct {
	Room        *domain.Room
	CancelledBy string
}

// CreateRoom создаёт комнату ожидания с хостом за X.
func (s *RoomService) CreateRoom(connID, playerName string) *domain.Room {
	room := s.reg.Create(connID, playerName)
	slog.Info("room created", "room", room.ID, "player", playerName)
	return room
}

// JoinWaitingRoom сажает участника в комнату ожидания. Порядок разрешения:
// совпадение по имени — переподключение; оба игровых места заняты —
// зритель; иначе игрок (пустая комната — хост за X, создатель всегда
// получает X через обмен символами).
func (s *RoomService) JoinWaitingRoom(roomID, connID, playerName string, claimHost bool) (*JoinResult, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	if res := s.rejoinByName(room, connID, playerName); res != nil {
		return res, nil
	}

	if len(room.Players) >= 2 {
		sp := &domain.Spectator{ConnID: connID, Name: playerName, Connected: true}
		room.Spectators = append(room.Spectators, sp)
		s.reg.CancelDeletion(roomID)
		return &JoinResult{Room: room, Participant: sp.AsParticipant(), IsNew: true, IsSpectator: true}, nil
	}

	p := s.seatPlayer(room, connID, playerName, claimHost)
	s.reg.CancelDeletion(roomID)
	slog.Info("player joined waiting room", "room", roomID, "player", playerName, "is_host", p.IsHost)
	return &JoinResult{Room: room, Participant: p.AsParticipant(), IsNew: true}, nil
}

// JoinRoom — присоединение к игровой комнате: по имени — переподключение,
// при заполненных местах — зритель (с редиректом), иначе новый игрок.
func (s *RoomService) JoinRoom(roomID, connID, playerName string, asSpectator bool) (*JoinResult, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	if !asSpectator {
		if res := s.rejoinByName(room, connID, playerName); res != nil {
			return res, nil
		}
	}

	capacity := !asSpectator && len(room.Players) >= 2
	if asSpectator || capacity {
		sp := &domain.Spectator{ConnID: connID, Name: playerName, Connected: true}
		room.Spectators = append(room.Spectators, sp)
		s.reg.CancelDeletion(roomID)
		slog.Info("spectator joined room", "room", roomID, "player", playerName, "redirected", capacity)
		return &JoinResult{
			Room:             room,
			Participant:      sp.AsParticipant(),
			IsNew:            true,
			IsSpectator:      true,
			CapacityRedirect: capacity,
		}, nil
	}

	p := s.seatPlayer(room, connID, playerName, false)
	s.reg.CancelDeletion(roomID)
	slog.Info("player joined room", "room", roomID, "player", playerName, "symbol", p.Symbol)
	return &JoinResult{Room: room, Participant: p.AsParticipant(), IsNew: true}, nil
}

// ReconnectToRoom — контракт переподключения по желаемому символу. Смена
// символа относительно прежнего места — конфликт, а не молчаливая
// пересадка.
func (s *RoomService) ReconnectToRoom(roomID, connID, playerName string, symbol domain.Symbol) (*JoinResult, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	if prev := room.PlayerByName(playerName); prev != nil && symbol != domain.SymbolNone && prev.Symbol != symbol {
		return nil, domain.ErrSeatTaken
	}

	var seat *domain.Player
	if symbol != domain.SymbolNone {
		seat = room.PlayerBySymbol(symbol)
	}

	switch {
	case seat != nil && seat.ConnID != connID && seat.Connected:
		return nil, domain.ErrSeatTaken
	case seat != nil:
		// занимаем место отключившегося игрока
		seat.ConnID = connID
		seat.Name = playerName
		seat.Connected = true
		seat.DisconnectedAt = time.Time{}
		if room.IsCreator(connID, playerName) {
			seat.IsHost = true
		}
	case len(room.Players) < 2:
		sym := symbol
		if sym == domain.SymbolNone {
			sym = domain.SymbolX
			if len(room.Players) > 0 {
				sym = room.Players[0].Symbol.Opponent()
			}
		}
		seat = &domain.Player{ConnID: connID, Name: playerName, Symbol: sym, Connected: true}
		room.Players = append(room.Players, seat)
	default:
		return nil, domain.ErrRoomFull
	}

	s.reg.CancelDeletion(roomID)
	slog.Info("player reconnected", "room", roomID, "player", playerName, "symbol", seat.Symbol)
	return &JoinResult{Room: room, Participant: seat.AsParticipant(), Reconnected: true}, nil
}

// LeaveWaitingRoom убирает участника; уходящий хост передаёт статус
// первому оставшемуся подключённому игроку. Пустая комната удаляется
// сразу.
func (s *RoomService) LeaveWaitingRoom(roomID, playerName string) (*LeaveResult, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	res := &LeaveResult{Room: room}
	if p := room.PlayerByName(playerName); p != nil {
		if p.IsHost {
			for _, cand := range room.Players {
				if cand.Name != playerName && cand.Connected {
					cand.IsHost = true
					res.NewHost = cand
					break
				}
			}
		}
		room.RemovePlayer(playerName)
		res.Removed = true
	} else if sp := room.SpectatorByName(playerName); sp != nil {
		room.RemoveSpectator(sp.ConnID)
		res.Removed = true
	}

	if res.Removed && room.ParticipantCount() == 0 {
		s.reg.Delete(roomID)
		res.RoomDeleted = true
		slog.Info("room deleted: last participant left", "room", roomID)
	}
	return res, nil
}

// StartGame переводит комнату в игру. Запускать может хост либо создатель
// по стабильной личности — ему статус хоста возвращается и сохраняется.
func (s *RoomService) StartGame(roomID, connID, playerName string) (*domain.Room, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}
	if len(room.Players) < 2 {
		return nil, domain.ErrNotEnoughPlayers
	}
	p := room.PlayerByName(playerName)
	if p == nil {
		return nil, domain.ErrPlayerNotFound
	}
	if !p.IsHost {
		if !room.IsCreator(connID, playerName) {
			return nil, domain.ErrNotHost
		}
		p.IsHost = true
	}

	room.Status = domain.RoomPlaying
	room.GameActive = true
	room.CurrentPlayer = domain.SymbolX // X всегда ходит первым
	room.GameStartedAt = time.Now()
	slog.Info("game starting", "room", roomID, "host", playerName)
	return room, nil
}

// CheckRoom возвращает комнату для ответа roomStatus.
func (s *RoomService) CheckRoom(roomID string) (*domain.Room, error) {
	return s.reg.Get(roomID)
}

// HandleDisconnect применяет семантику супервизора: игрок помечается
// отключённым с отметкой времени, зритель удаляется сразу. Полностью
// отключённая комната получает таймер удаления; опустевшая удаляется
// немедленно.
func (s *RoomService) HandleDisconnect(roomID, connID string) *DisconnectResult {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil
	}

	res := &DisconnectResult{Room: room}
	if p := room.PlayerByConn(connID); p != nil {
		p.Connected = false
		p.DisconnectedAt = time.Now()
		res.WasPlayer = true
		res.ParticipantName = p.Name
		if room.AllPlayersDisconnected() {
			s.reg.ScheduleDeletion(roomID)
			res.DeletionScheduled = true
		}
		slog.Info("player disconnected", "room", roomID, "player", p.Name)
	} else if sp := room.SpectatorByConn(connID); sp != nil {
		// зрителям окно переподключения не даётся
		room.RemoveSpectator(connID)
		res.WasSpectator = true
		res.ParticipantName = sp.Name
		if room.ParticipantCount() == 0 {
			s.reg.Delete(roomID)
			res.RoomDeleted = true
		}
		slog.Info("spectator left", "room", roomID, "spectator", sp.Name)
	} else {
		return nil
	}
	return res
}

// CancelRandomMatchRoom удаляет ещё не начавшуюся комнату случайного
// матча, которой владеет соединение. Возвращает nil, если отменять нечего.
func (s *RoomService) CancelRandomMatchRoom(roomID, connID string) *CancelResult {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil
	}
	if !room.IsRandomMatch || !room.GameStartedAt.IsZero() {
		return nil
	}

	cancelledBy := "A player"
	if p := room.PlayerByConn(connID); p != nil {
		cancelledBy = p.Name
	}
	s.reg.Delete(roomID)
	slog.Info("random match cancelled", "room", roomID, "by", cancelledBy)
	return &CancelResult{Room: room, CancelledBy: cancelledBy}
}

// rejoinByName — правило №1 разрешения join: участник с тем же именем уже
// есть, значит это переподключение с новым conn id.
func (s *RoomService) rejoinByName(room *domain.Room, connID, playerName string) *JoinResult {
	if p := room.PlayerByName(playerName); p != nil {
		p.ConnID = connID
		p.Connected = true
		p.DisconnectedAt = time.Time{}
		if room.IsCreator(connID, playerName) {
			p.IsHost = true
		}
		s.reg.CancelDeletion(room.ID)
		slog.Info("player rejoined", "room", room.ID, "player", playerName)
		return &JoinResult{Room: room, Participant: p.AsParticipant(), Reconnected: true}
	}
	if sp := room.SpectatorByName(playerName); sp != nil {
		sp.ConnID = connID
		sp.Connected = true
		s.reg.CancelDeletion(room.ID)
		return &JoinResult{Room: room, Participant: sp.AsParticipant(), Reconnected: true, IsSpectator: true}
	}
	return nil
}

// seatPlayer сажает нового игрока по правилу №3: пустая комната — хост за
// X; иначе свободный символ; создатель всегда уходит с X, при
// необходимости меняясь с текущим владельцем.
func (s *RoomService) seatPlayer(room *domain.Room, connID, playerName string, claimHost bool) *domain.Player {
	isCreator := room.IsCreator(connID, playerName)
	p := &domain.Player{
		ConnID:    connID,
		Name:      playerName,
		Connected: true,
	}

	if len(room.Players) == 0 {
		p.Symbol = domain.SymbolX
		p.IsHost = true
	} else {
		p.Symbol = room.Players[0].Symbol.Opponent()
		p.IsHost = claimHost && isCreator
	}

	if isCreator && p.Symbol != domain.SymbolX {
		if other := room.PlayerBySymbol(domain.SymbolX); other != nil {
			other.Symbol = domain.SymbolO
		}
		p.Symbol = domain.SymbolX
		p.IsHost = true
	}

	room.Players = append(room.Players, p)
	return p
}

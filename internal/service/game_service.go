package service

import (
	"log/slog"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/game"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
)

type GameService struct {
	reg *registry.Registry
}

func NewGameService(reg *registry.Registry) *GameService {
	return &GameService{reg: reg}
}

type MoveResult struct {
	Room      *domain.Room
	CellIndex int
	Symbol    domain.Symbol
	Outcome   game.Outcome
}

// MakeMove применяет ход соединения connID. Нелегальный ход (не та
// очередь, занятая клетка, неактивная партия, чужое соединение) молча
// игнорируется: возвращается (nil, nil), состояние не меняется.
func (s *GameService) MakeMove(roomID, connID string, cellIndex int) (*MoveResult, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	p := room.PlayerByConn(connID)
	if p == nil || !room.GameActive {
		return nil, nil
	}
	if !game.ApplyMove(&room.Board, cellIndex, p.Symbol, room.CurrentPlayer) {
		return nil, nil
	}

	out := game.Evaluate(room.Board)
	if out.Over() {
		room.GameActive = false
		if out.Winner != domain.SymbolNone {
			room.Scores[out.Winner]++
		}
		slog.Info("game over", "room", roomID, "winner", out.Winner, "draw", out.Draw)
	} else {
		room.CurrentPlayer = room.CurrentPlayer.Opponent()
	}
	return &MoveResult{Room: room, CellIndex: cellIndex, Symbol: p.Symbol, Outcome: out}, nil
}

// RestartGame сбрасывает доску для новой партии. Счёт сохраняется,
// начинающий игрок чередуется.
func (s *GameService) RestartGame(roomID string) (*domain.Room, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}
	if room.ConnectedPlayers() < 2 {
		return nil, domain.ErrNotEnoughPlayers
	}

	room.Board = domain.Board{}
	room.GameActive = true
	room.CurrentPlayer = room.CurrentPlayer.Opponent()
	slog.Info("game restarted", "room", roomID, "current_player", room.CurrentPlayer)
	return room, nil
}

// StartRandomMatch подтверждает старт партии случайного матча со стороны
// клиентов: комната переводится в игру и получает отметку старта.
func (s *GameService) StartRandomMatch(roomID string) (*domain.Room, error) {
	room, err := s.reg.Get(roomID)
	if err != nil {
		return nil, err
	}

	room.Status = domain.RoomPlaying
	room.GameActive = true
	room.CurrentPlayer = domain.SymbolX
	room.GameStartedAt = time.Now()
	slog.Info("random match game started", "room", roomID)
	return room, nil
}

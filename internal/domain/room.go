package domain

import (
	"time"

	"github.com/samber/lo"
)

type RoomStatus string

const (
	RoomWaiting RoomStatus = "waiting"
	RoomPlaying RoomStatus = "playing"
)

// SymbolSpectator — «символ» зрителя в списке участников.
const SymbolSpectator Symbol = "spectator"

type Player struct {
	ConnID         string    `json:"id"`
	Name           string    `json:"name"`
	Symbol         Symbol    `json:"symbol"`
	Connected      bool      `json:"connected"`
	IsHost         bool      `json:"isHost"`
	DisconnectedAt time.Time `json:"-"`
}

type Spectator struct {
	ConnID    string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

// Participant — производное представление участника (игрок или зритель)
// для UI списка ожидания. Не хранится отдельно, всегда собирается из
// Players и Spectators.
type Participant struct {
	ConnID      string `json:"id"`
	Name        string `json:"name"`
	Symbol      Symbol `json:"symbol"`
	Connected   bool   `json:"connected"`
	IsSpectator bool   `json:"isSpectator"`
	IsHost      bool   `json:"isHost"`
}

type ChatMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Symbol    Symbol `json:"symbol"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// Room — полное состояние одной игровой сессии. Мутируется только
// диспетчером шлюза, поэтому без локов.
type Room struct {
	ID            string
	Players       []*Player // максимум 2, уникальны по символу
	Spectators    []*Spectator
	Board         Board
	CurrentPlayer Symbol
	GameActive    bool
	Status        RoomStatus
	Scores        map[Symbol]int

	Messages            []ChatMessage
	WaitingRoomMessages []ChatMessage

	CreatorID     string // conn id создателя на момент создания
	CreatorName   string
	IsRandomMatch bool

	CreatedAt     time.Time
	GameStartedAt time.Time
}

func (p *Player) AsParticipant() Participant {
	return Participant{
		ConnID:    p.ConnID,
		Name:      p.Name,
		Symbol:    p.Symbol,
		Connected: p.Connected,
		IsHost:    p.IsHost,
	}
}

func (s *Spectator) AsParticipant() Participant {
	return Participant{
		ConnID:      s.ConnID,
		Name:        s.Name,
		Symbol:      SymbolSpectator,
		Connected:   s.Connected,
		IsSpectator: true,
	}
}

// Participants собирает актуальный список участников: сначала игроки,
// затем зрители.
func (r *Room) Participants() []Participant {
	players := lo.Map(r.Players, func(p *Player, _ int) Participant { return p.AsParticipant() })
	spectators := lo.Map(r.Spectators, func(s *Spectator, _ int) Participant { return s.AsParticipant() })
	return append(players, spectators...)
}

func (r *Room) ParticipantCount() int {
	return len(r.Players) + len(r.Spectators)
}

func (r *Room) PlayerByConn(connID string) *Player {
	p, _ := lo.Find(r.Players, func(p *Player) bool { return p.ConnID == connID })
	return p
}

func (r *Room) PlayerByName(name string) *Player {
	p, _ := lo.Find(r.Players, func(p *Player) bool { return p.Name == name })
	return p
}

func (r *Room) PlayerBySymbol(s Symbol) *Player {
	p, _ := lo.Find(r.Players, func(p *Player) bool { return p.Symbol == s })
	return p
}

func (r *Room) SpectatorByConn(connID string) *Spectator {
	s, _ := lo.Find(r.Spectators, func(s *Spectator) bool { return s.ConnID == connID })
	return s
}

func (r *Room) SpectatorByName(name string) *Spectator {
	s, _ := lo.Find(r.Spectators, func(s *Spectator) bool { return s.Name == name })
	return s
}

func (r *Room) RemovePlayer(name string) bool {
	before := len(r.Players)
	r.Players = lo.Reject(r.Players, func(p *Player, _ int) bool { return p.Name == name })
	return len(r.Players) != before
}

func (r *Room) RemoveSpectator(connID string) bool {
	before := len(r.Spectators)
	r.Spectators = lo.Reject(r.Spectators, func(s *Spectator, _ int) bool { return s.ConnID == connID })
	return len(r.Spectators) != before
}

func (r *Room) ConnectedPlayers() int {
	return lo.CountBy(r.Players, func(p *Player) bool { return p.Connected })
}

func (r *Room) AllPlayersDisconnected() bool {
	return len(r.Players) > 0 && r.ConnectedPlayers() == 0
}

// IsCreator проверяет стабильную личность создателя: по имени либо по
// conn id на момент создания. Conn id после переподключения меняется,
// имя — нет.
func (r *Room) IsCreator(connID, name string) bool {
	return (name != "" && r.CreatorName == name) || (connID != "" && r.CreatorID == connID)
}

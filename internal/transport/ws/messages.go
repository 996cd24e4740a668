package ws

import (
	"encoding/json"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
)

// Входящие события (client → server)
const (
	EvtCreateRoom             = "createRoom"
	EvtJoinWaitingRoom        = "joinWaitingRoom"
	EvtLeaveWaitingRoom       = "leaveWaitingRoom"
	EvtWaitingRoomMessage     = "waitingRoomMessage"
	EvtStartGame              = "startGame"
	EvtJoinRoom               = "joinRoom"
	EvtCheckRoom              = "checkRoom"
	EvtReconnectToRoom        = "reconnectToRoom"
	EvtMakeMove               = "makeMove"
	EvtRestartGame            = "restartGame"
	EvtChatMessage            = "chatMessage"
	EvtFindRandomMatch        = "findRandomMatch"
	EvtCancelRandomMatch      = "cancelRandomMatch"
	EvtRandomMatchGameStarted = "randomMatchGameStarted"
)

// Исходящие события (server → client)
const (
	EvtError                = "error"
	EvtAvailableRooms       = "availableRooms"
	EvtRoomCreated          = "roomCreated"
	EvtWaitingRoomJoined    = "waitingRoomJoined"
	EvtParticipantJoined    = "participantJoined"
	EvtParticipantLeft      = "participantLeft"
	EvtParticipantsUpdate   = "participantsUpdate"
	EvtGameStarting         = "gameStarting"
	EvtRoomJoined           = "roomJoined"
	EvtPlayerJoined         = "playerJoined"
	EvtSpectatorJoined      = "spectatorJoined"
	EvtSpectatorLeft        = "spectatorLeft"
	EvtPlayerLeft           = "playerLeft"
	EvtRoomStatus           = "roomStatus"
	EvtMoveMade             = "moveMade"
	EvtGameOver             = "gameOver"
	EvtPlayerTurnChanged    = "playerTurnChanged"
	EvtGameRestarted        = "gameRestarted"
	EvtRandomMatchFound     = "randomMatchFound"
	EvtRandomMatchCancelled = "randomMatchCancelled"
	EvtGameInitialized      = "gameInitialized"
)

// внутренние события диспетчера, по проводу не ходят
const (
	evtConnect     = "__connect"
	evtDisconnect  = "__disconnect"
	evtRoomExpired = "__roomExpired"
)

// Message — исходящий конверт {event, data}.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// inbound — входящий конверт; payload остаётся сырым до обработчика.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// --- входящие payload-ы ---

type CreateRoomPayload struct {
	PlayerName string `json:"playerName"`
}

type JoinWaitingRoomPayload struct {
	RoomID     string        `json:"roomId"`
	PlayerName string        `json:"playerName"`
	Symbol     domain.Symbol `json:"symbol,omitempty"`
	IsHost     bool          `json:"isHost,omitempty"`
}

type LeaveWaitingRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type ChatPayload struct {
	RoomID  string        `json:"roomId"`
	Sender  string        `json:"sender"`
	Message string        `json:"message"`
	Symbol  domain.Symbol `json:"symbol,omitempty"`
}

type StartGamePayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type JoinRoomPayload struct {
	RoomID      string `json:"roomId"`
	PlayerName  string `json:"playerName"`
	AsSpectator bool   `json:"asSpectator,omitempty"`
}

type CheckRoomPayload struct {
	RoomID string `json:"roomId"`
}

type ReconnectPayload struct {
	RoomID     string        `json:"roomId"`
	PlayerName string        `json:"playerName"`
	Symbol     domain.Symbol `json:"symbol,omitempty"`
}

type MakeMovePayload struct {
	RoomID    string `json:"roomId"`
	CellIndex int    `json:"cellIndex"`
}

type RestartGamePayload struct {
	RoomID string `json:"roomId"`
}

type FindRandomMatchPayload struct {
	PlayerName string `json:"playerName"`
}

type RandomMatchGameStartedPayload struct {
	RoomID string `json:"roomId"`
}

// --- исходящие payload-ы ---

type ErrorPayload struct {
	Message string `json:"message"`
}

type RoomCreatedPayload struct {
	RoomID      string        `json:"roomId"`
	Symbol      domain.Symbol `json:"symbol"`
	IsHost      bool          `json:"isHost"`
	WaitingRoom bool          `json:"waitingRoom"`
}

type WaitingRoomJoinedPayload struct {
	RoomID       string               `json:"roomId"`
	Symbol       domain.Symbol        `json:"symbol"`
	IsHost       bool                 `json:"isHost"`
	IsSpectator  bool                 `json:"isSpectator"`
	Participants []domain.Participant `json:"participants"`
}

type ParticipantJoinedPayload struct {
	Participant  domain.Participant   `json:"participant"`
	Participants []domain.Participant `json:"participants"`
}

type ParticipantLeftPayload struct {
	ParticipantName string               `json:"participantName"`
	Participants    []domain.Participant `json:"participants"`
}

type ParticipantsUpdatePayload struct {
	Participants []domain.Participant `json:"participants"`
}

type RoomJoinedPayload struct {
	RoomID        string               `json:"roomId"`
	Symbol        domain.Symbol        `json:"symbol,omitempty"`
	IsSpectator   bool                 `json:"isSpectator"`
	IsHost        bool                 `json:"isHost,omitempty"`
	WaitingRoom   bool                 `json:"waitingRoom"`
	GameState     *domain.Board        `json:"gameState,omitempty"`
	CurrentPlayer domain.Symbol        `json:"currentPlayer,omitempty"`
	Players       []*domain.Player     `json:"players,omitempty"`
	Scores        map[domain.Symbol]int `json:"scores,omitempty"`
	Participants  []domain.Participant `json:"participants,omitempty"`
}

type PlayerJoinedPayload struct {
	Player *domain.Player `json:"player"`
}

type SpectatorJoinedPayload struct {
	Spectator *domain.Spectator `json:"spectator"`
}

type SpectatorLeftPayload struct {
	SpectatorName string `json:"spectatorName"`
}

type PlayerLeftPayload struct {
	PlayerName string `json:"playerName"`
	Temporary  bool   `json:"temporary"`
}

type PlayerInfo struct {
	Name      string        `json:"name"`
	Symbol    domain.Symbol `json:"symbol"`
	Connected bool          `json:"connected"`
}

type RoomStatusPayload struct {
	RoomID  string            `json:"roomId"`
	Exists  bool              `json:"exists"`
	Players []PlayerInfo      `json:"players,omitempty"`
	Status  domain.RoomStatus `json:"status,omitempty"`
}

type MoveMadePayload struct {
	CellIndex int           `json:"cellIndex"`
	Symbol    domain.Symbol `json:"symbol"`
	GameState domain.Board  `json:"gameState"`
}

type GameOverPayload struct {
	Winner             domain.Symbol         `json:"winner,omitempty"`
	WinningCombination []int                 `json:"winningCombination,omitempty"`
	Draw               bool                  `json:"draw,omitempty"`
	Scores             map[domain.Symbol]int `json:"scores"`
}

type TurnChangedPayload struct {
	CurrentPlayer domain.Symbol `json:"currentPlayer"`
}

type GameRestartedPayload struct {
	GameState     domain.Board  `json:"gameState"`
	CurrentPlayer domain.Symbol `json:"currentPlayer"`
}

type MatchPlayer struct {
	Name   string        `json:"name"`
	Symbol domain.Symbol `json:"symbol"`
}

type RandomMatchFoundPayload struct {
	RoomID       string        `json:"roomId"`
	Symbol       domain.Symbol `json:"symbol"`
	IsHost       bool          `json:"isHost"`
	WaitingRoom  bool          `json:"waitingRoom"`
	OpponentName string        `json:"opponentName"`
	Players      []MatchPlayer `json:"players"`
}

type RandomMatchCancelledPayload struct {
	Message     string `json:"message"`
	CancelledBy string `json:"cancelledBy"`
	RoomID      string `json:"roomId"`
	Reason      string `json:"reason"`
}

type GameInitializedPayload struct {
	GameState     domain.Board     `json:"gameState"`
	CurrentPlayer domain.Symbol    `json:"currentPlayer"`
	Players       []*domain.Player `json:"players"`
	GameActive    bool             `json:"gameActive"`
}

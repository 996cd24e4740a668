package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/matchmaking"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
	"github.com/cwrk-planet/tictactoe-service/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

// event — единица почтового ящика диспетчера: (соединение, событие,
// payload) либо внутреннее событие с roomID.
type event struct {
	conn   Conn
	name   string
	data   json.RawMessage
	roomID string // только для внутренних событий таймеров
}

// session — ассоциация соединения с логическим участником и его комнатой.
type session struct {
	conn   Conn
	name   string
	roomID string
}

// summaryQuery — запрос debug-снапшота из HTTP. Отвечает диспетчер,
// чтобы чтение внутренностей Room не гналось с его же мутациями.
type summaryQuery struct {
	roomID string // пусто — все комнаты
	reply  chan summaryReply
}

type summaryReply struct {
	items []registry.Summary
	err   error
}

// Gateway — шлюз реального времени. Все мутации комнат и очереди подбора
// идут строго последовательно через один почтовый ящик: обработчик
// завершает событие целиком (включая рассылки) до следующего.
type Gateway struct {
	hub   *Hub
	reg   *registry.Registry
	rooms *service.RoomService
	games *service.GameService
	chat  *service.ChatService
	queue *matchmaking.Queue

	upgrader  websocket.Upgrader
	events    chan event
	queries   chan summaryQuery
	sessions  map[string]*session // conn id -> session, только из диспетчера
	pingEvery time.Duration
}

func NewGateway(
	hub *Hub,
	reg *registry.Registry,
	rooms *service.RoomService,
	games *service.GameService,
	chat *service.ChatService,
	queue *matchmaking.Queue,
) *Gateway {
	g := &Gateway{
		hub:   hub,
		reg:   reg,
		rooms: rooms,
		games: games,
		chat:  chat,
		queue: queue,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		events:    make(chan event, 256),
		queries:   make(chan summaryQuery),
		sessions:  make(map[string]*session),
		pingEvery: 15 * time.Second,
	}
	// срабатывание таймера удаления возвращается в почтовый ящик,
	// чтобы удаление шло в общем последовательном порядке
	reg.SetExpiryHandler(func(roomID string) {
		g.events <- event{name: evtRoomExpired, roomID: roomID}
	})
	return g
}

// Run крутит диспетчер до отмены контекста.
func (g *Gateway) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-g.events:
			g.dispatch(ev)
		case q := <-g.queries:
			g.handleSummaryQuery(q)
		}
	}
}

// RoomSummaries отдаёт снапшот всех комнат через почтовый ящик диспетчера.
func (g *Gateway) RoomSummaries(ctx context.Context) ([]registry.Summary, error) {
	return g.querySummaries(ctx, "")
}

// RoomSummary отдаёт снапшот одной комнаты.
func (g *Gateway) RoomSummary(ctx context.Context, roomID string) (registry.Summary, error) {
	items, err := g.querySummaries(ctx, roomID)
	if err != nil {
		return registry.Summary{}, err
	}
	return items[0], nil
}

func (g *Gateway) querySummaries(ctx context.Context, roomID string) ([]registry.Summary, error) {
	q := summaryQuery{roomID: roomID, reply: make(chan summaryReply, 1)}
	select {
	case g.queries <- q:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-q.reply:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *Gateway) handleSummaryQuery(q summaryQuery) {
	if q.roomID == "" {
		q.reply <- summaryReply{items: g.reg.Summaries()}
		return
	}
	room, err := g.reg.Get(q.roomID)
	if err != nil {
		q.reply <- summaryReply{err: err}
		return
	}
	q.reply <- summaryReply{items: []registry.Summary{registry.Summarize(room)}}
}

// WS endpoint: GET /ws
func (g *Gateway) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(uuid.NewString(), conn)
	slog.Info("client connected", "conn", c.ID())

	g.events <- event{conn: c, name: evtConnect}

	go g.writeLoop(c)
	g.readLoop(c)

	g.events <- event{conn: c, name: evtDisconnect}
	_ = c.Close()
}

func (g *Gateway) readLoop(c *wsConn) {
	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * g.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * g.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		// внутренние имена по проводу не принимаются
		if msg.Event == "" || strings.HasPrefix(msg.Event, "__") {
			continue
		}
		g.events <- event{conn: c, name: msg.Event, data: msg.Data}
	}
}

func (g *Gateway) writeLoop(c *wsConn) {
	ticker := time.NewTicker(g.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-c.closed:
			return
		}
	}
}

func (g *Gateway) dispatch(ev event) {
	switch ev.name {
	case evtConnect:
		g.handleConnect(ev.conn)
		return
	case evtDisconnect:
		g.handleDisconnect(ev.conn)
		return
	case evtRoomExpired:
		g.handleRoomExpired(ev.roomID)
		return
	}

	sess, ok := g.sessions[ev.conn.ID()]
	if !ok {
		return
	}

	switch ev.name {
	case EvtCreateRoom:
		g.handleCreateRoom(sess, ev.data)
	case EvtJoinWaitingRoom:
		g.handleJoinWaitingRoom(sess, ev.data)
	case EvtLeaveWaitingRoom:
		g.handleLeaveWaitingRoom(sess, ev.data)
	case EvtWaitingRoomMessage:
		g.handleWaitingRoomMessage(sess, ev.data)
	case EvtStartGame:
		g.handleStartGame(sess, ev.data)
	case EvtJoinRoom:
		g.handleJoinRoom(sess, ev.data)
	case EvtCheckRoom:
		g.handleCheckRoom(sess, ev.data)
	case EvtReconnectToRoom:
		g.handleReconnectToRoom(sess, ev.data)
	case EvtMakeMove:
		g.handleMakeMove(sess, ev.data)
	case EvtRestartGame:
		g.handleRestartGame(sess, ev.data)
	case EvtChatMessage:
		g.handleChatMessage(sess, ev.data)
	case EvtFindRandomMatch:
		g.handleFindRandomMatch(sess, ev.data)
	case EvtCancelRandomMatch:
		g.handleCancelRandomMatch(sess)
	case EvtRandomMatchGameStarted:
		g.handleRandomMatchGameStarted(sess, ev.data)
	default:
		slog.Debug("unknown event", "event", ev.name, "conn", ev.conn.ID())
	}
}

// --- обработчики соединения ---

func (g *Gateway) handleConnect(c Conn) {
	g.sessions[c.ID()] = &session{conn: c}
	g.hub.Register(c)
	// список комнат сразу при подключении
	_ = c.Send(Message{Event: EvtAvailableRooms, Data: g.reg.IDs()})
}

func (g *Gateway) handleDisconnect(c Conn) {
	sess, ok := g.sessions[c.ID()]
	if !ok {
		g.hub.Unregister(c)
		return
	}

	g.queue.Remove(c.ID())

	roomID := sess.roomID
	if roomID == "" {
		// сессия могла потерять привязку — ищем комнату по соединению
		if room := g.reg.FindByConn(c.ID()); room != nil {
			roomID = room.ID
		}
	}
	if roomID != "" {
		if res := g.rooms.HandleDisconnect(roomID, c.ID()); res != nil {
			g.notifyDeparture(sess, res)
			if res.RoomDeleted {
				g.hub.DropRoom(roomID)
			}
		}
	}

	g.hub.Unregister(c)
	delete(g.sessions, c.ID())
	g.broadcastRooms()
	slog.Info("client disconnected", "conn", c.ID())
}

func (g *Gateway) notifyDeparture(sess *session, res *service.DisconnectResult) {
	room := res.Room
	switch {
	case res.WasPlayer && room.Status == domain.RoomWaiting:
		g.hub.BroadcastExcept(room.ID, Message{Event: EvtParticipantLeft, Data: ParticipantLeftPayload{
			ParticipantName: res.ParticipantName,
			Participants:    room.Participants(),
		}}, sess.conn)
	case res.WasPlayer:
		g.hub.BroadcastExcept(room.ID, Message{Event: EvtPlayerLeft, Data: PlayerLeftPayload{
			PlayerName: res.ParticipantName,
			Temporary:  true, // игрок может вернуться в окно переподключения
		}}, sess.conn)
	case res.WasSpectator && room.Status == domain.RoomWaiting:
		g.hub.BroadcastExcept(room.ID, Message{Event: EvtParticipantLeft, Data: ParticipantLeftPayload{
			ParticipantName: res.ParticipantName,
			Participants:    room.Participants(),
		}}, sess.conn)
	case res.WasSpectator:
		g.hub.BroadcastExcept(room.ID, Message{Event: EvtSpectatorLeft, Data: SpectatorLeftPayload{
			SpectatorName: res.ParticipantName,
		}}, sess.conn)
	}
}

func (g *Gateway) handleRoomExpired(roomID string) {
	// комната могла быть удалена другим путём — тогда no-op
	if !g.reg.Delete(roomID) {
		return
	}
	slog.Info("room deleted after timeout", "room", roomID)
	g.hub.DropRoom(roomID)
	g.clearRoomSessions(roomID)
	g.broadcastRooms()
}

// --- обработчики событий комнат ---

func (g *Gateway) handleCreateRoom(sess *session, data json.RawMessage) {
	var p CreateRoomPayload
	if err := decode(data, &p); err != nil {
		return
	}

	room := g.rooms.CreateRoom(sess.conn.ID(), p.PlayerName)
	sess.name = p.PlayerName
	sess.roomID = room.ID
	g.hub.Join(room.ID, sess.conn)

	_ = sess.conn.Send(Message{Event: EvtRoomCreated, Data: RoomCreatedPayload{
		RoomID:      room.ID,
		Symbol:      domain.SymbolX,
		IsHost:      true,
		WaitingRoom: true,
	}})
	g.broadcastRooms()
}

func (g *Gateway) handleJoinWaitingRoom(sess *session, data json.RawMessage) {
	var p JoinWaitingRoomPayload
	if err := decode(data, &p); err != nil {
		return
	}

	res, err := g.rooms.JoinWaitingRoom(p.RoomID, sess.conn.ID(), p.PlayerName, p.IsHost)
	if err != nil {
		g.sendError(sess.conn, "Room not found!")
		return
	}

	sess.name = p.PlayerName
	sess.roomID = p.RoomID
	g.hub.Join(p.RoomID, sess.conn)

	room := res.Room
	_ = sess.conn.Send(Message{Event: EvtWaitingRoomJoined, Data: WaitingRoomJoinedPayload{
		RoomID:       room.ID,
		Symbol:       res.Participant.Symbol,
		IsHost:       res.Participant.IsHost,
		IsSpectator:  res.IsSpectator,
		Participants: room.Participants(),
	}})

	if res.IsNew {
		g.hub.BroadcastExcept(room.ID, Message{Event: EvtParticipantJoined, Data: ParticipantJoinedPayload{
			Participant:  res.Participant,
			Participants: room.Participants(),
		}}, sess.conn)
	}

	// догоняем историю чата комнаты ожидания
	for _, m := range room.WaitingRoomMessages {
		_ = sess.conn.Send(Message{Event: EvtWaitingRoomMessage, Data: m})
	}
}

func (g *Gateway) handleLeaveWaitingRoom(sess *session, data json.RawMessage) {
	var p LeaveWaitingRoomPayload
	if err := decode(data, &p); err != nil {
		return
	}

	res, err := g.rooms.LeaveWaitingRoom(p.RoomID, p.PlayerName)
	if err != nil {
		g.sendError(sess.conn, "Room not found!")
		return
	}
	if !res.Removed {
		return
	}

	g.hub.Leave(p.RoomID, sess.conn)
	if sess.roomID == p.RoomID {
		sess.roomID = ""
	}

	g.hub.Broadcast(p.RoomID, Message{Event: EvtParticipantLeft, Data: ParticipantLeftPayload{
		ParticipantName: p.PlayerName,
		Participants:    res.Room.Participants(),
	}})
	if res.RoomDeleted {
		g.broadcastRooms()
	}
}

func (g *Gateway) handleWaitingRoomMessage(sess *session, data json.RawMessage) {
	var p ChatPayload
	if err := decode(data, &p); err != nil {
		return
	}

	msg, err := g.chat.AppendWaitingRoom(p.RoomID, p.Sender, p.Message, p.Symbol)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			g.sendError(sess.conn, "Room not found!")
		}
		return
	}
	g.hub.Broadcast(p.RoomID, Message{Event: EvtWaitingRoomMessage, Data: msg})
}

func (g *Gateway) handleStartGame(sess *session, data json.RawMessage) {
	var p StartGamePayload
	if err := decode(data, &p); err != nil {
		return
	}

	room, err := g.rooms.StartGame(p.RoomID, sess.conn.ID(), p.PlayerName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			g.sendError(sess.conn, "Room not found")
		case errors.Is(err, domain.ErrNotEnoughPlayers):
			g.sendError(sess.conn, "Need at least 2 players to start the game")
		case errors.Is(err, domain.ErrPlayerNotFound):
			g.sendError(sess.conn, "Player not found in room")
		case errors.Is(err, domain.ErrNotHost):
			g.sendError(sess.conn, "Only the host can start the game")
		}
		return
	}

	g.hub.Broadcast(room.ID, Message{Event: EvtGameStarting})
}

func (g *Gateway) handleJoinRoom(sess *session, data json.RawMessage) {
	var p JoinRoomPayload
	if err := decode(data, &p); err != nil {
		return
	}

	res, err := g.rooms.JoinRoom(p.RoomID, sess.conn.ID(), p.PlayerName, p.AsSpectator)
	if err != nil {
		g.sendError(sess.conn, "Room does not exist!")
		return
	}

	sess.name = p.PlayerName
	sess.roomID = p.RoomID
	g.hub.Join(p.RoomID, sess.conn)
	room := res.Room
	waiting := room.Status == domain.RoomWaiting

	if res.IsSpectator {
		if res.CapacityRedirect {
			g.sendError(sess.conn, "Room is full! Joining as spectator.")
		}
		if sp := room.SpectatorByConn(sess.conn.ID()); sp != nil && res.IsNew {
			g.hub.BroadcastExcept(room.ID, Message{Event: EvtSpectatorJoined, Data: SpectatorJoinedPayload{
				Spectator: sp,
			}}, sess.conn)
		}
		_ = sess.conn.Send(Message{Event: EvtRoomJoined, Data: RoomJoinedPayload{
			RoomID:      room.ID,
			IsSpectator: true,
			WaitingRoom: waiting,
		}})
		return
	}

	player := room.PlayerByConn(sess.conn.ID())
	_ = sess.conn.Send(Message{Event: EvtRoomJoined, Data: RoomJoinedPayload{
		RoomID:      room.ID,
		Symbol:      res.Participant.Symbol,
		IsHost:      res.Participant.IsHost,
		WaitingRoom: waiting,
	}})
	g.hub.BroadcastExcept(room.ID, Message{Event: EvtPlayerJoined, Data: PlayerJoinedPayload{
		Player: player,
	}}, sess.conn)

	if res.Reconnected {
		g.hub.Broadcast(room.ID, Message{Event: EvtParticipantsUpdate, Data: ParticipantsUpdatePayload{
			Participants: room.Participants(),
		}})
	}
}

func (g *Gateway) handleCheckRoom(sess *session, data json.RawMessage) {
	var p CheckRoomPayload
	if err := decode(data, &p); err != nil {
		return
	}

	room, err := g.rooms.CheckRoom(p.RoomID)
	if err != nil {
		_ = sess.conn.Send(Message{Event: EvtRoomStatus, Data: RoomStatusPayload{RoomID: p.RoomID}})
		return
	}

	_ = sess.conn.Send(Message{Event: EvtRoomStatus, Data: RoomStatusPayload{
		RoomID: room.ID,
		Exists: true,
		Players: lo.Map(room.Players, func(pl *domain.Player, _ int) PlayerInfo {
			return PlayerInfo{Name: pl.Name, Symbol: pl.Symbol, Connected: pl.Connected}
		}),
		Status: room.Status,
	}})
}

func (g *Gateway) handleReconnectToRoom(sess *session, data json.RawMessage) {
	var p ReconnectPayload
	if err := decode(data, &p); err != nil {
		return
	}

	res, err := g.rooms.ReconnectToRoom(p.RoomID, sess.conn.ID(), p.PlayerName, p.Symbol)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			g.sendError(sess.conn, "Room does not exist anymore!")
		case errors.Is(err, domain.ErrSeatTaken):
			g.sendError(sess.conn, "This player position is already taken!")
		case errors.Is(err, domain.ErrRoomFull):
			g.sendError(sess.conn, "Room is full!")
		}
		return
	}

	sess.name = p.PlayerName
	sess.roomID = p.RoomID
	g.hub.Join(p.RoomID, sess.conn)
	room := res.Room

	g.hub.Broadcast(room.ID, Message{Event: EvtParticipantsUpdate, Data: ParticipantsUpdatePayload{
		Participants: room.Participants(),
	}})

	// переподключившемуся — полное состояние комнаты
	_ = sess.conn.Send(Message{Event: EvtRoomJoined, Data: RoomJoinedPayload{
		RoomID:        room.ID,
		Symbol:        res.Participant.Symbol,
		IsHost:        res.Participant.IsHost,
		WaitingRoom:   room.Status == domain.RoomWaiting,
		GameState:     &room.Board,
		CurrentPlayer: room.CurrentPlayer,
		Players:       room.Players,
		Scores:        room.Scores,
		Participants:  room.Participants(),
	}})
	g.hub.BroadcastExcept(room.ID, Message{Event: EvtPlayerJoined, Data: PlayerJoinedPayload{
		Player: room.PlayerByConn(sess.conn.ID()),
	}}, sess.conn)
}

func (g *Gateway) handleMakeMove(sess *session, data json.RawMessage) {
	var p MakeMovePayload
	if err := decode(data, &p); err != nil {
		return
	}

	res, err := g.games.MakeMove(p.RoomID, sess.conn.ID(), p.CellIndex)
	if err != nil {
		g.sendError(sess.conn, "Room not found")
		return
	}
	if res == nil {
		// нелегальный ход: состояние не тронуто, рассылки нет
		return
	}

	room := res.Room
	g.hub.Broadcast(room.ID, Message{Event: EvtMoveMade, Data: MoveMadePayload{
		CellIndex: res.CellIndex,
		Symbol:    res.Symbol,
		GameState: room.Board,
	}})

	if res.Outcome.Over() {
		g.hub.Broadcast(room.ID, Message{Event: EvtGameOver, Data: GameOverPayload{
			Winner:             res.Outcome.Winner,
			WinningCombination: res.Outcome.Line,
			Draw:               res.Outcome.Draw,
			Scores:             room.Scores,
		}})
		return
	}
	g.hub.Broadcast(room.ID, Message{Event: EvtPlayerTurnChanged, Data: TurnChangedPayload{
		CurrentPlayer: room.CurrentPlayer,
	}})
}

func (g *Gateway) handleRestartGame(sess *session, data json.RawMessage) {
	var p RestartGamePayload
	if err := decode(data, &p); err != nil {
		return
	}

	room, err := g.games.RestartGame(p.RoomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			g.sendError(sess.conn, "Room not found")
		case errors.Is(err, domain.ErrNotEnoughPlayers):
			g.sendError(sess.conn, "Cannot restart game - waiting for opponent")
		}
		return
	}

	g.hub.Broadcast(room.ID, Message{Event: EvtGameRestarted, Data: GameRestartedPayload{
		GameState:     room.Board,
		CurrentPlayer: room.CurrentPlayer,
	}})
}

func (g *Gateway) handleChatMessage(sess *session, data json.RawMessage) {
	var p ChatPayload
	if err := decode(data, &p); err != nil {
		return
	}

	msg, err := g.chat.AppendGame(p.RoomID, p.Sender, p.Message, p.Symbol)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			g.sendError(sess.conn, "Room not found!")
		}
		return
	}
	g.hub.Broadcast(p.RoomID, Message{Event: EvtChatMessage, Data: msg})
}

// --- подбор случайного соперника ---

func (g *Gateway) handleFindRandomMatch(sess *session, data json.RawMessage) {
	var p FindRandomMatchPayload
	if err := decode(data, &p); err != nil {
		return
	}

	sess.name = p.PlayerName
	if !g.queue.Enqueue(sess.conn.ID(), p.PlayerName) {
		return
	}

	a, b, ok := g.queue.TakePair()
	if !ok {
		return
	}

	// создание комнаты и рассадка атомарны в рамках этого события:
	// третий игрок полупары не увидит
	room := g.reg.CreateFromMatch(a.ConnID, a.PlayerName, b.ConnID, b.PlayerName)
	players := []MatchPlayer{
		{Name: a.PlayerName, Symbol: domain.SymbolX},
		{Name: b.PlayerName, Symbol: domain.SymbolO},
	}

	g.seatMatched(room.ID, a.ConnID, domain.SymbolX, true, b.PlayerName, players)
	g.seatMatched(room.ID, b.ConnID, domain.SymbolO, false, a.PlayerName, players)
	slog.Info("players matched", "room", room.ID, "x", a.PlayerName, "o", b.PlayerName)
	g.broadcastRooms()
}

func (g *Gateway) seatMatched(roomID, connID string, symbol domain.Symbol, isHost bool, opponent string, players []MatchPlayer) {
	sess, ok := g.sessions[connID]
	if !ok {
		return
	}
	sess.roomID = roomID
	g.hub.Join(roomID, sess.conn)
	_ = sess.conn.Send(Message{Event: EvtRandomMatchFound, Data: RandomMatchFoundPayload{
		RoomID:       roomID,
		Symbol:       symbol,
		IsHost:       isHost,
		WaitingRoom:  false,
		OpponentName: opponent,
		Players:      players,
	}})
}

func (g *Gateway) handleCancelRandomMatch(sess *session) {
	g.queue.Remove(sess.conn.ID())

	if sess.roomID == "" {
		return
	}
	res := g.rooms.CancelRandomMatchRoom(sess.roomID, sess.conn.ID())
	if res == nil {
		return
	}

	roomID := res.Room.ID
	g.hub.Broadcast(roomID, Message{Event: EvtRandomMatchCancelled, Data: RandomMatchCancelledPayload{
		Message:     res.CancelledBy + " cancelled the match",
		CancelledBy: res.CancelledBy,
		RoomID:      roomID,
		Reason:      "cancelled",
	}})
	g.hub.DropRoom(roomID)
	g.clearRoomSessions(roomID)
	g.broadcastRooms()
}

func (g *Gateway) handleRandomMatchGameStarted(sess *session, data json.RawMessage) {
	var p RandomMatchGameStartedPayload
	if err := decode(data, &p); err != nil {
		return
	}

	room, err := g.games.StartRandomMatch(p.RoomID)
	if err != nil {
		g.sendError(sess.conn, "Room not found")
		return
	}

	g.hub.Broadcast(room.ID, Message{Event: EvtGameInitialized, Data: GameInitializedPayload{
		GameState:     room.Board,
		CurrentPlayer: room.CurrentPlayer,
		Players:       room.Players,
		GameActive:    true,
	}})
}

// --- helpers ---

func (g *Gateway) sendError(c Conn, text string) {
	_ = c.Send(Message{Event: EvtError, Data: ErrorPayload{Message: text}})
}

func (g *Gateway) broadcastRooms() {
	g.hub.BroadcastAll(Message{Event: EvtAvailableRooms, Data: g.reg.IDs()})
}

func (g *Gateway) clearRoomSessions(roomID string) {
	for _, s := range g.sessions {
		if s.roomID == roomID {
			s.roomID = ""
		}
	}
}

func decode(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(data, dst)
}

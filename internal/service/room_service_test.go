package service

import (
	"testing"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
)

func newRoomService() (*RoomService, *registry.Registry) {
	reg := registry.New(time.Minute)
	return NewRoomService(reg), reg
}

func TestJoinWaitingRoomSecondPlayerGetsO(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	res, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !res.IsNew || res.IsSpectator {
		t.Fatalf("bob must be a new player: %+v", res)
	}
	if res.Participant.Symbol != domain.SymbolO {
		t.Fatalf("second player must take O, got %q", res.Participant.Symbol)
	}
	if res.Participant.IsHost {
		t.Fatalf("second player must not become host")
	}
}

func TestJoinWaitingRoomThirdBecomesSpectator(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	res, err := svc.JoinWaitingRoom(room.ID, "conn-c", "carol", false)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !res.IsSpectator {
		t.Fatalf("third participant must be a spectator")
	}
	if res.Participant.Symbol != domain.SymbolSpectator {
		t.Fatalf("spectator symbol expected, got %q", res.Participant.Symbol)
	}
	if got := room.ParticipantCount(); got != 3 {
		t.Fatalf("expected 3 participants, got %d", got)
	}
}

func TestJoinWaitingRoomSameNameIsRejoin(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	// alice вернулась с новым соединением
	res, err := svc.JoinWaitingRoom(room.ID, "conn-a2", "alice", false)
	if err != nil {
		t.Fatalf("rejoin failed: %v", err)
	}
	if res.IsNew || !res.Reconnected {
		t.Fatalf("same name must resolve to rejoin: %+v", res)
	}
	if len(room.Players) != 1 {
		t.Fatalf("rejoin must not add a seat, got %d players", len(room.Players))
	}
	if room.Players[0].ConnID != "conn-a2" {
		t.Fatalf("seat must carry the new conn id, got %q", room.Players[0].ConnID)
	}
	if !room.Players[0].IsHost {
		t.Fatalf("creator must keep host on rejoin")
	}
}

func TestCreatorAlwaysGetsX(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	// bob занял X, пока alice отсутствовала
	room.Players = nil
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if room.Players[0].Symbol != domain.SymbolX {
		t.Fatalf("first seat must be X, got %q", room.Players[0].Symbol)
	}

	res, err := svc.JoinWaitingRoom(room.ID, "conn-a2", "alice", false)
	if err != nil {
		t.Fatalf("creator join failed: %v", err)
	}
	if res.Participant.Symbol != domain.SymbolX {
		t.Fatalf("creator must end up with X, got %q", res.Participant.Symbol)
	}
	if bob := room.PlayerByName("bob"); bob.Symbol != domain.SymbolO {
		t.Fatalf("incumbent must be swapped to O, got %q", bob.Symbol)
	}
	if !res.Participant.IsHost {
		t.Fatalf("creator must be host after swap")
	}
}

func TestJoinRoomCapacityRedirect(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	res, err := svc.JoinRoom(room.ID, "conn-c", "carol", false)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !res.IsSpectator || !res.CapacityRedirect {
		t.Fatalf("full room must redirect to spectator: %+v", res)
	}
}

func TestJoinRoomExplicitSpectator(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	res, err := svc.JoinRoom(room.ID, "conn-b", "bob", true)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if !res.IsSpectator || res.CapacityRedirect {
		t.Fatalf("explicit spectator is not a redirect: %+v", res)
	}
	if len(room.Players) != 1 {
		t.Fatalf("spectator must not take a seat")
	}
}

func TestReconnectTakesOverDisconnectedSeat(t *testing.T) {
	svc, reg := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	svc.HandleDisconnect(room.ID, "conn-a")

	res, err := svc.ReconnectToRoom(room.ID, "conn-a2", "alice", domain.SymbolX)
	if err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if !res.Reconnected {
		t.Fatalf("expected reconnect flag")
	}
	p := room.PlayerBySymbol(domain.SymbolX)
	if p.ConnID != "conn-a2" || !p.Connected {
		t.Fatalf("seat must be taken over: %+v", p)
	}
	if !p.IsHost {
		t.Fatalf("creator must get host back on reconnect")
	}
	if reg.HasPendingDeletion(room.ID) {
		t.Fatalf("reconnect must cancel any deletion timer")
	}
}

func TestReconnectLiveSeatConflict(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	if _, err := svc.ReconnectToRoom(room.ID, "conn-z", "mallory", domain.SymbolX); err != domain.ErrSeatTaken {
		t.Fatalf("live seat must conflict, got %v", err)
	}
}

func TestReconnectSymbolMismatchConflict(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	svc.HandleDisconnect(room.ID, "conn-a")

	// alice сидела за X, просится за O
	if _, err := svc.ReconnectToRoom(room.ID, "conn-a2", "alice", domain.SymbolO); err != domain.ErrSeatTaken {
		t.Fatalf("symbol mismatch must conflict, got %v", err)
	}
}

func TestReconnectFreshJoinWhenSeatFree(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	res, err := svc.ReconnectToRoom(room.ID, "conn-b", "bob", domain.SymbolNone)
	if err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if res.Participant.Symbol != domain.SymbolO {
		t.Fatalf("free seat must be the complement O, got %q", res.Participant.Symbol)
	}
}

func TestReconnectFullRoom(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if _, err := svc.ReconnectToRoom(room.ID, "conn-c", "carol", domain.SymbolNone); err != domain.ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestLeaveWaitingRoomHostHandoff(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	res, err := svc.LeaveWaitingRoom(room.ID, "alice")
	if err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if !res.Removed || res.RoomDeleted {
		t.Fatalf("bob keeps the room alive: %+v", res)
	}
	if res.NewHost == nil || res.NewHost.Name != "bob" {
		t.Fatalf("host must pass to bob, got %+v", res.NewHost)
	}
	if !room.PlayerByName("bob").IsHost {
		t.Fatalf("bob must carry the host flag")
	}
}

func TestLeaveWaitingRoomLastParticipantDeletes(t *testing.T) {
	svc, reg := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	res, err := svc.LeaveWaitingRoom(room.ID, "alice")
	if err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if !res.RoomDeleted {
		t.Fatalf("empty room must be deleted immediately")
	}
	if _, err := reg.Get(room.ID); err != domain.ErrRoomNotFound {
		t.Fatalf("room must be gone, got %v", err)
	}
}

func TestStartGameAuthorization(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	if _, err := svc.StartGame(room.ID, "conn-a", "alice"); err != domain.ErrNotEnoughPlayers {
		t.Fatalf("solo start must fail, got %v", err)
	}

	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if _, err := svc.StartGame(room.ID, "conn-b", "bob"); err != domain.ErrNotHost {
		t.Fatalf("non-host start must fail, got %v", err)
	}
	if _, err := svc.StartGame(room.ID, "conn-x", "mallory"); err != domain.ErrPlayerNotFound {
		t.Fatalf("stranger start must fail, got %v", err)
	}

	started, err := svc.StartGame(room.ID, "conn-a", "alice")
	if err != nil {
		t.Fatalf("host start failed: %v", err)
	}
	if started.Status != domain.RoomPlaying || !started.GameActive {
		t.Fatalf("room must be playing: %q active=%v", started.Status, started.GameActive)
	}
	if started.CurrentPlayer != domain.SymbolX {
		t.Fatalf("X always opens, got %q", started.CurrentPlayer)
	}
}

func TestStartGameCreatorRegainsHost(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	// хост-флаг потерян, но личность создателя стабильна
	room.PlayerByName("alice").IsHost = false

	if _, err := svc.StartGame(room.ID, "conn-a2", "alice"); err != nil {
		t.Fatalf("creator must be allowed to start: %v", err)
	}
	if !room.PlayerByName("alice").IsHost {
		t.Fatalf("host flag must be restored to creator")
	}
}

func TestHandleDisconnectPlayer(t *testing.T) {
	svc, reg := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinWaitingRoom(room.ID, "conn-b", "bob", false); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	res := svc.HandleDisconnect(room.ID, "conn-b")
	if res == nil || !res.WasPlayer {
		t.Fatalf("bob is a player: %+v", res)
	}
	bob := room.PlayerByName("bob")
	if bob == nil || bob.Connected {
		t.Fatalf("player must stay seated but disconnected")
	}
	if bob.DisconnectedAt.IsZero() {
		t.Fatalf("disconnect must be timestamped")
	}
	if res.DeletionScheduled || reg.HasPendingDeletion(room.ID) {
		t.Fatalf("timer must not arm while alice is connected")
	}

	res = svc.HandleDisconnect(room.ID, "conn-a")
	if !res.DeletionScheduled || !reg.HasPendingDeletion(room.ID) {
		t.Fatalf("timer must arm once all players are gone")
	}
}

func TestHandleDisconnectSpectatorRemoved(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")
	if _, err := svc.JoinRoom(room.ID, "conn-c", "carol", true); err != nil {
		t.Fatalf("join failed: %v", err)
	}

	res := svc.HandleDisconnect(room.ID, "conn-c")
	if res == nil || !res.WasSpectator {
		t.Fatalf("carol is a spectator: %+v", res)
	}
	if room.SpectatorByName("carol") != nil {
		t.Fatalf("spectator must be removed outright")
	}
}

func TestHandleDisconnectUnknownConn(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	if res := svc.HandleDisconnect(room.ID, "conn-z"); res != nil {
		t.Fatalf("unknown conn must be a no-op, got %+v", res)
	}
}

func TestCancelRandomMatchRoom(t *testing.T) {
	svc, reg := newRoomService()
	room := reg.CreateFromMatch("conn-a", "alice", "conn-b", "bob")

	res := svc.CancelRandomMatchRoom(room.ID, "conn-b")
	if res == nil {
		t.Fatalf("pre-start match must be cancellable")
	}
	if res.CancelledBy != "bob" {
		t.Fatalf("expected bob, got %q", res.CancelledBy)
	}
	if _, err := reg.Get(room.ID); err != domain.ErrRoomNotFound {
		t.Fatalf("room must be gone, got %v", err)
	}
}

func TestCancelRandomMatchRoomAfterStart(t *testing.T) {
	svc, reg := newRoomService()
	room := reg.CreateFromMatch("conn-a", "alice", "conn-b", "bob")
	room.GameStartedAt = time.Now()

	if res := svc.CancelRandomMatchRoom(room.ID, "conn-a"); res != nil {
		t.Fatalf("started match must not be cancellable, got %+v", res)
	}
}

func TestCancelRandomMatchRoomNotRandom(t *testing.T) {
	svc, _ := newRoomService()
	room := svc.CreateRoom("conn-a", "alice")

	if res := svc.CancelRandomMatchRoom(room.ID, "conn-a"); res != nil {
		t.Fatalf("regular room must not be cancellable, got %+v", res)
	}
}

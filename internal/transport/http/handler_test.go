package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/matchmaking"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
	"github.com/cwrk-planet/tictactoe-service/internal/service"
	"github.com/cwrk-planet/tictactoe-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
)

func newDebugFixture(t *testing.T) (*Handler, *registry.Registry) {
	t.Helper()
	reg := registry.New(time.Minute)
	gw := ws.NewGateway(
		ws.NewHub(),
		reg,
		service.NewRoomService(reg),
		service.NewGameService(reg),
		service.NewChatService(reg, 50),
		matchmaking.NewQueue(),
	)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go gw.Run(ctx)
	return NewHandler(gw), reg
}

func TestListRooms(t *testing.T) {
	h, reg := newDebugFixture(t)
	reg.Create("conn-a", "alice")

	rec := httptest.NewRecorder()
	h.ListRooms(rec, httptest.NewRequest("GET", "/rooms", nil))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp RoomsListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 room, got %d", len(resp.Items))
	}
	if s := resp.Items[0]; s.PlayerCount != 1 || s.Status != domain.RoomWaiting {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestGetRoom(t *testing.T) {
	h, reg := newDebugFixture(t)
	room := reg.Create("conn-a", "alice")

	rec := httptest.NewRecorder()
	h.GetRoom(rec, roomRequest(room.ID))

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var sum registry.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if sum.ID != room.ID || sum.PlayerCount != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestGetRoomNotFound(t *testing.T) {
	h, _ := newDebugFixture(t)

	rec := httptest.NewRecorder()
	h.GetRoom(rec, roomRequest("nope1234"))

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// roomRequest готовит запрос с chi-параметром {id}.
func roomRequest(id string) *http.Request {
	req := httptest.NewRequest("GET", "/rooms/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

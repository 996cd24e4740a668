package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cwrk-planet/tictactoe-service/internal/domain"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
	"github.com/cwrk-planet/tictactoe-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
)

// Handler отдаёт debug-срезы комнат. Снапшоты запрашиваются у диспетчера
// шлюза: состояние комнат нельзя читать параллельно с его мутациями.
type Handler struct {
	gw *ws.Gateway
}

func NewHandler(gw *ws.Gateway) *Handler {
	return &Handler{gw: gw}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RoomsListResponse struct {
	Items []registry.Summary `json:"items"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	items, err := h.gw.RoomSummaries(r.Context())
	if err != nil {
		slog.Error("handler.ListRooms:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, RoomsListResponse{Items: items})
}

// GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sum, err := h.gw.RoomSummary(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.GetRoom:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

package http

import (
	"net/http"

	"github.com/cwrk-planet/tictactoe-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, gw *ws.Gateway, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint
	r.Get("/ws", gw.HandleWS)

	r.Route("/rooms", func(rm chi.Router) {
		rm.Get("/", h.ListRooms)
		rm.Get("/{id}", h.GetRoom)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// клиентская статика
	r.Handle("/*", http.FileServer(http.Dir(staticDir)))

	return r
}

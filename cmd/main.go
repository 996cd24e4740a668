package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/logger/pkg/logger"
	"github.com/cwrk-planet/tictactoe-service/config"
	"github.com/cwrk-planet/tictactoe-service/internal/matchmaking"
	"github.com/cwrk-planet/tictactoe-service/internal/registry"
	"github.com/cwrk-planet/tictactoe-service/internal/service"
	httpx "github.com/cwrk-planet/tictactoe-service/internal/transport/http"
	"github.com/cwrk-planet/tictactoe-service/internal/transport/ws"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting tictactoe-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- domain wiring ---
	reg := registry.New(cfg.ReconnectGrace())
	queue := matchmaking.NewQueue()
	roomSvc := service.NewRoomService(reg)
	gameSvc := service.NewGameService(reg)
	chatSvc := service.NewChatService(reg, cfg.Game.ChatHistoryLimit)

	// --- WS Hub & Gateway ---
	hub := ws.NewHub()
	gateway := ws.NewGateway(hub, reg, roomSvc, gameSvc, chatSvc, queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gateway.Run(ctx)

	// --- HTTP ---
	handler := httpx.NewHandler(gateway)
	router := httpx.NewRouter(handler, gateway, cfg.HTTP.StaticDir)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	cancel()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}

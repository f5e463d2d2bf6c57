package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-file-manager/internal/config"
	"go-file-manager/internal/handler"
	"go-file-manager/internal/router"
	"go-file-manager/internal/websocket"
)

type App struct {
	server       *http.Server
	core         *Core
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	core, err := NewCore(cfg)
	if err != nil {
		return nil, err
	}

	hub := websocket.NewHub(core.Bus)
	hubCtx, hubCancel := context.WithCancel(context.Background())

	entryHandler := handler.NewEntryHandler(core.Service, cfg.MaxUploadSize)
	viewHandler := handler.NewViewHandler(core.Service)
	storageHandler := handler.NewStorageHandler(core.Service)

	appRouter := router.New(cfg, router.Handlers{
		Entry:   entryHandler,
		View:    viewHandler,
		Storage: storageHandler,
	}, hub)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	core.Start()
	go hub.Run(hubCtx)

	return &App{
		server: server,
		core:   core,
		cleanupFuncs: []func(){
			hubCancel,
			core.Stop,
		},
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop accepting requests before the store goes away.
	shutdownErr := a.server.Shutdown(ctx)

	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"go-file-manager/internal/config"
	"go-file-manager/internal/event"
	"go-file-manager/internal/preview"
	"go-file-manager/internal/service"
	"go-file-manager/internal/store"
)

// Core is the part shared by the HTTP server and the terminal client: the
// store, its loop, the event bus and the entry service on top.
type Core struct {
	Bus     *event.InMemoryBus
	Service *service.EntryService

	loop   *store.Loop
	cancel context.CancelFunc
}

func NewCore(cfg *config.Config) (*Core, error) {
	st, err := store.New(cfg.PreviewCacheEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	loop := store.NewLoop(st)
	bus := event.NewBus()
	svc := service.NewEntryService(loop, preview.NewGenerator(cfg.ThumbnailSize), bus)

	return &Core{Bus: bus, Service: svc, loop: loop}, nil
}

// Start runs the store loop until Stop.
func (c *Core) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.loop.Run(ctx)
}

// Stop lets in-flight preview reads post their entries, then stops the loop.
func (c *Core) Stop() {
	c.Service.Wait()

	if c.cancel != nil {
		c.cancel()
		<-c.loop.Done()
	}
	slog.Debug("store loop stopped")
}

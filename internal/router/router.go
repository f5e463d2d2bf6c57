package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-file-manager/internal/config"
	"go-file-manager/internal/handler"
	"go-file-manager/internal/metrics"
	"go-file-manager/internal/middleware"
	"go-file-manager/internal/websocket"
)

type Handlers struct {
	Entry   *handler.EntryHandler
	View    *handler.ViewHandler
	Storage *handler.StorageHandler
}

func New(cfg *config.Config, handlers Handlers, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, "/health", "/metrics", "/api/v1/events")

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		// The change feed is long-lived and needs the raw connection.
		api.Get("/events", hub.ServeWS)

		api.Group(func(timed chi.Router) {
			timed.Use(middleware.Timeout(cfg.RequestTimeout))

			timed.Get("/view", handlers.View.Get)
			timed.Get("/storage", handlers.Storage.Usage)

			timed.Post("/folders", handlers.Entry.CreateFolder)
			timed.Post("/entries/upload", handlers.Entry.Upload)
			timed.Get("/entries/{id}", handlers.Entry.Get)
			timed.Put("/entries/{id}/name", handlers.Entry.Rename)
			timed.Post("/entries/{id}/delete", handlers.Entry.Delete)
			timed.Post("/entries/{id}/restore", handlers.Entry.Restore)
			timed.Delete("/entries/{id}", handlers.Entry.Purge)
			timed.Get("/entries/{id}/download", handlers.Entry.Download)
			timed.Get("/entries/{id}/thumbnail", handlers.Entry.Thumbnail)
		})
	})

	return r
}

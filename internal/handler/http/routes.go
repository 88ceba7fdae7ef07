package http

import (
	"github.com/focusflow/focusflow-server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/auth/google", h.googleLogin)
		r.Get("/auth/google/callback", h.googleCallback)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/sync", h.sync)
		r.Get("/api/sync/status", h.syncStatus)

		r.Route("/api/notes", h.entityRoutes(models.EntityTypeNote))
		r.Route("/api/tasks", h.entityRoutes(models.EntityTypeTask))
		r.Route("/api/habits", h.entityRoutes(models.EntityTypeHabit))

		r.Post("/api/backup", h.createBackup)
		r.Post("/api/backup/list", h.listBackups)
		r.Post("/api/backup/restore", h.restoreBackup)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// entityRoutes registers the CRUD surface of one entity kind. The handlers
// are shared; only the kind closed over differs.
func (h *Handler) entityRoutes(kind models.EntityType) func(r chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.listEntities(kind))
		r.Post("/", h.createEntity(kind))
		r.Get("/{id}", h.getEntity(kind))
		r.Put("/{id}", h.updateEntity(kind))
		r.Delete("/{id}", h.deleteEntity(kind))
	}
}

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID)

	// sync connections are long lived: no access log wrapper, no timeout
	router.With(h.syncLimit, h.auth).Get("/api/sync", h.sync)

	router.Group(func(r chi.Router) {
		r.Use(h.withLogging)
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}

		r.Get("/api/version", h.getServerVersion)
		r.With(h.internalAuth).Post("/api/internal/changes", h.publishChanges)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/api/user/sync", h.forceSyncRepositories)
			r.Route("/api/query/{id}", func(r chi.Router) {
				r.Get("/", h.getQuery)
				r.Put("/", h.saveQuery)
				r.Put("/watch", h.watchQuery)
				r.Delete("/watch", h.unwatchQuery)
			})
		})
	})

	return router
}

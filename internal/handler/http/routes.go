package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// per-user documents; the watch feed authenticates via a token query
	// parameter because browsers cannot set headers on websocket upgrades
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/api/docs/{collection}/{docID}", func(r chi.Router) {
			r.Get("/", h.getDocument)
			r.Patch("/", h.mergeDocument)
			r.Get("/watch", h.watchDocument)
		})
	})

	return router
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

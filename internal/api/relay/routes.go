package relay

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers relay routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/python-health", h.UpstreamHealth)
		r.Post("/query", h.Query)
	})
}

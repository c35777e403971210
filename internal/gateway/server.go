package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Public — no auth required.
	r.Get("/health", g.handleHealth())
	r.Handle("/metrics", g.metrics.Handler())

	r.Group(func(r chi.Router) {
		if g.cfg.Server.AuthToken != "" {
			r.Use(authMiddleware(g.cfg.Server.AuthToken, g.cfg.Audit))
		}
		r.Route("/api", func(r chi.Router) {
			r.Post("/sessions", g.handleCreateSession())
			r.Get("/sessions", g.handleListSessions())
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", g.handleGetSession())
				r.Delete("/", g.handleDeleteSession())
				r.Put("/selection", g.handleSetSelection())
				r.Get("/tools", g.handleListTools())
				r.Post("/tools/{name}", g.handleDispatchTool())
				r.Post("/snapshot", g.handleSaveSnapshot())
				r.Post("/restore", g.handleRestoreSnapshot())
				r.Get("/events", g.handleEvents())
			})
		})
	})

	return r
}

package session

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all session endpoints onto the given router
// under the /sessions prefix.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", a.Create)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", a.Show)
			r.Delete("/", a.Remove)
			r.Post("/events", a.ApplyEvents)
			r.Post("/keys", a.ApplyKeys)
			r.Get("/ws", a.Stream)
		})
	})
}

package session

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts all keypad endpoints onto the given router under
// the /keypad prefix.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/keypad", func(r chi.Router) {
		r.Post("/", a.Create)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", a.Read)
			r.Delete("/", a.Remove)
			r.Post("/press", a.Press)
			r.Post("/keys", a.Keys)
		})
	})
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"keypad-calculator/internal/handlers"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/session"
)

// NewRouter wires the middleware chain, infrastructure endpoints and the
// keypad session API.
func NewRouter(api *session.API) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	api.RegisterRoutes(r)

	return r
}

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"calcpad/internal/handlers"
	"calcpad/internal/observability"
	"calcpad/internal/session"
)

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

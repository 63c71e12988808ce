package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apiMiddleware "tradegate/internal/api/middleware"
)

// setupRouter assembles the middleware chain and routes. Trace runs before
// the request logger so every log line of a request carries its trace ID.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTrace(app.logger))
	r.Use(apiMiddleware.RequestLog)
	r.Use(apiMiddleware.Metrics)
	r.Use(middleware.Recoverer)

	r.Post("/rpc", app.handler.HandleRPC)
	r.Post("/soap", app.handler.HandleSOAP)
	r.Get("/rpc/schema", app.handler.Schema)
	r.Get("/health", app.handler.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

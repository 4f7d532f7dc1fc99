// Package http wires the chi router, handlers, and middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/fxledger/internal/adapter/http/handler"
	"github.com/iho/fxledger/internal/adapter/http/middleware"
	"github.com/iho/fxledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	BalanceHandler   *handler.BalanceHandler
	ExchangeHandler  *handler.ExchangeHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{number}", cfg.AccountHandler.Get)
			r.Get("/{number}/balances", cfg.BalanceHandler.ListByAccount)
			r.Get("/{number}/transactions", cfg.BalanceHandler.Transactions)
		})

		r.Route("/balances", func(r chi.Router) {
			r.Post("/credit", cfg.BalanceHandler.Credit)
			r.Post("/debit", cfg.BalanceHandler.Debit)
		})

		r.Route("/exchange", func(r chi.Router) {
			r.Post("/floating", cfg.ExchangeHandler.Floating)
			r.Post("/fixed", cfg.ExchangeHandler.Fixed)
		})
	})

	return r
}

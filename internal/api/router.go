/**
 * @description
 * This file sets up the HTTP router for the payment-service. It defines the
 * public API endpoints, associates them with their handlers and applies the
 * shared middleware stack (request ids, access logging, panic recovery,
 * timeouts and CORS for the dashboard).
 *
 * @dependencies
 * - github.com/go-chi/chi/v5: routing and stock middleware.
 * - github.com/go-chi/cors: CORS handling for the dashboard origins.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/transfa/payment-service/internal/app"
)

// RouterOptions carries the settings the router needs besides the handlers.
type RouterOptions struct {
	AllowedOrigins []string
	RateLimiter    app.RateLimiter
}

// NewRouter creates the chi router and registers the payment-service routes.
func NewRouter(h *Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(AccessLogMiddleware(h.log))
	r.Use(RecoverMiddleware(h.log))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)

		r.With(RateLimitMiddleware(opts.RateLimiter, h.log)).Post("/payment", h.CreatePaymentHandler)
		r.Get("/payments", h.ListPaymentsHandler)
		r.Get("/payments/status/{status}", h.ListPaymentsByStatusHandler)
		r.Get("/payments/{id}", h.GetPaymentHandler)

		r.Post("/auth/login", h.LoginHandler)
		r.Post("/auth/verify", h.VerifyHandler)
		r.Post("/auth/logout", h.LogoutHandler)

		r.Post("/qr-code", h.GenerateQRCodeHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Resource not found")
	})

	return r
}

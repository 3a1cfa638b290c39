// Copyright (c) 2026 Libris. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nlamduy/libris/internal/assets"
	"github.com/nlamduy/libris/internal/core/book"
	"github.com/nlamduy/libris/internal/core/borrowing"
	"github.com/nlamduy/libris/internal/core/category"
	"github.com/nlamduy/libris/internal/core/fine"
	"github.com/nlamduy/libris/internal/core/reservation"
	"github.com/nlamduy/libris/internal/core/review"
	"github.com/nlamduy/libris/internal/platform/config"
	"github.com/nlamduy/libris/internal/platform/constants"
	"github.com/nlamduy/libris/internal/platform/middleware"
	"github.com/nlamduy/libris/internal/platform/respond"
	"github.com/nlamduy/libris/internal/users"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Users handles accounts, sessions, and profile routes.
	Users *users.Handler

	// Book handles the catalogue and the physical copy inventory.
	Book *book.Handler

	// Borrowing handles active loans and returns.
	Borrowing *borrowing.Handler

	// Reservation handles copy holds.
	Reservation *reservation.Handler

	// Review handles reader ratings and comments.
	Review *review.Handler

	// Category handles the genre taxonomy.
	Category *category.Handler

	// Fine handles late-return penalties.
	Fine *fine.Handler

	// Assets serves the bundled single-page frontend for non-API paths.
	Assets *assets.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, revoker middleware.TokenRevoker, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier, revoker))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under the /api prefix. The
	// frontend build addresses every backend call through this prefix.
	r.Route("/api", func(api chi.Router) {
		api.Get("/hello", hello)

		h.Users.RegisterRoutes(api)

		// Everything past this point requires a valid session.
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireAuth)

			h.Book.RegisterRoutes(authed)
			h.Borrowing.RegisterRoutes(authed)
			h.Reservation.RegisterRoutes(authed)
			h.Review.RegisterRoutes(authed)
			h.Category.RegisterRoutes(authed)
			h.Fine.RegisterRoutes(authed)
		})

		// Unknown API paths must never fall through to the SPA handler.
		api.NotFound(func(writer http.ResponseWriter, request *http.Request) {
			respond.JSON(writer, http.StatusNotFound, respond.ErrorEnvelope{Error: "Not found"})
		})
	})

	// # Frontend
	// Every non-API path serves the single-page application.
	if h.Assets != nil {
		r.NotFound(h.Assets.ServeHTTP)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// hello handles GET /api/hello — a connectivity probe used by the frontend.
func hello(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, respond.M{"hello": "Hello, World!"})
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

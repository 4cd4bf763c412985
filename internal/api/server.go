// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

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

	"github.com/taibuivan/hanqa/internal/admin"
	"github.com/taibuivan/hanqa/internal/moderation"
	"github.com/taibuivan/hanqa/internal/platform/config"
	"github.com/taibuivan/hanqa/internal/platform/constants"
	"github.com/taibuivan/hanqa/internal/platform/middleware"
	"github.com/taibuivan/hanqa/internal/qa"
	"github.com/taibuivan/hanqa/internal/ratelimit"
	"github.com/taibuivan/hanqa/internal/trust"
	"github.com/taibuivan/hanqa/internal/ugc"
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
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// QA handles posts, answers, comments and trending.
	QA *qa.Handler

	// UGC serves the validation probe for client-side previews.
	UGC *ugc.Handler

	// Trust serves trust profiles and the admin trust controls.
	Trust *trust.Handler

	// Moderation handles reports and the review queue.
	Moderation *moderation.Handler

	// Admin owns the admin session and guards every admin section.
	Admin *admin.Handler
}

// Limits groups the IP-keyed limiters applied at the router level.
type Limits struct {
	// Global caps every request per client IP.
	Global ratelimit.Limiter

	// GlobalRetryAfter is advertised on 429 from Global.
	GlobalRetryAfter int

	// Probe caps the validation probe, which is cheap to call in a loop.
	Probe ratelimit.Limiter

	// ProbeRetryAfter is advertised on 429 from Probe.
	ProbeRetryAfter int
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, limits Limits, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RateLimit(limits.Global, limits.GlobalRetryAfter))
		api.Use(middleware.Authenticate(verifier))

		api.Mount("/posts", h.QA.Routes())
		api.Mount("/users", h.Trust.Routes())
		api.Mount("/reports", h.Moderation.Routes())

		api.With(middleware.RateLimit(limits.Probe, limits.ProbeRetryAfter)).
			Mount("/ugc", h.UGC.Routes())

		api.Mount("/admin", h.Admin.Routes(
			admin.Section{Pattern: "/reports", Router: h.Moderation.AdminRoutes()},
			admin.Section{Pattern: "/content", Router: h.QA.AdminRoutes()},
			admin.Section{Pattern: "/trust", Router: h.Trust.AdminRoutes()},
		))
	})

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

// Handler exposes the router, for tests that drive the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

// Package routing wires handlers and middleware into the tutor HTTP API.
package routing

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/teilomillet/tutor/config"
	"github.com/teilomillet/tutor/errors"
	"github.com/teilomillet/tutor/server/handlers"
	"github.com/teilomillet/tutor/server/metrics"
	"github.com/teilomillet/tutor/server/middleware"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the router serves.
type Dependencies struct {
	Config    *config.Config
	Generator handlers.LessonGenerator

	// Metrics is optional; without it /metrics is not served
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Router is the HTTP entry point of the server.
//
//	POST /api/generate  lesson generation
//	GET  /api/models    advertised models
//	GET  /api/health    liveness
//	GET  /metrics       Prometheus exposition
//	GET  /              landing page
type Router struct {
	router chi.Router
	logger *zap.Logger
}

// NewRouter builds the route tree and middleware stack.
func NewRouter(deps Dependencies) (*Router, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	index, err := handlers.IndexHandler(deps.Config.Server.StaticDir)
	if err != nil {
		return nil, fmt.Errorf("landing page: %w", err)
	}

	r := &Router{
		router: chi.NewRouter(),
		logger: logger,
	}

	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RequestTimer)
	r.router.Use(middleware.Logging(logger))
	if deps.Metrics != nil {
		r.router.Use(middleware.PrometheusMetrics(deps.Metrics))
	}
	r.router.Use(errors.ErrorHandler(logger))
	r.router.Use(chimw.StripSlashes)

	r.router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		errors.ErrorWithType(w, "resource not found", errors.NotFoundError, http.StatusNotFound)
	})
	r.router.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		errors.ErrorWithType(w, fmt.Sprintf("method %s not allowed", req.Method),
			errors.MethodNotAllowedError, http.StatusMethodNotAllowed)
	})

	lessons := handlers.NewLessonHandler(deps.Generator, logger)

	r.router.Route("/api", func(api chi.Router) {
		api.Use(middleware.CORS(deps.Config.Server.CORS))

		api.Group(func(gen chi.Router) {
			if rl := deps.Config.Server.RateLimit; rl.Enabled {
				gen.Use(middleware.NewRateLimiter(rl, deps.Metrics).Handler)
			}
			gen.Method(http.MethodPost, "/generate", lessons)
		})
		api.Get("/models", handlers.ModelsHandler(deps.Config, logger))
		api.Get("/health", handlers.HealthHandler(logger))
	})

	if deps.Metrics != nil {
		r.router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}
	r.router.Method(http.MethodGet, "/", index)

	return r, nil
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

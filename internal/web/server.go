// Package web serves the browser surface: the lesson form, the printable
// plan page and a small JSON API. All requests share one flow controller,
// so only one plan is generated at a time.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/flow"
)

// Server is the HTTP server.
type Server struct {
	router chi.Router
	server *http.Server
	logger zerolog.Logger
}

// Config holds server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns sensible defaults. WriteTimeout leaves room for a
// full generation.
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// Dependencies holds what the handlers need.
type Dependencies struct {
	Generator  flow.Generator
	Controller *flow.Controller
	// Configured is false when no credential is available.
	Configured bool
	Version    string
}

// New creates a new server.
func New(cfg Config, deps Dependencies, logger zerolog.Logger) (*Server, error) {
	logger = logger.With().Str("component", "web").Logger()

	h, err := newHandlers(deps, logger)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)
	if cfg.WriteTimeout > 0 {
		router.Use(middleware.Timeout(cfg.WriteTimeout))
	}

	router.Get("/", h.Index)
	router.Route("/plans", func(r chi.Router) {
		r.Post("/", h.SubmitForm)
		r.Get("/current", h.PrintablePlan)
		r.Get("/current.md", h.MarkdownPlan)
	})
	router.Route("/api", func(r chi.Router) {
		r.Post("/plans", h.CreatePlan)
		r.Get("/plans/current", h.CurrentPlan)
	})
	router.Get("/healthz", h.HealthCheck)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &Server{
		router: router,
		server: server,
		logger: logger,
	}, nil
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// requestLogger returns a middleware that logs requests.
func requestLogger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()

				event := logger.Info()
				if status >= 500 {
					event = logger.Error()
				} else if status >= 400 {
					event = logger.Warn()
				}

				event.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", status).
					Dur("duration", time.Since(start)).
					Str("remote", r.RemoteAddr).
					Str("request_id", middleware.GetReqID(r.Context())).
					Msg("Request completed")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// File: server.go
// Role: HTTP surface of skyrouted: dependencies, chi router, middleware.

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/skyroute/core"
	"github.com/katalvlaran/skyroute/ctxlog"
	"github.com/katalvlaran/skyroute/mutation"
	"github.com/katalvlaran/skyroute/planner"
	"github.com/katalvlaran/skyroute/source"
)

// DefaultSearchTimeout bounds one /api/route search when Config leaves it 0.
const DefaultSearchTimeout = 5 * time.Second

// Planner answers route queries. *planner.Planner implements it.
type Planner interface {
	Plan(ctx context.Context, q planner.RouteQuery) (*planner.RouteResult, error)
}

// Sources exposes the external knowledge store. *source.Adapter implements it.
type Sources interface {
	Available(ctx context.Context) bool
	ExternalCities(ctx context.Context) ([]string, error)
	Direct(ctx context.Context, from, to string) ([]string, error)
}

// Flights inserts flights. *mutation.Manager implements it.
type Flights interface {
	AddFlight(ctx context.Context, e core.FlightEdge) (mutation.Result, error)
}

// Config wires a Server.
type Config struct {
	Store   source.Snapshotter
	Planner Planner
	Sources Sources
	Flights Flights

	Logger        *slog.Logger
	StaticDir     string        // served at / when set
	SearchTimeout time.Duration // per /api/route request
	Metrics       http.Handler  // default promhttp.Handler()
}

// Server is the skyrouted HTTP handler.
type Server struct {
	cfg    Config
	router chi.Router
}

// NewServer validates cfg and builds the router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil || cfg.Planner == nil || cfg.Sources == nil || cfg.Flights == nil {
		return nil, errors.New("api: store, planner, sources and flights are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = ctxlog.Discard()
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = DefaultSearchTimeout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = promhttp.Handler()
	}

	s := &Server{cfg: cfg}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/routes", s.handleRoutes)
		r.Get("/cities", s.handleCities)
		r.Get("/route", s.handleRoute)
		r.Post("/update-flight-data", s.handleUpdateFlight)
		r.Get("/metta/direct", s.handleDirect)
		r.Get("/health", s.handleHealth)
	})
	r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)

	if s.cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}

	return r
}

// requestLogger attaches a request-scoped logger to the context and logs
// each request on completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := s.cfg.Logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r.WithContext(ctxlog.WithLogger(r.Context(), log)))

		log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

// recoverer turns a panic into a 500 JSON error. Panics here are programming
// faults, so they are logged at error level with the value.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				ctxlog.FromContext(r.Context()).Error("panic in handler", "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

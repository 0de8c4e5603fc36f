package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/config"
	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
	"github.com/kozaktomas/photo-prefs/internal/web/middleware"
)

// Deps are the components served by the web server.
type Deps struct {
	Preferences  *preferences.Service
	FaceProgress *faceprogress.Store
	Metrics      *metrics.Collectors
	Gatherer     prometheus.Gatherer
	Logger       *zap.Logger
}

// Server represents the web server
type Server struct {
	config     *config.WebConfig
	deps       Deps
	router     *chi.Mux
	httpServer *http.Server

	unsubscribeMetrics func()

	// streams is cancelled when shutdown starts, ending open event streams.
	streams       context.Context
	cancelStreams context.CancelFunc
}

// NewServer creates a new web server
func NewServer(cfg *config.WebConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := chi.NewRouter()

	streams, cancelStreams := context.WithCancel(context.Background())
	s := &Server{
		config:        cfg,
		deps:          deps,
		router:        r,
		streams:       streams,
		cancelStreams: cancelStreams,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	s.setupRoutes()

	// Mirror face progress into the gauges for as long as the server lives.
	s.unsubscribeMetrics = deps.FaceProgress.Subscribe(deps.Metrics.ObserveFaceProgress)

	// WriteTimeout stays unset so progress streams are not cut off.
	s.httpServer = &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: constants.ReadTimeout,
		IdleTimeout: constants.IdleTimeout,
	}
	s.httpServer.RegisterOnShutdown(cancelStreams)

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.deps.Logger.Info("starting web server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.deps.Logger.Info("shutting down web server")

	s.unsubscribeMetrics()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}

package web

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/web/handlers"
	"github.com/kozaktomas/photo-prefs/internal/web/middleware"
)

func (s *Server) setupRoutes() {
	// Create handlers
	preferencesHandler := handlers.NewPreferencesHandler(s.deps.Preferences, s.deps.Metrics, s.deps.Logger)
	faceProgressHandler := handlers.NewFaceProgressHandler(s.deps.FaceProgress, s.deps.Logger, s.streams.Done())

	s.router.Handle("/metrics", metrics.Handler(s.deps.Gatherer))

	s.router.Route("/api/v1", func(r chi.Router) {
		// Event stream stays outside the request timeout
		r.Get("/faces/video-progress/events", faceProgressHandler.Events)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.Timeout(constants.RequestTimeout))

			r.Get("/health", handlers.HealthCheck)

			// Face detection progress
			r.Get("/faces/video-progress", faceProgressHandler.Get)
			r.Put("/faces/video-progress", faceProgressHandler.Update)
			r.Delete("/faces/video-progress", faceProgressHandler.Reset)

			// User preferences
			r.Route("/users/{userId}/preferences", func(r chi.Router) {
				r.Use(middleware.RequireUserID("userId"))
				r.Get("/", preferencesHandler.Get)
				r.Put("/", preferencesHandler.Update)
				r.Delete("/", preferencesHandler.Reset)
			})
		})
	})
}

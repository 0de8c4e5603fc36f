package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
	"github.com/kozaktomas/photo-prefs/internal/web/middleware"
)

// PreferencesHandler serves the resolved preferences of a user.
type PreferencesHandler struct {
	service *preferences.Service
	metrics *metrics.Collectors
	logger  *zap.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(service *preferences.Service, m *metrics.Collectors, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{service: service, metrics: m, logger: logger}
}

// Get returns the stored preferences merged over the system defaults.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	resp, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load preferences", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}

	h.metrics.PreferencesRead()
	respondJSON(w, http.StatusOK, resp)
}

// Update validates a partial update, stores it and returns the resolved result.
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	update, err := preferences.Decode(r.Body)
	if err != nil {
		var verrs preferences.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				h.metrics.ValidationFailed(fe.Field, fe.Constraint)
			}
			respondValidationError(w, verrs)
			return
		}
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), userID, update)
	if err != nil {
		h.logger.Error("failed to save preferences", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}

	h.metrics.PreferencesUpdated()
	h.logger.Info("preferences updated", zap.String("user_id", userID))
	respondJSON(w, http.StatusOK, resp)
}

// Reset drops every change of a user and returns the defaults.
func (h *PreferencesHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusBadRequest, "missing user ID")
		return
	}

	resp, err := h.service.Reset(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to reset preferences", zap.String("user_id", userID), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to reset preferences")
		return
	}

	h.metrics.PreferencesReset()
	h.logger.Info("preferences reset", zap.String("user_id", userID))
	respondJSON(w, http.StatusOK, resp)
}

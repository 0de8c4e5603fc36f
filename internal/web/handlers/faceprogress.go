package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/constants"
	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
)

// FaceProgressHandler exposes the video face detection progress store.
type FaceProgressHandler struct {
	store     *faceprogress.Store
	logger    *zap.Logger
	heartbeat time.Duration
	closing   <-chan struct{}
}

// NewFaceProgressHandler creates a new face progress handler. Open event
// streams end when closing is closed; a nil channel keeps them open until the
// client leaves.
func NewFaceProgressHandler(store *faceprogress.Store, logger *zap.Logger, closing <-chan struct{}) *FaceProgressHandler {
	return &FaceProgressHandler{
		store:     store,
		logger:    logger,
		heartbeat: constants.SSEHeartbeatInterval,
		closing:   closing,
	}
}

// progressRequest is the body reported by the job driver. Any asset ID,
// including an empty one, is passed through to the store.
type progressRequest struct {
	AssetID   *string `json:"assetId"`
	Processed *int    `json:"processed"`
	Total     *int    `json:"total"`
}

// Get returns the active progress, or null when no job is running.
func (h *FaceProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.store.Get())
}

// Update records the progress of the running job.
func (h *FaceProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.AssetID == nil || req.Processed == nil || req.Total == nil {
		respondError(w, http.StatusBadRequest, "assetId, processed and total are required")
		return
	}

	h.store.SetProgress(*req.AssetID, *req.Processed, *req.Total)
	respondJSON(w, http.StatusOK, h.store.Get())
}

// Reset clears the active progress.
func (h *FaceProgressHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	respondJSON(w, http.StatusOK, h.store.Get())
}

// Events streams every progress change as a "progress" event. The first event
// carries the current value.
func (h *FaceProgressHandler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := setupSSEConnection(w)
	if !ok {
		return
	}

	// Only the latest value matters, so a slow client never blocks SetProgress.
	updates := make(chan *faceprogress.Progress, 1)
	unsubscribe := h.store.Subscribe(func(p *faceprogress.Progress) {
		select {
		case <-updates:
		default:
		}
		updates <- p
	})
	defer unsubscribe()

	h.logger.Debug("face progress stream opened", zap.String("remote_addr", r.RemoteAddr))
	defer h.logger.Debug("face progress stream closed", zap.String("remote_addr", r.RemoteAddr))

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-h.closing:
			return
		case p := <-updates:
			sendSSEEvent(w, flusher, constants.SSEEventProgress, p)
		case <-ticker.C:
			sendSSEComment(w, flusher, "heartbeat")
		}
	}
}

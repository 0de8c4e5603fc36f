package web

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/config"
	"github.com/kozaktomas/photo-prefs/internal/database/mock"
	"github.com/kozaktomas/photo-prefs/internal/faceprogress"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
)

const testUserID = "3f8a2b4c-1d2e-4f5a-8b9c-0d1e2f3a4b5c"

func newTestServer(t *testing.T) (*Server, *faceprogress.Store) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	store := faceprogress.NewStore()
	s := NewServer(&config.WebConfig{Host: "127.0.0.1", Port: 0}, Deps{
		Preferences:  preferences.NewService(mock.NewMockPreferencesRepository(), preferences.Defaults()),
		FaceProgress: store,
		Metrics:      m,
		Gatherer:     reg,
		Logger:       zap.NewNop(),
	})
	return s, store
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestServer_PreferencesRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	path := "/api/v1/users/" + testUserID + "/preferences"

	rec := serve(s, http.MethodPut, path, `{"ratings": {"enabled": true}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodGet, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET: expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp preferences.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Ratings.Enabled {
		t.Error("expected ratings.enabled=true after update")
	}
}

func TestServer_PreferencesReset(t *testing.T) {
	s, _ := newTestServer(t)
	path := "/api/v1/users/" + testUserID + "/preferences"

	rec := serve(s, http.MethodPut, path, `{"memories": {"enabled": false}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodDelete, path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE: expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = serve(s, http.MethodGet, path, "")
	var resp preferences.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Memories.Enabled {
		t.Error("expected memories.enabled back at its default after reset")
	}
}

func TestServer_PreferencesInvalidUserID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := serve(s, http.MethodGet, "/api/v1/users/not-a-uuid/preferences", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServer_FaceProgressRoutes(t *testing.T) {
	s, store := newTestServer(t)

	rec := serve(s, http.MethodPut, "/api/v1/faces/video-progress", `{"assetId": "a1", "processed": 2, "total": 4}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if p := store.Get(); p == nil || p.AssetID != "a1" {
		t.Fatalf("expected progress for a1, got %+v", p)
	}

	rec = serve(s, http.MethodDelete, "/api/v1/faces/video-progress", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE: expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if store.Get() != nil {
		t.Error("expected store to be reset")
	}
}

func TestServer_MetricsFollowFaceProgress(t *testing.T) {
	s, store := newTestServer(t)
	store.SetProgress("a1", 3, 9)

	rec := serve(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"faces_video_progress_active 1",
		"faces_video_progress_processed 3",
		"faces_video_progress_total 9",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestServer_ShutdownStopsMetricsSubscription(t *testing.T) {
	s, store := newTestServer(t)

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}

	store.SetProgress("a1", 1, 2)
	rec := serve(s, http.MethodGet, "/metrics", "")
	if strings.Contains(rec.Body.String(), "faces_video_progress_active 1") {
		t.Error("expected gauges to stop following the store after shutdown")
	}
}

func TestServer_ShutdownClosesProgressStreams(t *testing.T) {
	s, _ := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	go func() { _ = s.httpServer.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/faces/video-progress/events")
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	if _, err := reader.ReadString('\n'); err != nil {
		t.Fatalf("failed to read first event: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed while a stream was open: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, reader)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream stayed open after shutdown")
	}
}

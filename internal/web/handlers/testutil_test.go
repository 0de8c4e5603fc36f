package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kozaktomas/photo-prefs/internal/database/mock"
	"github.com/kozaktomas/photo-prefs/internal/metrics"
	"github.com/kozaktomas/photo-prefs/internal/preferences"
	"github.com/kozaktomas/photo-prefs/internal/web/middleware"
)

const testUserID = "3f8a2b4c-1d2e-4f5a-8b9c-0d1e2f3a4b5c"

// newTestPreferencesHandler creates a handler backed by a mock repository
func newTestPreferencesHandler(t *testing.T) (*PreferencesHandler, *mock.MockPreferencesRepository, *prometheus.Registry) {
	t.Helper()
	repo := mock.NewMockPreferencesRepository()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	svc := preferences.NewService(repo, preferences.Defaults())
	return NewPreferencesHandler(svc, m, zap.NewNop()), repo, reg
}

// counterValue sums the samples of a counter family, 0 if it has none
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

// requestWithUserID creates a request with a user ID in context
func requestWithUserID(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	return req.WithContext(middleware.SetUserIDInContext(req.Context(), testUserID))
}

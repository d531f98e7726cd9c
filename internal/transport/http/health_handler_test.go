package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetpulse/internal/services"
	"sheetpulse/internal/shared/testutil"
	"sheetpulse/pkg/contracts"
)

func newHealthRouter(t *testing.T, uploadDir string) chi.Router {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	h := NewHealthHandler(services.NewHealthService(uploadDir, logger), logger)

	r := chi.NewRouter()
	r.Get("/api/health", h.HealthCheck)
	r.Get("/api/health/live", h.LivenessCheck)
	r.Get("/api/health/ready", h.ReadinessCheck)
	r.Get("/api/version", h.Version)
	return r
}

func TestHealthHandler(t *testing.T) {
	r := newHealthRouter(t, t.TempDir())

	tests := []struct {
		path       string
		wantStatus string
	}{
		{"/api/health", services.StatusOK},
		{"/api/health/live", services.StatusAlive},
		{"/api/health/ready", services.StatusReady},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			var body services.HealthStatus
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, contracts.Version, body.Version)
		})
	}
}

func TestHealthHandler_NotReady(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	w := httptest.NewRecorder()
	newHealthRouter(t, blocker).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthHandler_Version(t *testing.T) {
	w := httptest.NewRecorder()
	newHealthRouter(t, t.TempDir()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, contracts.Version, body["version"])
	assert.Equal(t, contracts.APIVersion, body["api_version"])
}

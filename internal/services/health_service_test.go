package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetpulse/internal/shared/testutil"
	"sheetpulse/pkg/contracts"
)

func TestHealthService_Probes(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService(t.TempDir(), logger)
	ctx := context.Background()

	health := hs.HealthCheck(ctx)
	assert.Equal(t, StatusOK, health.Status)
	assert.Equal(t, contracts.Version, health.Version)

	live := hs.LivenessCheck(ctx)
	assert.Equal(t, StatusAlive, live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	ready := hs.ReadinessCheck(ctx)
	assert.Equal(t, StatusReady, ready.Status)
	assert.Equal(t, StatusReady, ready.Services["upload_dir"].Status)
}

func TestHealthService_NotReady(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)

	// a regular file where the upload directory should be
	blocker := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	hs := NewHealthService(blocker, logger)
	ready := hs.ReadinessCheck(context.Background())

	assert.Equal(t, StatusNotReady, ready.Status)
	assert.Equal(t, StatusNotReady, ready.Services["upload_dir"].Status)
	assert.True(t, handler.ContainsMessage("dependency not ready"))
}

func TestHealthService_Version(t *testing.T) {
	hs := NewHealthService("", nil)
	info := hs.Version()

	assert.Equal(t, contracts.Version, info["version"])
	assert.Equal(t, contracts.ReportFormatVersion, info["report_version"])
	assert.Contains(t, info, "uptime")
}

package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "sheetpulse/internal/errors"
	"sheetpulse/internal/shared/testutil"
)

func TestStager_Stage(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	stager := NewStager(dir, 0, logger)

	staged, err := stager.Stage(context.Background(), strings.NewReader(testutil.SalesCSV), "sales.csv")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(staged.Path))
	assert.True(t, strings.HasSuffix(staged.Path, "_sales.csv"))
	assert.Equal(t, "sales.csv", staged.Filename)
	assert.Equal(t, int64(len(testutil.SalesCSV)), staged.Size)

	content, err := os.ReadFile(staged.Path)
	require.NoError(t, err)
	assert.Equal(t, testutil.SalesCSV, string(content))

	require.NoError(t, staged.Cleanup())
	_, err = os.Stat(staged.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	assert.NoError(t, staged.Cleanup(), "second cleanup is a no-op")
}

func TestStager_UniqueNames(t *testing.T) {
	stager := NewStager(t.TempDir(), 0, nil)

	a, err := stager.Stage(context.Background(), strings.NewReader("x"), "same.csv")
	require.NoError(t, err)
	defer a.Cleanup()
	b, err := stager.Stage(context.Background(), strings.NewReader("y"), "same.csv")
	require.NoError(t, err)
	defer b.Cleanup()

	assert.NotEqual(t, a.Path, b.Path)
}

func TestStager_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	stager := NewStager(dir, 0, nil)

	staged, err := stager.Stage(context.Background(), strings.NewReader("x"), "../../etc/report.xlsx")
	require.NoError(t, err)
	defer staged.Cleanup()

	assert.Equal(t, dir, filepath.Dir(staged.Path))
	assert.Equal(t, "report.xlsx", staged.Filename)
}

func TestStager_SizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"below limit", "12345", false},
		{"exactly at limit", "1234567890", false},
		{"above limit", "12345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			stager := NewStager(dir, 10, nil)

			staged, err := stager.Stage(context.Background(), strings.NewReader(tt.content), "sales.csv")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLarge)
				var appErr *apierrors.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, apierrors.ErrTypeTooLarge, appErr.Type)

				entries, readErr := os.ReadDir(dir)
				require.NoError(t, readErr)
				assert.Empty(t, entries, "partial upload must be removed")
				return
			}
			require.NoError(t, err)
			defer staged.Cleanup()
			assert.Equal(t, int64(len(tt.content)), staged.Size)
		})
	}
}

func TestStager_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	stager := NewStager(dir, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stager.Stage(ctx, strings.NewReader("data"), "sales.csv")
	assert.ErrorIs(t, err, context.Canceled)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestStager_EmptyFilename(t *testing.T) {
	stager := NewStager(t.TempDir(), 0, nil)

	_, err := stager.Stage(context.Background(), strings.NewReader("x"), "")
	var appErr *apierrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apierrors.ErrTypeValidation, appErr.Type)
}

func TestStager_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "nested")
	stager := NewStager(dir, 0, nil)
	assert.Equal(t, dir, stager.Dir())

	staged, err := stager.Stage(context.Background(), strings.NewReader("x"), "a.csv")
	require.NoError(t, err)
	defer staged.Cleanup()
	assert.FileExists(t, staged.Path)
}

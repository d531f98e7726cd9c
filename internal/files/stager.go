package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	apierrors "sheetpulse/internal/errors"
)

// ErrTooLarge is matched by staging failures caused by the size limit
var ErrTooLarge = errors.New("upload exceeds size limit")

// StagedFile is an upload written to local disk
type StagedFile struct {
	Path     string
	Filename string
	Size     int64

	logger *slog.Logger
	once   sync.Once
	err    error
}

// Cleanup removes the staged file. Calling it more than once is a no-op
// that returns the first result.
func (s *StagedFile) Cleanup() error {
	s.once.Do(func() {
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.err = fmt.Errorf("remove staged file: %w", err)
			s.logger.Warn("failed to remove staged file",
				slog.String("path", s.Path),
				slog.String("error", err.Error()))
			return
		}
		s.logger.Debug("staged file removed", slog.String("path", s.Path))
	})
	return s.err
}

// Stager writes uploads into a temp directory
type Stager struct {
	dir      string
	maxBytes int64
	logger   *slog.Logger
}

// NewStager creates a stager. An empty dir means os.TempDir and
// maxBytes <= 0 disables the size limit.
func NewStager(dir string, maxBytes int64, logger *slog.Logger) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Stager{
		dir:      dir,
		maxBytes: maxBytes,
		logger:   logger.With(slog.String("component", "stager")),
	}
}

// Dir returns the staging directory
func (s *Stager) Dir() string {
	return s.dir
}

// Stage copies r to <dir>/<uuid>_<base of filename>. On any failure the
// partial file is removed before returning.
func (s *Stager) Stage(ctx context.Context, r io.Reader, filename string) (*StagedFile, error) {
	base := filepath.Base(filepath.Clean("/" + filename))
	if base == "/" || base == "." {
		return nil, apierrors.NewAppValidationError("filename is required")
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, apierrors.NewStorageError("create upload directory", err)
	}

	path := filepath.Join(s.dir, uuid.New().String()+"_"+base)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, apierrors.NewStorageError("create staged file", err)
	}

	staged := &StagedFile{Path: path, Filename: base, logger: s.logger}

	src := r
	if s.maxBytes > 0 {
		// one extra byte tells an exact-limit upload from an oversized one
		src = io.LimitReader(r, s.maxBytes+1)
	}

	n, copyErr := io.Copy(f, &ctxReader{ctx: ctx, r: src})
	closeErr := f.Close()
	staged.Size = n

	switch {
	case copyErr != nil:
		staged.Cleanup()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("stage %s: %w", base, ctxErr)
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(copyErr, &maxBytesErr) {
			return nil, s.tooLarge(base)
		}
		return nil, apierrors.NewStorageError("write staged file", copyErr)
	case closeErr != nil:
		staged.Cleanup()
		return nil, apierrors.NewStorageError("close staged file", closeErr)
	case s.maxBytes > 0 && n > s.maxBytes:
		staged.Cleanup()
		return nil, s.tooLarge(base)
	}

	s.logger.DebugContext(ctx, "upload staged",
		slog.String("filename", base),
		slog.String("path", path),
		slog.Int64("bytes", n))

	return staged, nil
}

func (s *Stager) tooLarge(filename string) error {
	s.logger.Warn("upload exceeds size limit",
		slog.String("filename", filename),
		slog.Int64("max_bytes", s.maxBytes))
	return fmt.Errorf("%w: %w", ErrTooLarge,
		apierrors.NewTooLargeError(fmt.Sprintf("%s exceeds the %d byte upload limit", filename, s.maxBytes), s.maxBytes))
}

// ctxReader stops a copy once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

package http

import (
	"context"
	"io"

	"sheetpulse/internal/services"
)

// AnalysisServiceInterface is the part of services.AnalysisService the
// handlers depend on
type AnalysisServiceInterface interface {
	AnalyzeUpload(ctx context.Context, r io.Reader, filename string) (*services.Analysis, error)
}

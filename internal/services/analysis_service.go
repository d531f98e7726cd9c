package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"sheetpulse/internal/dataprocessing"
	"sheetpulse/internal/exporter"
	"sheetpulse/internal/files"
	"sheetpulse/internal/infrastructure"
	"sheetpulse/internal/validation"
	"sheetpulse/pkg/contracts/domain"
)

// Analysis is the outcome of one analyzed spreadsheet
type Analysis struct {
	Result  *dataprocessing.Result
	Report  *domain.Report
	Summary dataprocessing.RunSummary
}

// AnalysisService validates, stages and analyzes spreadsheets
type AnalysisService struct {
	validator *validation.UploadValidator
	stager    *files.Stager
	pipeline  *dataprocessing.Pipeline
	tracer    trace.Tracer
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
}

// NewAnalysisService creates an analysis service. tracer and metrics may be
// nil, in which case runs are not traced or counted.
func NewAnalysisService(
	validator *validation.UploadValidator,
	stager *files.Stager,
	pipeline *dataprocessing.Pipeline,
	tracer trace.Tracer,
	metrics *infrastructure.BusinessMetrics,
	logger *slog.Logger,
) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &AnalysisService{
		validator: validator,
		stager:    stager,
		pipeline:  pipeline,
		tracer:    tracer,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "analysis_service")),
	}
}

// AnalyzeUpload stages r under filename, runs the pipeline on the staged
// copy and removes it again whatever the outcome.
func (s *AnalysisService) AnalyzeUpload(ctx context.Context, r io.Reader, filename string) (*Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.upload",
		trace.WithAttributes(attribute.String("file.name", filename)))
	defer span.End()

	if err := s.validator.Validate(validation.Upload{Filename: filename, Size: validation.UnknownSize}); err != nil {
		return nil, s.fail(ctx, filename, "unknown", 0, err)
	}

	staged, err := s.stager.Stage(ctx, r, filename)
	if err != nil {
		return nil, s.fail(ctx, filename, formatOf(filename), 0, err)
	}
	defer staged.Cleanup()

	infrastructure.RecordUpload(ctx, s.metrics, staged.Size)
	span.SetAttributes(attribute.Int64("file.size", staged.Size))

	return s.run(ctx, staged.Path, staged.Filename)
}

// AnalyzeFile runs the pipeline on a local file
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string) (*Analysis, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.file",
		trace.WithAttributes(attribute.String("file.path", path)))
	defer span.End()

	if err := s.validator.ValidateFile(path); err != nil {
		return nil, s.fail(ctx, path, "unknown", 0, err)
	}
	return s.run(ctx, path, "")
}

func (s *AnalysisService) run(ctx context.Context, path, filename string) (*Analysis, error) {
	ctx = infrastructure.EnsureTraceID(ctx)

	infrastructure.RecordActiveRunChange(ctx, s.metrics, 1)
	defer infrastructure.RecordActiveRunChange(ctx, s.metrics, -1)

	start := time.Now()
	result, err := s.pipeline.Run(ctx, path, filename)
	if err != nil {
		name := filename
		if name == "" {
			name = path
		}
		return nil, s.fail(ctx, name, formatOf(name), time.Since(start), err)
	}

	analysis := &Analysis{
		Result:  result,
		Report:  exporter.BuildReport(result),
		Summary: dataprocessing.Summarize(result),
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("pipeline.run_id", result.Run.RunID),
		attribute.String("pipeline.format", string(result.Run.Format)),
		attribute.Int("pipeline.rows", result.RowCount()),
		attribute.StringSlice("pipeline.financial", analysis.Summary.Financial),
		attribute.StringSlice("pipeline.categorical", analysis.Summary.Categorical),
	)
	infrastructure.RecordPipelineRun(ctx, s.metrics, string(result.Run.Format), result.Duration, result.RowCount(), nil)

	s.logger.InfoContext(ctx, "analysis completed",
		slog.String("filename", result.Run.Filename),
		slog.String("run_id", result.Run.RunID),
		slog.Int("rows", analysis.Summary.Rows),
		slog.Int("financial", len(analysis.Summary.Financial)),
		slog.Int("categorical", len(analysis.Summary.Categorical)),
		slog.String("category_column", analysis.Summary.CategoryColumn),
		slog.String("metric_column", analysis.Summary.MetricColumn),
		slog.Duration("duration", result.Duration))

	return analysis, nil
}

// fail records a failed run and maps err for callers
func (s *AnalysisService) fail(ctx context.Context, filename, format string, elapsed time.Duration, err error) error {
	infrastructure.RecordPipelineRun(ctx, s.metrics, format, elapsed, 0, err)
	infrastructure.RecordError(ctx, err)

	s.logger.WarnContext(ctx, "analysis failed",
		slog.String("filename", filename),
		slog.String("error", err.Error()))

	return MapAnalysisError(filename, err)
}

func formatOf(filename string) string {
	format, err := dataprocessing.DetectFormat(filename)
	if err != nil {
		return "unknown"
	}
	return string(format)
}

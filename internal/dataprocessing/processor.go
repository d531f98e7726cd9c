package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Pipeline runs Loader, Cleaner, Classifier and InsightEngine in sequence
// for a single file. A Pipeline holds no per-run state and may be shared.
type Pipeline struct {
	loader     *Loader
	cleaner    *Cleaner
	classifier *Classifier
	insights   *InsightEngine
	logger     *slog.Logger
}

// NewPipeline creates a pipeline with the default stages
func NewPipeline(logger *slog.Logger) *Pipeline {
	return NewPipelineWithConfig(logger, DefaultInsightConfig())
}

// NewPipelineWithConfig creates a pipeline with a custom insight configuration
func NewPipelineWithConfig(logger *slog.Logger, config InsightConfig) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		loader:     NewLoader(logger),
		cleaner:    NewCleaner(logger),
		classifier: NewClassifier(logger),
		insights:   NewInsightEngine(logger, config),
		logger:     logger.With(slog.String("component", "pipeline")),
	}
}

// Run processes the file at path. filename is the name reported in the
// result and defaults to the base name of path.
func (p *Pipeline) Run(ctx context.Context, path, filename string) (*Result, error) {
	if filename == "" {
		filename = filepath.Base(path)
	}
	if _, err := DetectFormat(filename); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return p.RunReader(ctx, f, filename)
}

// RunReader processes a stream whose format is given by filename
func (p *Pipeline) RunReader(ctx context.Context, r io.Reader, filename string) (*Result, error) {
	run := RunContext{
		RunID:     uuid.New().String(),
		Filename:  filepath.Base(filename),
		StartedAt: time.Now(),
	}
	logger := p.logger.With(slog.String("run_id", run.RunID), slog.String("filename", run.Filename))

	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	run.Format = format

	result := &Result{Run: run}

	raw, err := p.loader.Load(ctx, r, filename)
	if err != nil {
		logger.ErrorContext(ctx, "load failed", slog.String("error", err.Error()))
		return nil, err
	}
	result.Raw = raw

	if err := stageBoundary(ctx, StageClean); err != nil {
		return nil, err
	}
	result.Cleaned = p.cleaner.Clean(ctx, raw)

	if err := stageBoundary(ctx, StageClassify); err != nil {
		return nil, err
	}
	result.Classification = p.classifier.Classify(ctx, result.Cleaned.Dataset)

	if err := stageBoundary(ctx, StageAnalyze); err != nil {
		return nil, err
	}
	result.Insights = p.insights.Analyze(ctx, result.Classification)

	result.Duration = time.Since(run.StartedAt)
	logger.InfoContext(ctx, "pipeline completed",
		slog.Int("rows", result.RowCount()),
		slog.Int("columns", result.Dataset().Width()),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// stageBoundary stops the run when the caller's context is done
func stageBoundary(ctx context.Context, next string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("pipeline cancelled before %s stage: %w", next, err)
	}
	return nil
}

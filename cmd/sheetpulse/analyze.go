package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sheetpulse/internal/app"
	"sheetpulse/internal/config"
	"sheetpulse/internal/exporter"
	"sheetpulse/internal/infrastructure"
	"sheetpulse/internal/validation"
)

type analyzeOptions struct {
	output      string
	summary     bool
	exportClean string
}

func analyzeCmd(opts *rootOptions) *cobra.Command {
	aopts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a local CSV or Excel file",
		Long: `Analyze runs the pipeline on one local file and prints the JSON report
to stdout. Logs and the --summary block go to stderr so the report can be
piped.`,
		Example: `  sheetpulse analyze sales.xlsx
  sheetpulse analyze orders.csv --summary --export-clean cleaned/orders.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// stdout carries the report
			switch cfg.Logging.Output {
			case infrastructure.OutputConsole:
				cfg.Logging.Output = infrastructure.OutputStderr
			case infrastructure.OutputBoth:
				cfg.Logging.Output = infrastructure.OutputFile
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer infrastructure.CloseLogFile()

			return runAnalyze(cmd.Context(), cfg, logger, args[0], aopts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&aopts.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&aopts.summary, "summary", false, "print the evaluation block (timing, financial and categorical columns) to stderr")
	cmd.Flags().StringVar(&aopts.exportClean, "export-clean", "", "also write the cleaned dataset as CSV to this path")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger, path string, opts analyzeOptions, stdout, stderr io.Writer) error {
	service := app.NewAnalysisService(cfg, nil, nil, logger)

	analysis, err := service.AnalyzeFile(ctx, path)
	if err != nil {
		return err
	}

	validator := validation.NewUploadValidator(cfg.Upload.MaxBytes, logger)

	out := stdout
	if opts.output != "" {
		if err := validator.ValidateOutputDirectory(filepath.Dir(opts.output)); err != nil {
			return err
		}
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := exporter.WriteReport(out, analysis.Report); err != nil {
		return err
	}

	if opts.summary {
		if err := analysis.Summary.WriteEvaluation(stderr); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	if opts.exportClean != "" {
		if err := validator.ValidateOutputDirectory(filepath.Dir(opts.exportClean)); err != nil {
			return err
		}
		writer := exporter.NewCSVWriter("", logger)
		if err := writer.WriteDataset(opts.exportClean, analysis.Result.Cleaned.Dataset); err != nil {
			return fmt.Errorf("failed to export cleaned dataset: %w", err)
		}
		logger.InfoContext(ctx, "cleaned dataset exported",
			slog.String("path", opts.exportClean),
			slog.Int("rows", analysis.Result.Cleaned.Dataset.Len()))
	}

	return nil
}

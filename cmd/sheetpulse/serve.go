package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sheetpulse/internal/app"
	"sheetpulse/internal/infrastructure"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		port      int
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload server",
		Long: `Serve accepts multipart uploads on POST /analyze (field "file") and
answers with the JSON report. Health, version and Prometheus metrics
endpoints are served alongside. The server drains in-flight requests on
SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if staticDir != "" {
				cfg.Server.StaticDir = staticDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid server flags: %w", err)
			}

			logger, err := infrastructure.InitializeLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer infrastructure.CloseLogFile()

			application, err := app.NewApplication(cfg, logger)
			if err != nil {
				return err
			}
			return application.Run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "directory holding the dashboard's index.html and assets")

	return cmd
}

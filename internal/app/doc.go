// Package app wires SheetPulse together: configuration, logging,
// OpenTelemetry, the analysis services and the chi router, and owns the
// HTTP server lifecycle.
//
// # Usage
//
//	cfg, err := config.Load()
//	logger, err := infrastructure.InitializeLogger(cfg.Logging)
//	application, err := app.NewApplication(cfg, logger)
//	if err := application.Run(ctx); err != nil {
//	    return err
//	}
//
// Run serves until ctx is cancelled (the command line cancels it on SIGINT
// or SIGTERM), then drains in-flight requests for up to
// Server.ShutdownTimeout and flushes telemetry.
//
// # Routes
//
//	POST /analyze, /api/analyze   spreadsheet upload → JSON report
//	GET  /api/health[/live|/ready], /api/version
//	POST /api/client-log
//	GET  /metrics                 Prometheus exposition
//	GET  /, /static/*             dashboard, when Server.StaticDir is set
//
// The app package does not call os.Exit; errors are returned to main.
package app

// Package config loads the SheetPulse configuration.
//
// # Configuration Sources
//
// Values are resolved in the following order, later sources winning:
//
//	1. Default()
//	2. A YAML file: $SHEETPULSE_CONFIG, else config.yaml or configs/config.yaml
//	3. Environment variables
//
// # Environment Variables
//
// Variables follow the pattern SHEETPULSE_<SECTION>_<FIELD>:
//
//	SHEETPULSE_SERVER_PORT=8080
//	SHEETPULSE_SECURITY_ALLOWED_ORIGINS=https://a.example,https://b.example
//	SHEETPULSE_LOGGING_LEVEL=debug
//	SHEETPULSE_UPLOAD_MAX_BYTES=104857600
//	SHEETPULSE_TELEMETRY_TRACE_EXPORTER=stdout
//
// Struct tags are validated with go-playground/validator after loading.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	addr := cfg.Server.Address()
package config

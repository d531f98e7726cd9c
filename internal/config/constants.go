package config

import "time"

// Application constants
const (
	AppName = "SheetPulse"

	// EnvPrefix namespaces every environment variable, e.g. SHEETPULSE_SERVER_PORT
	EnvPrefix = "SHEETPULSE"
	// ConfigFileEnv names an explicit YAML config file
	ConfigFileEnv = "SHEETPULSE_CONFIG"

	// Upload limits
	DefaultMaxUploadBytes  = 100 << 20
	DefaultMultipartMemory = 32 << 20
	UploadFormField        = "file"

	// Network timeouts
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50
)

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Security.EnableCORS)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Upload.MaxBytes)
	assert.Equal(t, int64(DefaultMultipartMemory), cfg.Upload.MultipartMemory)
	assert.Equal(t, "sheetpulse", cfg.Telemetry.ServiceName)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_NoFile(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_File(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
  request_timeout: 2m
logging:
  level: debug
upload:
  max_bytes: 1024
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)

	// Keys missing from the file keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, int64(DefaultMultipartMemory), cfg.Upload.MultipartMemory)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
security:
  allowed_origins: ["http://file.example"]
`)
	t.Setenv("SHEETPULSE_SERVER_PORT", "7070")
	t.Setenv("SHEETPULSE_SECURITY_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("SHEETPULSE_UPLOAD_TEMP_DIR", "/var/tmp/uploads")
	t.Setenv("SHEETPULSE_SERVER_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "/var/tmp/uploads", cfg.Upload.TempDir)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFrom_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "malformed yaml", content: "server: [port"},
		{name: "port out of range", content: "server:\n  port: 70000\n"},
		{name: "unknown log output", content: "logging:\n  output: syslog\n"},
		{name: "unknown trace exporter", content: "telemetry:\n  trace_exporter: jaeger\n"},
		{name: "sample rate above one", content: "telemetry:\n  sample_rate: 1.5\n"},
		{name: "zero upload limit", content: "upload:\n  max_bytes: 0\n"},
		{name: "bad env value", content: "", env: map[string]string{"SHEETPULSE_SERVER_PORT": "eighty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFrom(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_FileOutputNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""
	assert.Error(t, cfg.Validate())

	cfg.Logging.Output = "console"
	assert.NoError(t, cfg.Validate())
}

func TestGetConfigFilePath_Env(t *testing.T) {
	t.Setenv(ConfigFileEnv, "/etc/sheetpulse/config.yaml")
	assert.Equal(t, "/etc/sheetpulse/config.yaml", getConfigFilePath())
}

func TestServerConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Address())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Address())
}

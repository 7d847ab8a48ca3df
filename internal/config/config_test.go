package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/avstrong/pricelist/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"HTTP_HOST", "HTTP_PORT", "HTTP_READ_HEADER_TIMEOUT", "LIVENESS_ENDPOINT",
	"LOG_LEVEL", "LOG_JSON", "EXPORT_DIR", "SEED_FILE", "CORS_ALLOWED_ORIGINS",
}

// clearEnv unsets every variable Load reads. t.Setenv registers the restore.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	conf, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, config.Config{
		HTTPHost:          "localhost",
		HTTPPort:          "8092",
		ReadHeaderTimeout: 20 * time.Second,
		LivenessEndpoint:  "/liveness",
		LogLevel:          "info",
		LogJSON:           false,
		ExportDir:         "exports",
		SeedFile:          "",
		AllowedOrigins:    []string{"*"},
	}, conf)
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("HTTP_READ_HEADER_TIMEOUT", "5s")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://backoffice.example.com,")

	conf, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "9000", conf.HTTPPort)
	assert.Equal(t, 5*time.Second, conf.ReadHeaderTimeout)
	assert.True(t, conf.LogJSON)
	assert.Equal(t, []string{"http://localhost:5173", "https://backoffice.example.com"}, conf.AllowedOrigins)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_HOST", "0.0.0.0")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_HOST=file-host\nEXPORT_DIR=/var/exports\n"), 0o600))

	conf, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", conf.HTTPHost)
	assert.Equal(t, "/var/exports", conf.ExportDir)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_READ_HEADER_TIMEOUT", "twenty")

	_, err := config.Load("")
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("LOG_JSON", "maybe")

	_, err = config.Load("")
	require.Error(t, err)
}

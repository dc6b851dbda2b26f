package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable that could leak into config loading.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GAEDEPLOY_GCLOUD_BIN",
		"GAEDEPLOY_GCLOUD_TIMEOUT",
		"GAEDEPLOY_LOG_LEVEL",
		"GAEDEPLOY_LOG_FORMAT",
		"GAEDEPLOY_OUTPUTS_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// =============================================================================
// Config Loading Tests
// =============================================================================

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "gcloud", cfg.Gcloud.Bin)
	assert.Equal(t, 30*time.Minute, cfg.Gcloud.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "", cfg.Outputs.File)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)

	configContent := `
gcloud:
  bin: "/opt/google-cloud-sdk/bin/gcloud"
  timeout: 10m

log:
  level: "debug"
  format: "text"

outputs:
  file: "/tmp/outputs"
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(configContent), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "/opt/google-cloud-sdk/bin/gcloud", cfg.Gcloud.Bin)
	assert.Equal(t, 10*time.Minute, cfg.Gcloud.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "/tmp/outputs", cfg.Outputs.File)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("gcloud: [broken"), 0644))

	_, err := LoadConfig(tmpFile)
	require.Error(t, err)
	assert.True(t, isConfigError(err))
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gcloud", cfg.Gcloud.Bin)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("GAEDEPLOY_GCLOUD_BIN", "/usr/local/bin/gcloud")
	t.Setenv("GAEDEPLOY_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin/gcloud", cfg.Gcloud.Bin)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// =============================================================================
// Logger Setup Tests
// =============================================================================

func TestSetupLogger_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown"} {
		cfg := &Config{Log: LogConfig{Level: level, Format: "json"}}
		assert.NotNil(t, SetupLogger(cfg), "level %q", level)
	}
}

func TestSetupLogger_TextFormat(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "info", Format: "text"}}
	assert.NotNil(t, SetupLogger(cfg))
}

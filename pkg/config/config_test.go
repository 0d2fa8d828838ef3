package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/xdr-console/pkg/models"
)

func TestLoadFileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.json")

	data := `{
		"api_base_url": "http://10.0.0.5:8080",
		"api_key": "secret",
		"poll_interval": "30s"
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:8080", cfg.APIBaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, models.Duration(30*time.Second), cfg.PollInterval)

	// Defaults filled by Validate.
	assert.Equal(t, 200, cfg.EventLimit)
	assert.Equal(t, 24, cfg.TimelineHours)
	assert.Equal(t, models.Duration(15*time.Second), cfg.HTTPTimeout)
	assert.NotNil(t, cfg.Logging)
}

func TestLoadEnvOverlay(t *testing.T) {
	t.Setenv("XDR_CONSOLE_API_BASE_URL", "http://localhost:9999")
	t.Setenv("XDR_CONSOLE_EVENT_LIMIT", "50")
	t.Setenv("XDR_CONSOLE_POLL_INTERVAL", "5s")
	t.Setenv("XDR_CONSOLE_TLS_SKIP_VERIFY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
	assert.Equal(t, 50, cfg.EventLimit)
	assert.Equal(t, models.Duration(5*time.Second), cfg.PollInterval)
	assert.True(t, cfg.TLSSkipVerify)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_base_url":"http://from-file"}`), 0o600))

	t.Setenv("XDR_CONSOLE_API_BASE_URL", "http://from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.APIBaseURL)
}

func TestLoadMissingBaseURL(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, errAPIBaseURLRequired)
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "console.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

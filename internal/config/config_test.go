package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AYOSNOW_STATE_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.FetchDelay)
	assert.Equal(t, 4*time.Second, cfg.ToastTTL)
	assert.False(t, cfg.DarkMode)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AYOSNOW_STATE_DIR", dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"api_base_url: https://api.ayosnow.example\n"+
			"toast_ttl: 2s\n"+
			"dark_mode: true\n",
	), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.ayosnow.example", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.ToastTTL)
	assert.True(t, cfg.DarkMode)
	// untouched keys keep their defaults
	assert.Equal(t, 1500*time.Millisecond, cfg.FetchDelay)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AYOSNOW_STATE_DIR", dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("api_base_url: https://from-file\n"), 0o600))

	t.Setenv("AYOSNOW_API", "https://from-env")
	t.Setenv("AYOSNOW_FETCH_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.FetchDelay)
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AYOSNOW_STATE_DIR", dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("api_base_url: [broken\n"), 0o600))

	_, err := Load()
	require.Error(t, err)
}

func TestLogPath(t *testing.T) {
	cfg := &Config{StateDir: "/tmp/state"}
	assert.Equal(t, filepath.Join("/tmp/state", "logs", "client.log"), cfg.LogPath())
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutrack/internal/platform/config"
)

func TestNewRequiresDataDir(t *testing.T) {
	_, err := config.New("")
	require.Error(t, err)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cutrack.db"), cfg.DBPath)
	assert.Equal(t, config.DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 24*time.Hour, cfg.StaleAfter)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, 30, cfg.HistoryDays)
	assert.False(t, cfg.Billable)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`api_base_url: http://localhost:9999/api/v2/
tick_interval: 250ms
stale_after: 12h
history_limit: 50
billable: true
logging:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/api/v2", cfg.APIBaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 12*time.Hour, cfg.StaleAfter)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.True(t, cfg.Billable)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("history_limit: 0\n"), 0o644))
	_, err := config.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_limit")
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettingsMissingFile(t *testing.T) {
	loaded, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, settings.DefaultSettings(), loaded)
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := writeSettings(t, `
tick_interval_ms: 100
default_minutes: 1
default_seconds: 30
tray_enabled: false
log_level: debug
window_width: 500
window_height: 600
`)

	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, loaded.TickInterval)
	assert.Equal(t, model.Selection{Minutes: 1, Seconds: 30}, loaded.Initial)
	assert.False(t, loaded.TrayEnabled)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, float32(500), loaded.WindowWidth)
	assert.Equal(t, float32(600), loaded.WindowHeight)
	assert.Equal(t, 100*time.Millisecond, loaded.CountdownConfig().TickInterval)
}

func TestLoadSettingsInvalidValuesFallBack(t *testing.T) {
	path := writeSettings(t, `
tick_interval_ms: 5000
default_minutes: 90
default_seconds: -4
window_width: -1
`)

	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	defaults := settings.DefaultSettings()
	assert.Equal(t, defaults.TickInterval, loaded.TickInterval)
	assert.Equal(t, model.Selection{Minutes: model.MaxMinutes, Seconds: 0}, loaded.Initial)
	assert.Equal(t, defaults.WindowWidth, loaded.WindowWidth)
	assert.True(t, loaded.TrayEnabled)
}

func TestLoadSettingsZeroSelection(t *testing.T) {
	path := writeSettings(t, "default_minutes: 0\ndefault_seconds: 0\n")

	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, model.Selection{}, loaded.Initial)
}

func TestLoadSettingsMalformed(t *testing.T) {
	path := writeSettings(t, "tick_interval_ms: [not a number\n")

	loaded, err := LoadSettings(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, settings.DefaultSettings(), loaded)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath("Countdown")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, settingsFileName, filepath.Base(path))
	assert.Equal(t, "Countdown", filepath.Base(filepath.Dir(path)))
}

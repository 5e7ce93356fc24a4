package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"countdown/internal/core/model"
	"countdown/internal/settings"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	minTickIntervalMs = 10
	maxTickIntervalMs = 1000
)

type yamlSettings struct {
	TickIntervalMs int     `yaml:"tick_interval_ms"`
	DefaultMinutes *int    `yaml:"default_minutes"`
	DefaultSeconds *int    `yaml:"default_seconds"`
	TrayEnabled    *bool   `yaml:"tray_enabled"`
	LogLevel       string  `yaml:"log_level"`
	WindowWidth    float32 `yaml:"window_width"`
	WindowHeight   float32 `yaml:"window_height"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads application settings from a YAML file.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (settings.Settings, error) {
	loaded := settings.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loaded, nil
		}
		return loaded, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return loaded, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&loaded, fileData)
	return loaded, nil
}

func applyYamlSettings(loaded *settings.Settings, fileData yamlSettings) {
	if fileData.TickIntervalMs >= minTickIntervalMs && fileData.TickIntervalMs <= maxTickIntervalMs {
		loaded.TickInterval = time.Duration(fileData.TickIntervalMs) * time.Millisecond
	}

	minutes := loaded.Initial.Minutes
	seconds := loaded.Initial.Seconds
	if fileData.DefaultMinutes != nil {
		minutes = *fileData.DefaultMinutes
	}
	if fileData.DefaultSeconds != nil {
		seconds = *fileData.DefaultSeconds
	}
	loaded.Initial = model.NewSelection(minutes, seconds)

	if fileData.TrayEnabled != nil {
		loaded.TrayEnabled = *fileData.TrayEnabled
	}
	if fileData.LogLevel != "" {
		loaded.LogLevel = fileData.LogLevel
	}
	if fileData.WindowWidth > 0 {
		loaded.WindowWidth = fileData.WindowWidth
	}
	if fileData.WindowHeight > 0 {
		loaded.WindowHeight = fileData.WindowHeight
	}
}

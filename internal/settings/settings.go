package settings

import (
	"time"

	"countdown/internal/core/model"
)

// Settings defines application preferences.
type Settings struct {
	TickInterval time.Duration
	Initial      model.Selection
	TrayEnabled  bool
	LogLevel     string

	WindowWidth  float32
	WindowHeight float32
}

// DefaultSettings returns default settings for Countdown.
func DefaultSettings() Settings {
	return Settings{
		TickInterval: time.Second,
		Initial:      model.Selection{Minutes: 1, Seconds: 0},
		TrayEnabled:  true,
		LogLevel:     "info",
		WindowWidth:  360,
		WindowHeight: 420,
	}
}

// CountdownConfig converts settings to a model.CountdownConfig.
func (settings Settings) CountdownConfig() model.CountdownConfig {
	return model.CountdownConfig{
		TickInterval: settings.TickInterval,
	}
}

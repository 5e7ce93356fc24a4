package main

import (
	"errors"
	"os"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/logs"
	"countdown/internal/platform"
	"countdown/internal/storage"
	"countdown/internal/ui/screen"
	"countdown/internal/ui/tray"
	"countdown/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/pflag"
)

const appName = "Countdown"

var opts = struct {
	ConfigPath string
	LogLevel   string
	Duration   time.Duration
}{}

func init() {
	pflag.StringVarP(&opts.ConfigPath, "config", "c", "", "read settings from `file` (default: user config dir)")
	pflag.StringVar(&opts.LogLevel, "log-level", "", "override the log `level` (debug, info, warn, error)")
	pflag.DurationVarP(&opts.Duration, "duration", "d", 0, "initial countdown `duration`, e.g. 1m30s")
}

func main() {
	pflag.Parse()
	logger := logs.NewLogger("countdown", "info")

	configPath := opts.ConfigPath
	if configPath == "" {
		path, err := storage.DefaultPath(appName)
		if err != nil {
			logger.WithError(err).Warn("using default settings")
		}
		configPath = path
	}

	settings, err := storage.LoadSettings(configPath)
	if err != nil && configPath != "" {
		logger.WithError(err).WithField("path", configPath).Warn("using default settings")
	}
	if opts.LogLevel != "" {
		settings.LogLevel = opts.LogLevel
	}
	if opts.Duration > 0 {
		settings.Initial = model.SelectionFromDuration(opts.Duration)
	}
	logger.SetLevel(logs.ParseLevel(settings.LogLevel))

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.WithError(err).Info("handing over to the running instance")
			return
		}
		logger.WithError(err).Error("single instance")
		os.Exit(1)
	}
	defer func() {
		_ = guard.Release()
	}()

	timer := countdown.New(settings.CountdownConfig(), countdown.Config{
		Logger: logger.WithField("component", "timer"),
	})
	timer.SetDuration(settings.Initial.Duration())
	events := countdown.NewEventChannel(8)
	timer.SetDelegate(events)

	fyneApp := app.NewWithID("com.countdown.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))

	window := screen.New(fyneApp, screen.Config{
		Title:  appName,
		Width:  settings.WindowWidth,
		Height: settings.WindowHeight,
	}, timer)

	guard.SetOnActivate(func() {
		fyne.Do(window.Show)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok && settings.TrayEnabled {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:  window.Show,
			OnStart: window.Start,
			OnReset: window.Reset,
			OnQuit:  fyneApp.Quit,
		}, resources.MustIcon(resources.IconIdle), resources.MustIcon(resources.IconRunning))
		window.SetOnStatus(trayManager.SetStatus)
		window.FyneWindow().SetCloseIntercept(window.Hide)
		trayManager.SetStatus(screen.Status{State: timer.State(), Remaining: timer.TimeRemaining()})
	} else {
		window.FyneWindow().SetMaster()
		logger.Debug("system tray disabled")
	}

	go window.Listen(events.Events())

	logger.WithField("duration", settings.Initial.Duration()).Info("countdown ready")
	window.Show()
	fyneApp.Run()

	timer.Close()
	events.Close()
}

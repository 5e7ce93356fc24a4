package tray

import (
	"fmt"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"
	"countdown/internal/ui/screen"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Countdown"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow  func()
	OnStart func()
	OnReset func()
	OnQuit  func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	startItem  *fyne.MenuItem
	resetItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	idleIcon   fyne.Resource
	runIcon    fyne.Resource
	running    bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks, idleIcon, runIcon fyne.Resource) *Manager {
	manager := &Manager{
		app:      app,
		idleIcon: idleIcon,
		runIcon:  runIcon,
	}

	manager.statusItem = fyne.NewMenuItem("Status: ready", nil)
	manager.statusItem.Disabled = true
	manager.showItem = fyne.NewMenuItem("Show timer", invoke(callbacks.OnShow))
	manager.startItem = fyne.NewMenuItem("Start", invoke(callbacks.OnStart))
	manager.resetItem = fyne.NewMenuItem("Reset", invoke(callbacks.OnReset))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.refreshMenu()
	if app != nil && idleIcon != nil {
		app.SetSystemTrayIcon(idleIcon)
	}
	return manager
}

// SetStatus mirrors the screen status into the tray.
func (manager *Manager) SetStatus(status screen.Status) {
	manager.statusItem.Label = StatusLabel(status)
	running := status.State == countdown.StateStarted
	manager.startItem.Disabled = running
	if running != manager.running {
		manager.running = running
		manager.refreshIcon()
	}
	manager.refreshMenu()
}

// StatusLabel formats the tray status line.
func StatusLabel(status screen.Status) string {
	var suffix string
	switch status.State {
	case countdown.StateStarted:
		suffix = "running"
	case countdown.StateFinished:
		suffix = "finished"
	default:
		suffix = "ready"
	}
	return fmt.Sprintf("Status: %s (%s)", model.FormatRemaining(status.Remaining), suffix)
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.idleIcon
	if manager.running {
		icon = manager.runIcon
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.showItem,
		manager.startItem,
		manager.resetItem,
		manager.quitItem,
	))
}

func invoke(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}

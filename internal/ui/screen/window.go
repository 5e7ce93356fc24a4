package screen

import (
	"image/color"
	"strconv"
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	finishedTitle   = "Timer Finished!"
	finishedMessage = "Your countdown has ended"
)

// Timer is the part of the countdown the screen drives.
type Timer interface {
	Start()
	Reset()
	SetDuration(duration time.Duration)
	State() countdown.State
	TimeRemaining() time.Duration
	Run() uint64
}

// Config defines screen visuals.
type Config struct {
	Title  string
	Width  float32
	Height float32
}

// Status is the rendered state reported to observers such as the tray.
type Status struct {
	State     countdown.State
	Remaining time.Duration
}

// Window manages the countdown screen.
type Window struct {
	window      fyne.Window
	timer       Timer
	timeLabel   *canvas.Text
	minutes     *widget.Select
	seconds     *widget.Select
	startButton *widget.Button
	resetButton *widget.Button
	finished    dialog.Dialog
	onStatus    func(Status)
}

// New creates the countdown window. The window is not shown.
func New(app fyne.App, config Config, timer Timer) *Window {
	window := app.NewWindow(config.Title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timeLabel := canvas.NewText(model.FormatRemaining(0), color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	timeLabel.TextSize = 36

	screen := &Window{
		window:    window,
		timer:     timer,
		timeLabel: timeLabel,
	}

	screen.minutes = widget.NewSelect(numberOptions(model.MaxMinutes), func(string) {
		screen.selectionChanged()
	})
	screen.seconds = widget.NewSelect(numberOptions(model.MaxSeconds), func(string) {
		screen.selectionChanged()
	})
	screen.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), screen.Start)
	screen.startButton.Importance = widget.HighImportance
	screen.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), screen.Reset)

	picker := container.NewHBox(
		layout.NewSpacer(),
		screen.minutes, widget.NewLabel("min"),
		screen.seconds, widget.NewLabel("sec"),
		layout.NewSpacer(),
	)
	buttons := container.NewGridWithColumns(2, screen.startButton, screen.resetButton)
	content := container.NewVBox(
		layout.NewSpacer(),
		timeLabel,
		layout.NewSpacer(),
		picker,
		buttons,
	)
	window.SetContent(container.NewPadded(content))
	if config.Width > 0 && config.Height > 0 {
		window.Resize(fyne.NewSize(config.Width, config.Height))
	}

	screen.finished = dialog.NewInformation(finishedTitle, finishedMessage, window)
	screen.SetSelection(model.SelectionFromDuration(timer.TimeRemaining()))
	return screen
}

// Show displays the window.
func (screen *Window) Show() {
	screen.window.Show()
	screen.window.RequestFocus()
}

// Hide hides the window without stopping the countdown.
func (screen *Window) Hide() {
	screen.window.Hide()
}

// FyneWindow exposes the underlying window.
func (screen *Window) FyneWindow() fyne.Window {
	return screen.window
}

// SetOnStatus sets a handler that receives every rendered status.
func (screen *Window) SetOnStatus(handler func(Status)) {
	screen.onStatus = handler
}

// SetSelection moves the pickers. The selection is applied to the timer unless
// it is running.
func (screen *Window) SetSelection(selection model.Selection) {
	selection = model.NewSelection(selection.Minutes, selection.Seconds)
	// Selecting fires the change callbacks; apply once at the end instead.
	minutesChanged := screen.minutes.OnChanged
	secondsChanged := screen.seconds.OnChanged
	screen.minutes.OnChanged = nil
	screen.seconds.OnChanged = nil
	screen.minutes.SetSelected(strconv.Itoa(selection.Minutes))
	screen.seconds.SetSelected(strconv.Itoa(selection.Seconds))
	screen.minutes.OnChanged = minutesChanged
	screen.seconds.OnChanged = secondsChanged
	screen.selectionChanged()
}

// Selection returns the current picker values.
func (screen *Window) Selection() model.Selection {
	minutes, _ := strconv.Atoi(screen.minutes.Selected)
	seconds, _ := strconv.Atoi(screen.seconds.Selected)
	return model.NewSelection(minutes, seconds)
}

// Start runs the countdown from the selected duration. A finished countdown is
// reset first.
func (screen *Window) Start() {
	if screen.timer.State() == countdown.StateFinished {
		screen.timer.Reset()
	}
	screen.timer.Start()
	screen.render(screen.timer.TimeRemaining())
}

// Reset stops the countdown and re-applies the picker selection.
func (screen *Window) Reset() {
	screen.timer.Reset()
	screen.selectionChanged()
}

// ShowRemaining renders a tick. Must run on the Fyne thread.
func (screen *Window) ShowRemaining(remaining time.Duration) {
	if screen.timer.State() == countdown.StateReset {
		return
	}
	screen.render(remaining)
}

// ShowFinished renders the final state and the completion dialog. Must run on
// the Fyne thread.
func (screen *Window) ShowFinished() {
	if screen.timer.State() != countdown.StateFinished {
		return
	}
	screen.render(0)
	screen.finished.Show()
}

// Listen renders countdown events on the Fyne thread until the channel is
// closed.
func (screen *Window) Listen(events <-chan countdown.Event) {
	for event := range events {
		fyne.Do(func() {
			screen.showEvent(event)
		})
	}
}

// showEvent renders one event. Events still queued from a run that was reset,
// and possibly restarted since, are dropped.
func (screen *Window) showEvent(event countdown.Event) {
	if event.Run != screen.timer.Run() {
		return
	}
	switch event.Type {
	case countdown.EventUpdate:
		screen.ShowRemaining(event.Remaining)
	case countdown.EventFinish:
		screen.ShowFinished()
	}
}

func (screen *Window) selectionChanged() {
	screen.timer.SetDuration(screen.Selection().Duration())
	if screen.timer.State() != countdown.StateStarted {
		screen.render(screen.timer.TimeRemaining())
	}
}

func (screen *Window) render(remaining time.Duration) {
	state := screen.timer.State()
	screen.timeLabel.Text = model.FormatRemaining(remaining)
	screen.timeLabel.Refresh()

	if state == countdown.StateStarted {
		screen.startButton.Disable()
	} else {
		screen.startButton.Enable()
	}

	if screen.onStatus != nil {
		screen.onStatus(Status{State: state, Remaining: remaining})
	}
}

func numberOptions(max int) []string {
	options := make([]string, 0, max+1)
	for value := 0; value <= max; value++ {
		options = append(options, strconv.Itoa(value))
	}
	return options
}

package countdown

import (
	"io"
	"sync"
	"time"

	"countdown/internal/core/model"

	"github.com/sirupsen/logrus"
)

// State represents the current Countdown mode.
type State string

const (
	StateReset    State = "reset"
	StateStarted  State = "started"
	StateFinished State = "finished"
)

// Delegate receives countdown notifications.
//
// Callbacks run on the countdown's tick goroutine (or on the caller of Start
// for the initial update) with no internal lock held. Reset waits for an
// in-flight callback to return, so a delegate must not call Reset or Close
// synchronously from inside a callback.
type Delegate interface {
	OnUpdate(remaining time.Duration)
	OnFinish()
}

// RunTracker is implemented by delegates that need to tell runs apart. BeginRun
// is called before the first callback of each run, on the same goroutine
// sequence as the callbacks.
type RunTracker interface {
	BeginRun(run uint64)
}

// DelegateFuncs adapts plain functions to Delegate. Nil fields are skipped.
type DelegateFuncs struct {
	Update func(remaining time.Duration)
	Finish func()
}

// OnUpdate calls Update.
func (funcs DelegateFuncs) OnUpdate(remaining time.Duration) {
	if funcs.Update != nil {
		funcs.Update(remaining)
	}
}

// OnFinish calls Finish.
func (funcs DelegateFuncs) OnFinish() {
	if funcs.Finish != nil {
		funcs.Finish()
	}
}

// Config contains runtime collaborators for a Countdown.
type Config struct {
	Clock  Clock
	Logger logrus.FieldLogger
}

// Countdown is a state machine counting a duration down to zero.
type Countdown struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	config    model.CountdownConfig
	clock     Clock
	logger    logrus.FieldLogger
	delegate  Delegate
	state     State
	duration  time.Duration
	remaining time.Duration
	startedAt time.Time
	runID     uint64
	runCount  uint64
	ticker    Ticker
	stopCh    chan struct{}
	closed    bool
}

// New creates a Countdown in the reset state with a zero duration.
func New(config model.CountdownConfig, options Config) *Countdown {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		options.Logger = quiet
	}

	return &Countdown{
		config: config,
		clock:  options.Clock,
		logger: options.Logger,
		state:  StateReset,
	}
}

// SetDelegate registers the single observer. A nil delegate silences callbacks.
func (countdown *Countdown) SetDelegate(delegate Delegate) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.delegate = delegate
}

// SetDuration changes the configured length. Negative values are clamped to
// zero. The call is ignored while the countdown is running; otherwise the
// countdown returns to the reset state with the new duration remaining.
func (countdown *Countdown) SetDuration(duration time.Duration) {
	if duration < 0 {
		duration = 0
	}

	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state == StateStarted {
		countdown.logger.WithField("duration", duration).Debug("duration change ignored while running")
		return
	}
	countdown.duration = duration
	countdown.remaining = duration
	countdown.state = StateReset
}

// Duration returns the configured length.
func (countdown *Countdown) Duration() time.Duration {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.duration
}

// State returns the current state.
func (countdown *Countdown) State() State {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state
}

// Run returns the number of the latest run; it grows by one on every Start
// that leaves the reset state.
func (countdown *Countdown) Run() uint64 {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.runCount
}

// TimeRemaining returns the time left. While running it is computed from the
// clock rather than from the last tick.
func (countdown *Countdown) TimeRemaining() time.Duration {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state == StateStarted {
		return countdown.remainingAtLocked(countdown.clock.Now())
	}
	return countdown.remaining
}

// Start begins counting down from the configured duration and reports the
// initial remaining time to the delegate. It does nothing unless the countdown
// is in the reset state.
func (countdown *Countdown) Start() {
	countdown.mu.Lock()
	if countdown.closed || countdown.state != StateReset {
		countdown.mu.Unlock()
		return
	}

	countdown.runID++
	runID := countdown.runID
	countdown.runCount++
	run := countdown.runCount
	countdown.startedAt = countdown.clock.Now()
	countdown.remaining = countdown.duration
	delegate := countdown.delegate

	if countdown.duration == 0 {
		countdown.state = StateFinished
		countdown.logger.Debug("countdown started with zero duration")
		countdown.mu.Unlock()
		countdown.deliver(runID, run, delegate, 0, true)
		return
	}

	countdown.state = StateStarted
	countdown.ticker = countdown.clock.NewTicker(countdown.config.TickInterval)
	countdown.stopCh = make(chan struct{})
	ticker := countdown.ticker
	stopCh := countdown.stopCh
	duration := countdown.duration
	countdown.logger.WithField("duration", duration).Debug("countdown started")
	countdown.mu.Unlock()

	countdown.deliver(runID, run, delegate, duration, false)
	go countdown.run(runID, ticker, stopCh)
}

// Reset cancels a running countdown and restores the full duration. No tick
// callback is delivered after Reset returns. The delegate is not notified.
func (countdown *Countdown) Reset() {
	countdown.mu.Lock()
	countdown.cancelRunLocked()
	countdown.state = StateReset
	countdown.remaining = countdown.duration
	countdown.logger.Debug("countdown reset")
	countdown.mu.Unlock()

	countdown.waitForDelivery()
}

// Close stops the countdown for good. Later Start calls are ignored.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	if countdown.closed {
		countdown.mu.Unlock()
		return
	}
	countdown.closed = true
	countdown.cancelRunLocked()
	if countdown.state == StateStarted {
		countdown.state = StateReset
		countdown.remaining = countdown.duration
	}
	countdown.delegate = nil
	countdown.mu.Unlock()

	countdown.waitForDelivery()
}

func (countdown *Countdown) run(runID uint64, ticker Ticker, stopCh chan struct{}) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			if !countdown.tick(runID, tickTime) {
				return
			}
		}
	}
}

func (countdown *Countdown) tick(runID uint64, tickTime time.Time) bool {
	countdown.deliverMu.Lock()
	defer countdown.deliverMu.Unlock()

	countdown.mu.Lock()
	if runID != countdown.runID || countdown.state != StateStarted {
		countdown.mu.Unlock()
		return false
	}

	remaining := countdown.remainingAtLocked(tickTime)
	countdown.remaining = remaining
	finished := remaining == 0
	if finished {
		countdown.state = StateFinished
		countdown.cancelRunLocked()
		countdown.logger.Debug("countdown finished")
	}
	delegate := countdown.delegate
	countdown.mu.Unlock()

	notify(delegate, remaining, finished)
	return !finished
}

// deliver reports a Start-time notification unless a Reset has already
// superseded the run. A RunTracker delegate learns the new run first.
func (countdown *Countdown) deliver(runID, run uint64, delegate Delegate, remaining time.Duration, finished bool) {
	countdown.deliverMu.Lock()
	defer countdown.deliverMu.Unlock()

	countdown.mu.Lock()
	current := runID == countdown.runID && !countdown.closed
	countdown.mu.Unlock()
	if !current {
		return
	}
	if tracker, ok := delegate.(RunTracker); ok {
		tracker.BeginRun(run)
	}
	notify(delegate, remaining, finished)
}

func notify(delegate Delegate, remaining time.Duration, finished bool) {
	if delegate == nil {
		return
	}
	delegate.OnUpdate(remaining)
	if finished {
		delegate.OnFinish()
	}
}

// waitForDelivery blocks until a callback already in progress has returned.
func (countdown *Countdown) waitForDelivery() {
	countdown.deliverMu.Lock()
	countdown.deliverMu.Unlock()
}

// cancelRunLocked invalidates the current run and stops its ticker.
func (countdown *Countdown) cancelRunLocked() {
	countdown.runID++
	if countdown.ticker != nil {
		countdown.ticker.Stop()
		countdown.ticker = nil
	}
	if countdown.stopCh != nil {
		close(countdown.stopCh)
		countdown.stopCh = nil
	}
}

func (countdown *Countdown) remainingAtLocked(now time.Time) time.Duration {
	elapsed := now.Sub(countdown.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := countdown.duration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

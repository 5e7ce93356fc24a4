package countdown

import (
	"sort"
	"sync"
	"time"
)

// Clock provides the time source and tick scheduling for a Countdown.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

// Ticker delivers periodic ticks until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// SystemClock is the wall clock backed by the time package.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewTicker wraps time.NewTicker.
func (SystemClock) NewTicker(interval time.Duration) Ticker {
	return systemTicker{ticker: time.NewTicker(interval)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (ticker systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker systemTicker) Stop() {
	ticker.ticker.Stop()
}

// ManualClock is a Clock that only moves when Advance is called.
// Tickers created from it fire synchronously inside Advance: each send blocks
// until the receiving goroutine takes the tick.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*manualTicker
}

// NewManualClock creates a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (clock *ManualClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

// NewTicker registers a ticker that fires every interval of manual time.
func (clock *ManualClock) NewTicker(interval time.Duration) Ticker {
	if interval <= 0 {
		panic("countdown: non-positive ticker interval")
	}
	clock.mu.Lock()
	defer clock.mu.Unlock()
	ticker := &manualTicker{
		clock:    clock,
		interval: interval,
		next:     clock.now.Add(interval),
		ch:       make(chan time.Time),
		stopped:  make(chan struct{}),
	}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

// Advance moves the clock forward by delta, firing every ticker deadline that
// falls inside the window in time order.
func (clock *ManualClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	target := clock.now.Add(delta)
	clock.mu.Unlock()

	for {
		clock.mu.Lock()
		ticker := clock.nextDueLocked(target)
		if ticker == nil {
			clock.now = target
			clock.mu.Unlock()
			return
		}
		fireAt := ticker.next
		clock.now = fireAt
		ticker.next = fireAt.Add(ticker.interval)
		clock.mu.Unlock()

		select {
		case ticker.ch <- fireAt:
		case <-ticker.stopped:
		}
	}
}

// TickerCount reports how many tickers are live.
func (clock *ManualClock) TickerCount() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

func (clock *ManualClock) nextDueLocked(target time.Time) *manualTicker {
	due := make([]*manualTicker, 0, len(clock.tickers))
	for _, ticker := range clock.tickers {
		if !ticker.next.After(target) {
			due = append(due, ticker)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].next.Before(due[j].next)
	})
	return due[0]
}

func (clock *ManualClock) remove(ticker *manualTicker) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for i, candidate := range clock.tickers {
		if candidate == ticker {
			clock.tickers = append(clock.tickers[:i], clock.tickers[i+1:]...)
			return
		}
	}
}

type manualTicker struct {
	clock    *ManualClock
	interval time.Duration
	next     time.Time
	ch       chan time.Time
	stopped  chan struct{}
	once     sync.Once
}

func (ticker *manualTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *manualTicker) Stop() {
	ticker.once.Do(func() {
		close(ticker.stopped)
		ticker.clock.remove(ticker)
	})
}

package countdown

import (
	"sync/atomic"
	"time"
)

// EventType defines the type of Countdown event.
type EventType string

const (
	EventUpdate EventType = "update"
	EventFinish EventType = "finish"
)

// Event represents a Countdown notification for channel consumers. Run is the
// Countdown run the notification belongs to.
type Event struct {
	Type      EventType
	Remaining time.Duration
	Run       uint64
}

// EventChannel is a Delegate that forwards notifications to a buffered channel.
// Sends never block the countdown: a full channel drops update events, and a
// finish event evicts the oldest pending event to make room.
type EventChannel struct {
	ch  chan Event
	run atomic.Uint64
}

// NewEventChannel creates an adapter with the given buffer size.
func NewEventChannel(buffer int) *EventChannel {
	if buffer <= 0 {
		buffer = 1
	}
	return &EventChannel{ch: make(chan Event, buffer)}
}

// Events returns the receive side of the channel.
func (events *EventChannel) Events() <-chan Event {
	return events.ch
}

// BeginRun stamps the events that follow with run.
func (events *EventChannel) BeginRun(run uint64) {
	events.run.Store(run)
}

// OnUpdate forwards an update event if there is room.
func (events *EventChannel) OnUpdate(remaining time.Duration) {
	select {
	case events.ch <- Event{Type: EventUpdate, Remaining: remaining, Run: events.run.Load()}:
	default:
	}
}

// OnFinish forwards the finish event.
func (events *EventChannel) OnFinish() {
	event := Event{Type: EventFinish, Run: events.run.Load()}
	select {
	case events.ch <- event:
		return
	default:
	}

	select {
	case <-events.ch:
	default:
	}
	select {
	case events.ch <- event:
	default:
	}
}

// Close closes the channel. Call it only after the countdown has been closed.
func (events *EventChannel) Close() {
	close(events.ch)
}

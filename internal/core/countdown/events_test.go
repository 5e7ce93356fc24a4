package countdown

import (
	"testing"
	"time"

	"countdown/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventChannelDropsUpdatesWhenFull(t *testing.T) {
	events := NewEventChannel(2)

	events.OnUpdate(3 * time.Second)
	events.OnUpdate(2 * time.Second)
	events.OnUpdate(time.Second)

	assert.Equal(t, Event{Type: EventUpdate, Remaining: 3 * time.Second}, <-events.Events())
	assert.Equal(t, Event{Type: EventUpdate, Remaining: 2 * time.Second}, <-events.Events())
	assert.Len(t, events.Events(), 0)
}

func TestEventChannelKeepsFinish(t *testing.T) {
	events := NewEventChannel(1)

	events.OnUpdate(time.Second)
	events.OnFinish()

	assert.Equal(t, Event{Type: EventFinish}, <-events.Events())
}

func TestEventChannelMinimumBuffer(t *testing.T) {
	events := NewEventChannel(0)
	events.OnFinish()
	events.Close()

	event, ok := <-events.Events()
	require.True(t, ok)
	assert.Equal(t, EventFinish, event.Type)
	_, ok = <-events.Events()
	assert.False(t, ok)
}

func TestEventChannelAsDelegate(t *testing.T) {
	clock := NewManualClock(epoch)
	countdown := New(model.CountdownConfig{TickInterval: time.Second}, Config{Clock: clock})
	events := NewEventChannel(8)
	countdown.SetDelegate(events)
	countdown.SetDuration(2 * time.Second)

	countdown.Start()
	clock.Advance(2 * time.Second)

	want := []Event{
		{Type: EventUpdate, Remaining: 2 * time.Second, Run: 1},
		{Type: EventUpdate, Remaining: time.Second, Run: 1},
		{Type: EventUpdate, Remaining: 0, Run: 1},
		{Type: EventFinish, Run: 1},
	}
	for _, expected := range want {
		select {
		case event := <-events.Events():
			assert.Equal(t, expected, event)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %+v", expected)
		}
	}

	countdown.Close()
	events.Close()
}

func TestEventChannelStampsRuns(t *testing.T) {
	clock := NewManualClock(epoch)
	countdown := New(model.CountdownConfig{TickInterval: time.Second}, Config{Clock: clock})
	events := NewEventChannel(8)
	countdown.SetDelegate(events)
	countdown.SetDuration(5 * time.Second)

	countdown.Start()
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return len(events.Events()) == 2 }, 2*time.Second, 5*time.Millisecond)
	countdown.Reset()
	countdown.Start()

	want := []Event{
		{Type: EventUpdate, Remaining: 5 * time.Second, Run: 1},
		{Type: EventUpdate, Remaining: 4 * time.Second, Run: 1},
		{Type: EventUpdate, Remaining: 5 * time.Second, Run: 2},
	}
	for _, expected := range want {
		assert.Equal(t, expected, <-events.Events())
	}
	assert.Equal(t, uint64(2), countdown.Run())

	countdown.Close()
	events.Close()
}

package model

import "time"

// Picker bounds for the duration selector.
const (
	MaxMinutes = 60
	MaxSeconds = 59
)

// CountdownConfig contains runtime settings for the countdown state machine.
type CountdownConfig struct {
	TickInterval time.Duration
}

// Selection is a minutes/seconds pair as chosen on the duration picker.
type Selection struct {
	Minutes int
	Seconds int
}

// NewSelection clamps minutes and seconds into the picker range.
func NewSelection(minutes, seconds int) Selection {
	return Selection{
		Minutes: clamp(minutes, 0, MaxMinutes),
		Seconds: clamp(seconds, 0, MaxSeconds),
	}
}

// SelectionFromDuration converts a duration into the closest picker selection,
// truncating sub-second parts.
func SelectionFromDuration(value time.Duration) Selection {
	if value < 0 {
		value = 0
	}
	total := int(value / time.Second)
	if limit := MaxMinutes*60 + MaxSeconds; total > limit {
		total = limit
	}
	return NewSelection(total/60, total%60)
}

// Duration returns the selected countdown length.
func (selection Selection) Duration() time.Duration {
	normalized := NewSelection(selection.Minutes, selection.Seconds)
	return time.Duration(normalized.Minutes)*time.Minute + time.Duration(normalized.Seconds)*time.Second
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

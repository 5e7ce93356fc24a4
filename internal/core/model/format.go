package model

import (
	"fmt"
	"time"
)

// FormatRemaining renders a duration as HH:MM:SS.ss (hundredths of a second).
// Negative values render as zero.
func FormatRemaining(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	hundredths := int64(value / (10 * time.Millisecond))
	hours := hundredths / 360000
	minutes := hundredths / 6000 % 60
	seconds := hundredths / 100 % 60
	return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, seconds, hundredths%100)
}

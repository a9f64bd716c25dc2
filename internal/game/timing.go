package game

import (
	"time"

	"tetris-ssh/internal/tetris"
)

// DefaultTickInterval matches a 100ms input poll, giving one gravity step
// every half second.
const DefaultTickInterval = 100 * time.Millisecond

// SecsToTicks converts a duration in seconds to game ticks at the given interval.
func SecsToTicks(s float64, interval time.Duration) int {
	t := int(s * float64(time.Second) / float64(interval))
	if t < 1 {
		t = 1
	}
	return t
}

// FallInterval is the wall-clock time between two gravity steps.
func FallInterval(interval time.Duration) time.Duration {
	return interval * tetris.GravityPeriod
}

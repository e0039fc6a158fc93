// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"context"
	"time"
)

// DefaultTickInterval is roughly one display frame.
const DefaultTickInterval = 16 * time.Millisecond

// Ticker is anything driven by RunTicker.
type Ticker interface {
	Tick() float64
}

// RunTicker calls t.Tick every interval until ctx is done, and returns
// ctx's error.
func RunTicker(ctx context.Context, t Ticker, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
		}
	}
}

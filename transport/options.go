// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"go.uber.org/zap"

	"github.com/ik5/wavedeck/device"
)

const (
	// DefaultEndTolerance is how close to the end, in seconds, a finished
	// voice must be for the engine to treat it as the end of the track.
	DefaultEndTolerance = 0.05

	// DefaultLoopLength is the length of a region created by ToggleLoop.
	DefaultLoopLength = 2.0
)

type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c device.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithEndTolerance sets the end-of-track tolerance in seconds. Negative
// values are ignored.
func WithEndTolerance(seconds float64) Option {
	return func(e *Engine) {
		if seconds >= 0 {
			e.endTolerance = seconds
		}
	}
}

// WithLoopLength sets the default loop region length in seconds.
func WithLoopLength(seconds float64) Option {
	return func(e *Engine) {
		if seconds > 0 {
			e.loopLength = seconds
		}
	}
}

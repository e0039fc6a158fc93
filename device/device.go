// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sync"
	"time"

	"github.com/ik5/wavedeck/audio"
)

// Output plays buffers.
type Output interface {
	// Start plays buf from offset seconds at rate. The returned Voice is
	// already sounding.
	Start(buf *audio.Buffer, offset, rate float64) (Voice, error)
}

// Voice is a single playing segment.
type Voice interface {
	ID() uint64
	// SetRate changes the playback rate without restarting.
	SetRate(rate float64)
	// Stop silences the voice. It is safe to call more than once.
	Stop()
	// Done is closed when the voice has finished or was stopped.
	Done() <-chan struct{}
}

// Clock is a monotonic time source in seconds.
type Clock interface {
	Now() float64
}

var voiceIDs struct {
	sync.Mutex
	next uint64
}

func nextVoiceID() uint64 {
	voiceIDs.Lock()
	defer voiceIDs.Unlock()
	voiceIDs.next++
	return voiceIDs.next
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns seconds since the clock was created.
func (c *SystemClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now float64
}

func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(now float64) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d float64) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

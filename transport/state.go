// SPDX-License-Identifier: EPL-2.0

package transport

import "github.com/ik5/wavedeck/audio"

type State int

const (
	StatePaused State = iota
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the transport taken at one instant.
// Buffer is the clip the other fields refer to, or nil.
type Snapshot struct {
	Buffer    *audio.Buffer
	State     State
	Position  float64
	Duration  float64
	Rate      float64
	Looping   bool
	Region    audio.Region
	HasRegion bool
}

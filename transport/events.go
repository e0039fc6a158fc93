// SPDX-License-Identifier: EPL-2.0

package transport

const eventBufferSize = 16

type EventKind int

const (
	EventLoad EventKind = iota
	EventPlay
	EventPause
	EventSeeking
	EventEnded
	EventRateChange
	EventVolumeChange
	EventTimeUpdate
	EventLoopChange
)

var eventNames = [...]string{
	EventLoad:         "load",
	EventPlay:         "play",
	EventPause:        "pause",
	EventSeeking:      "seeking",
	EventEnded:        "ended",
	EventRateChange:   "ratechange",
	EventVolumeChange: "volumechange",
	EventTimeUpdate:   "timeupdate",
	EventLoopChange:   "loopchange",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event describes one transport change. Position and Rate are the values
// right after the change; Value carries the new level for volume changes.
type Event struct {
	Kind     EventKind
	Position float64
	Rate     float64
	Value    float64
}

// Subscription delivers engine events. Sends never block the engine: when
// a subscriber falls behind, events are dropped.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	eventCh chan Event
	doneCh  chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		eventCh: make(chan Event, eventBufferSize),
		doneCh:  make(chan struct{}),
	}
	s.Events = s.eventCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) send(e Event) {
	select {
	case s.eventCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) close() {
	close(s.doneCh)
}

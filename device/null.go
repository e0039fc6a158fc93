// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"

	"github.com/ik5/wavedeck/audio"
)

var _ Output = Null{}

// Null is an Output with no device behind it, for decks that only export.
// Its voices make no sound and end only when stopped.
type Null struct{}

func (Null) Start(buf *audio.Buffer, _, rate float64) (Voice, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if !(rate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return &nullVoice{id: nextVoiceID(), done: make(chan struct{})}, nil
}

type nullVoice struct {
	id   uint64
	done chan struct{}
	once sync.Once
}

func (v *nullVoice) ID() uint64            { return v.id }
func (v *nullVoice) SetRate(float64)       {}
func (v *nullVoice) Stop()                 { v.once.Do(func() { close(v.done) }) }
func (v *nullVoice) Done() <-chan struct{} { return v.done }

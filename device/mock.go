// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/wavedeck/audio"
)

var _ Output = (*Mock)(nil)

// Mock is an Output that records every voice and never makes sound.
// Natural completion is simulated with MockVoice.Finish.
type Mock struct {
	mu     sync.Mutex
	voices []*MockVoice
	err    error
}

func NewMock() *Mock {
	return &Mock{}
}

// SetError makes every following Start fail with err wrapped in ErrDevice.
// A nil err restores normal behavior.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

func (m *Mock) Start(buf *audio.Buffer, offset, rate float64) (Voice, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDevice, m.err)
	}

	v := &MockVoice{
		id:     nextVoiceID(),
		Buffer: buf,
		Offset: offset,
		rates:  []float64{rate},
		done:   make(chan struct{}),
	}
	m.voices = append(m.voices, v)
	return v, nil
}

// Voices returns every voice started so far, oldest first.
func (m *Mock) Voices() []*MockVoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.voices)
}

// Last returns the most recently started voice, or nil.
func (m *Mock) Last() *MockVoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.voices) == 0 {
		return nil
	}
	return m.voices[len(m.voices)-1]
}

// Sounding returns the voices neither stopped nor finished.
func (m *Mock) Sounding() []*MockVoice {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*MockVoice
	for _, v := range m.voices {
		select {
		case <-v.done:
		default:
			out = append(out, v)
		}
	}
	return out
}

// MockVoice is a Voice created by Mock.
type MockVoice struct {
	Buffer *audio.Buffer
	Offset float64

	mu      sync.Mutex
	id      uint64
	rates   []float64
	stopped bool
	done    chan struct{}
	once    sync.Once
}

func (v *MockVoice) ID() uint64 { return v.id }

func (v *MockVoice) SetRate(rate float64) {
	v.mu.Lock()
	v.rates = append(v.rates, rate)
	v.mu.Unlock()
}

// Rate is the latest rate the voice was given.
func (v *MockVoice) Rate() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rates[len(v.rates)-1]
}

// Rates lists every rate the voice played at, the start rate first.
func (v *MockVoice) Rates() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.rates)
}

func (v *MockVoice) Stop() {
	v.mu.Lock()
	v.stopped = true
	v.mu.Unlock()
	v.once.Do(func() { close(v.done) })
}

func (v *MockVoice) Stopped() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopped
}

// Finish simulates the voice reaching the end of its buffer.
func (v *MockVoice) Finish() {
	v.once.Do(func() { close(v.done) })
}

func (v *MockVoice) Done() <-chan struct{} { return v.done }

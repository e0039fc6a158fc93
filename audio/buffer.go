// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Buffer is a fully decoded clip held in memory as planar float32 samples
// in [-1, 1]. A Buffer is never modified after it has been built, so it can
// be read concurrently by playback and export without locking.
type Buffer struct {
	sampleRate int
	data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) (*Buffer, error) {
	if sampleRate <= 0 || channels <= 0 || frames < 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidFormat, sampleRate, channels)
	}

	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}
	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

// NewBufferFromPlanar wraps existing channel slices. All channels must have
// the same length. The slices are owned by the Buffer afterwards.
func NewBufferFromPlanar(sampleRate int, data [][]float32) (*Buffer, error) {
	if sampleRate <= 0 || len(data) == 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidFormat, sampleRate, len(data))
	}
	for ch := 1; ch < len(data); ch++ {
		if len(data[ch]) != len(data[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d frames, want %d",
				ErrInvalidFormat, ch, len(data[ch]), len(data[0]))
		}
	}
	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }
func (b *Buffer) Frames() int     { return len(b.data[0]) }

// Channel returns the samples of channel ch. Callers must not modify it.
func (b *Buffer) Channel(ch int) []float32 { return b.data[ch] }

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// FrameAt converts seconds to a frame index with floor(sec*rate), clamped
// to [0, Frames()].
func (b *Buffer) FrameAt(seconds float64) int {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	f := math.Floor(seconds * float64(b.sampleRate))
	if f >= float64(b.Frames()) {
		return b.Frames()
	}
	return int(f)
}

// Interleave writes frames [start, start+len(dst)/channels) into dst and
// returns the number of samples written.
func (b *Buffer) Interleave(dst []float32, start int) int {
	channels := len(b.data)
	frames := min(len(dst)/channels, b.Frames()-start)
	if frames <= 0 {
		return 0
	}
	for f := range frames {
		base := f * channels
		for ch := range channels {
			dst[base+ch] = b.data[ch][start+f]
		}
	}
	return frames * channels
}

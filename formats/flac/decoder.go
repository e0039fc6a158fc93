// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"

	"github.com/ik5/wavedeck/audio"
)

// streamer is the part of beep.StreamSeekCloser used here, to allow testing.
type streamer interface {
	Stream(samples [][2]float64) (int, bool)
	Err() error
	Close() error
}

// source adapts a beep streamer, which always yields stereo pairs, back to
// the stream's own channel count.
type source struct {
	s          streamer
	sampleRate int
	channels   int
	frames     [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return cap(s.frames) * s.channels }

func (s *source) Close() error {
	if err := s.s.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) / s.channels
	if cap(s.frames) < want {
		s.frames = make([][2]float64, want)
	}
	s.frames = s.frames[:want]

	n, ok := s.s.Stream(s.frames)
	for i, f := range s.frames[:n] {
		if s.channels == 1 {
			dst[i] = float32(f[0])
			continue
		}
		dst[2*i] = float32(f[0])
		dst[2*i+1] = float32(f[1])
	}

	if !ok {
		s.done = true
		if err := s.s.Err(); err != nil {
			return n * s.channels, fmt.Errorf("%w", err)
		}
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

type Decoder struct{}

// Match accepts native FLAC streams.
func (Decoder) Match(header []byte) bool {
	return bytes.HasPrefix(header, []byte("fLaC"))
}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	s, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return newSource(s, format)
}

func newSource(s streamer, format beep.Format) (*source, error) {
	// beep only carries up to two channels
	if format.NumChannels < 1 || format.NumChannels > 2 || format.SampleRate <= 0 {
		_ = s.Close()
		return nil, fmt.Errorf("%w: rate=%d channels=%d",
			audio.ErrInvalidFormat, format.SampleRate, format.NumChannels)
	}

	return &source{
		s:          s,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
		frames:     make([][2]float64, 2048),
	}, nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// BufferSource streams a frame window of a Buffer as an interleaved Source.
type BufferSource struct {
	buf  *Buffer
	pos  int
	end  int
	size int
}

// NewBufferSource reads frames [start, end) of buf. Bounds are clamped to
// the buffer.
func NewBufferSource(buf *Buffer, start, end int) *BufferSource {
	start = max(0, min(start, buf.Frames()))
	end = max(start, min(end, buf.Frames()))
	return &BufferSource{buf: buf, pos: start, end: end, size: 4096}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate() }
func (s *BufferSource) Channels() int   { return s.buf.Channels() }
func (s *BufferSource) BufSize() int    { return s.size }
func (s *BufferSource) Close() error    { return nil }

// Position is the next frame index to be read.
func (s *BufferSource) Position() int { return s.pos }

// Remaining is the number of frames left in the window.
func (s *BufferSource) Remaining() int { return s.end - s.pos }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	channels := s.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= s.end {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, s.end-s.pos)
	n := s.buf.Interleave(dst[:frames*channels], s.pos)
	s.pos += frames

	if s.pos >= s.end {
		return n, io.EOF
	}
	return n, nil
}

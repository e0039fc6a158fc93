// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"io"

	"github.com/gopxl/beep/v2"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

// sourceStreamer feeds a two channel audio.Source to beep.
type sourceStreamer struct {
	src  audio.Source
	buf  []float32
	err  error
	done bool
}

func newSourceStreamer(src audio.Source) *sourceStreamer {
	return &sourceStreamer{src: src, buf: make([]float32, 2*512)}
}

func (s *sourceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.done {
		return 0, false
	}

	need := 2 * len(samples)
	if cap(s.buf) < need {
		s.buf = make([]float32, need)
	}
	s.buf = s.buf[:need]

	n, err := s.src.ReadSamples(s.buf)
	frames := n / 2
	for i := range frames {
		samples[i] = [2]float64{float64(s.buf[2*i]), float64(s.buf[2*i+1])}
	}

	if err != nil {
		s.done = true
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		if frames == 0 {
			return 0, false
		}
	}
	return frames, true
}

func (s *sourceStreamer) Err() error { return s.err }

// chainStreamer runs the live effects chain, picking up parameter changes
// at buffer boundaries without rebuilding the filters.
type chainStreamer struct {
	s       beep.Streamer
	chain   *dsp.Chain
	params  *dsp.LiveParams
	version uint64
}

func newChainStreamer(s beep.Streamer, sampleRate int, params *dsp.LiveParams) *chainStreamer {
	p, version := params.Load()
	return &chainStreamer{
		s:       s,
		chain:   dsp.NewChain(sampleRate, 2, p),
		params:  params,
		version: version,
	}
}

func (c *chainStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.s.Stream(samples)
	if p, version := c.params.Load(); version != c.version {
		c.chain.SetParams(p)
		c.version = version
	}
	c.chain.ProcessStereo(samples[:n])
	return n, ok
}

func (c *chainStreamer) Err() error { return c.s.Err() }

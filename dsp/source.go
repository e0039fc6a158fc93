// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/ik5/wavedeck/audio"
)

// ChainSource runs an audio.Source through a Chain built from a fixed
// parameter snapshot. It is the offline form of the live chain.
type ChainSource struct {
	src   audio.Source
	chain *Chain
}

// NewChainSource wraps src with gain, high-pass and low-pass using p.
func NewChainSource(src audio.Source, p Params) *ChainSource {
	return &ChainSource{
		src:   src,
		chain: NewChain(src.SampleRate(), src.Channels(), p),
	}
}

func (s *ChainSource) SampleRate() int { return s.src.SampleRate() }
func (s *ChainSource) Channels() int   { return s.src.Channels() }
func (s *ChainSource) BufSize() int    { return s.src.BufSize() }

func (s *ChainSource) Close() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *ChainSource) ReadSamples(dst []float32) (int, error) {
	n, err := s.src.ReadSamples(dst)
	s.chain.Process(dst[:n])
	return n, err
}

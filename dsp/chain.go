// SPDX-License-Identifier: EPL-2.0

package dsp

// Chain applies gain, high-pass and low-pass to interleaved audio.
// Each channel owns its own filter history.
type Chain struct {
	channels int
	params   Params
	hp       []*Biquad
	lp       []*Biquad
}

// NewChain builds the chain for the given stream layout.
func NewChain(sampleRate, channels int, p Params) *Chain {
	c := &Chain{
		channels: channels,
		params:   p,
		hp:       make([]*Biquad, channels),
		lp:       make([]*Biquad, channels),
	}
	for ch := range channels {
		c.hp[ch] = NewBiquad(HighPass, float64(sampleRate), p.BassHz)
		c.lp[ch] = NewBiquad(LowPass, float64(sampleRate), p.TrebleHz)
	}
	return c
}

func (c *Chain) Channels() int  { return c.channels }
func (c *Chain) Params() Params { return c.params }

// SetParams retunes the chain in place. Filters are only recomputed when
// their cutoff actually moved.
func (c *Chain) SetParams(p Params) {
	if p.BassHz != c.params.BassHz {
		for _, f := range c.hp {
			f.SetCutoff(p.BassHz)
		}
	}
	if p.TrebleHz != c.params.TrebleHz {
		for _, f := range c.lp {
			f.SetCutoff(p.TrebleHz)
		}
	}
	c.params = p
}

// ProcessSample runs one sample of channel ch through the chain.
func (c *Chain) ProcessSample(ch int, x float64) float64 {
	y := x * c.params.Volume
	y = c.hp[ch].Process(y)
	return c.lp[ch].Process(y)
}

// Process filters interleaved samples in place. len(samples) should be a
// multiple of the channel count; a trailing partial frame is still
// processed channel by channel.
func (c *Chain) Process(samples []float32) {
	for i, x := range samples {
		samples[i] = float32(c.ProcessSample(i%c.channels, float64(x)))
	}
}

// ProcessStereo filters stereo frames in place. The chain must have been
// built for two channels.
func (c *Chain) ProcessStereo(frames [][2]float64) {
	for i := range frames {
		frames[i][0] = c.ProcessSample(0, frames[i][0])
		frames[i][1] = c.ProcessSample(1, frames[i][1])
	}
}

// Reset clears the history of every filter.
func (c *Chain) Reset() {
	for ch := range c.channels {
		c.hp[ch].Reset()
		c.lp[ch].Reset()
	}
}

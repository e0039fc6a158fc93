// SPDX-License-Identifier: EPL-2.0

package render

import (
	"fmt"
	"math"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

const frameEpsilon = 1e-9

// Request describes one export. It is a value: the parameters and range
// are copied when the export starts, so later live changes do not affect
// it.
type Request struct {
	Range    audio.Region
	Rate     float64
	Params   dsp.Params
	Format   Format
	FileName string
}

// SampleRange converts the request range to the frame window [start, end)
// of buf.
func (r Request) SampleRange(buf *audio.Buffer) (start, end int, err error) {
	if buf == nil {
		return 0, 0, audio.ErrNoBuffer
	}

	rg := r.Range
	if math.IsNaN(rg.Start) || math.IsNaN(rg.End) ||
		rg.Start < 0 || rg.End <= rg.Start || rg.End > buf.Duration() {
		return 0, 0, fmt.Errorf("%w: %s of %.3fs", ErrRange, rg, buf.Duration())
	}

	sr := float64(buf.SampleRate())
	start = frameAt(rg.Start * sr)
	end = buf.Frames()
	if rg.End < buf.Duration() {
		end = min(frameAt(rg.End*sr), end)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("%w: %s is shorter than one frame", ErrRange, rg)
	}
	return start, end, nil
}

// frameAt floors a fractional frame position. Positions within
// frameEpsilon of a whole frame are that frame, since seconds*rate does not
// always round-trip exactly.
func frameAt(pos float64) int {
	if n := math.Round(pos); math.Abs(pos-n) < frameEpsilon {
		return int(n)
	}
	return int(math.Floor(pos))
}

func (r Request) validateRate() error {
	if !(r.Rate > 0) || math.IsInf(r.Rate, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, r.Rate)
	}
	return nil
}

// OutputFrames is the rendered length of a window of frames played at
// rate.
func OutputFrames(frames int, rate float64) int {
	return int(math.Ceil(float64(frames) / rate))
}

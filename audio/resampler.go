// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Resampler streams src through Catmull-Rom cubic interpolation, advancing
// ratio source frames per output frame. Works on interleaved samples and
// preserves the channel count.
//
// Output frame k is taken at source position k*ratio; frame 0 is exactly
// source frame 0 and the stream ends once the position passes the last
// source frame, so N input frames give ceil(N/ratio) output frames.
type Resampler struct {
	src      Source
	outRate  int
	ratio    float64 // source frames per output frame
	channels int

	// win[0..3] hold source frames idx-1, idx, idx+1, idx+2. Frames outside
	// the stream repeat the nearest edge frame.
	win [4][]float32
	idx int
	pos float64 // fractional offset from win[1], in [0, 1)

	read   int // frames pulled from src so far
	eof    bool
	primed bool

	srcBuf []float32
	srcOff int
	srcLen int

	// One-pole low-pass for anti-aliasing when converting down.
	filterState []float32
	useFilter   bool
	filterAlpha float32
}

// NewResampler converts src to dstRate. A simple one-pole low-pass is
// applied to the input when downsampling.
func NewResampler(src Source, dstRate int) *Resampler {
	ratio := float64(src.SampleRate()) / float64(dstRate)
	r := newResampler(src, ratio, dstRate)
	if ratio > 1.0 {
		r.useFilter = true
		r.filterAlpha = 0.5
	}
	return r
}

// NewRateResampler plays src back rate times faster while keeping its
// nominal sample rate: the output has ceil(N/rate) frames and its pitch is
// shifted by the same factor. This is the offline equivalent of a playback
// rate on a live voice.
func NewRateResampler(src Source, rate float64) *Resampler {
	return newResampler(src, rate, src.SampleRate())
}

func newResampler(src Source, ratio float64, outRate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:         src,
		outRate:     outRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, max(src.BufSize()-src.BufSize()%channels, channels*256)),
		filterState: make([]float32, channels),
	}
	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.outRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Ratio is the number of source frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst. It returns false once
// the source is exhausted.
func (r *Resampler) nextFrame(dst []float32) (bool, error) {
	for r.srcOff >= r.srcLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcOff, r.srcLen = 0, n-n%r.channels
		if errors.Is(err, io.EOF) {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.srcBuf[r.srcOff:r.srcOff+r.channels])
	r.srcOff += r.channels
	r.read++

	if r.useFilter {
		if r.read == 1 {
			// seed with the first frame to avoid a warm-up transient
			copy(r.filterState, dst)
		}
		for c := range r.channels {
			// y[n] = alpha*x[n] + (1-alpha)*y[n-1]
			dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = dst[c]
		}
	}
	return true, nil
}

// fill loads win[i] from the source, or repeats win[i-1] past the end.
func (r *Resampler) fill(i int) error {
	ok, err := r.nextFrame(r.win[i])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.win[i], r.win[i-1])
	}
	return nil
}

func (r *Resampler) prime() (bool, error) {
	ok, err := r.nextFrame(r.win[1])
	if err != nil || !ok {
		return false, err
	}
	copy(r.win[0], r.win[1])
	if err := r.fill(2); err != nil {
		return false, err
	}
	if err := r.fill(3); err != nil {
		return false, err
	}
	r.primed = true
	return true, nil
}

func (r *Resampler) advance() error {
	r.win[0], r.win[1], r.win[2], r.win[3] = r.win[1], r.win[2], r.win[3], r.win[0]
	r.idx++
	return r.fill(3)
}

// ReadSamples produces interleaved samples. dst length should be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		ok, err := r.prime()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, io.EOF
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// past the last source frame
		if r.idx >= r.read {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}

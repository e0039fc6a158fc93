// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// DefaultQ is the quality factor of both tone filters. It is low enough to
// avoid a resonant peak at the cutoff.
const DefaultQ = 0.7

// FilterKind selects the biquad response.
type FilterKind int

const (
	HighPass FilterKind = iota
	LowPass
)

func (k FilterKind) String() string {
	switch k {
	case HighPass:
		return "highpass"
	case LowPass:
		return "lowpass"
	default:
		return "unknown"
	}
}

// Biquad is a single-channel second order IIR section (direct form I)
// designed with the RBJ audio EQ cookbook formulas.
type Biquad struct {
	kind       FilterKind
	sampleRate float64
	cutoff     float64
	q          float64

	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

// NewBiquad returns a filter of the given kind tuned to cutoff Hz.
func NewBiquad(kind FilterKind, sampleRate, cutoff float64) *Biquad {
	f := &Biquad{
		kind:       kind,
		sampleRate: sampleRate,
		q:          DefaultQ,
	}
	f.SetCutoff(cutoff)
	return f
}

func (f *Biquad) Kind() FilterKind { return f.kind }
func (f *Biquad) Cutoff() float64  { return f.cutoff }

// SetCutoff retunes the filter in place. The delay line is kept, so the
// change is applied on the next sample without resetting the stream.
//
// A low-pass at or above Nyquist and a high-pass at or below 0 Hz become
// exact pass-through sections.
func (f *Biquad) SetCutoff(hz float64) {
	f.cutoff = hz
	nyquist := f.sampleRate / 2

	if (f.kind == LowPass && hz >= nyquist) || (f.kind == HighPass && hz <= 0) || math.IsNaN(hz) {
		f.b0, f.b1, f.b2, f.a1, f.a2 = 1, 0, 0, 0, 0
		return
	}
	if hz >= nyquist {
		// high-pass above Nyquist removes everything it can
		hz = nyquist * 0.999
	}
	if hz <= 0 {
		hz = 1
	}

	w0 := 2 * math.Pi * hz / f.sampleRate
	cosW := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * f.q)
	a0 := 1 + alpha

	switch f.kind {
	case HighPass:
		f.b0 = (1 + cosW) / 2 / a0
		f.b1 = -(1 + cosW) / a0
		f.b2 = (1 + cosW) / 2 / a0
	default:
		f.b0 = (1 - cosW) / 2 / a0
		f.b1 = (1 - cosW) / a0
		f.b2 = (1 - cosW) / 2 / a0
	}
	f.a1 = -2 * cosW / a0
	f.a2 = (1 - alpha) / a0
}

// Process filters one sample.
func (f *Biquad) Process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the filter history.
func (f *Biquad) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

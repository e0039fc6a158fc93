// SPDX-License-Identifier: EPL-2.0

package dsp

import "sync"

// Params is a value snapshot of the effect parameters.
type Params struct {
	// Volume is a linear gain multiplier.
	Volume float64
	// BassHz is the high-pass cutoff.
	BassHz float64
	// TrebleHz is the low-pass cutoff.
	TrebleHz float64
}

// DefaultParams returns unity gain with both filters at the inert end of
// the control range.
func DefaultParams() Params {
	return Params{
		Volume:   VolumeFromControl(DefaultVolumeControl),
		BassHz:   CutoffFromControl(DefaultBassControl),
		TrebleHz: CutoffFromControl(DefaultTrebleControl),
	}
}

// ParamsFromControls builds Params from raw [0,100] control values.
func ParamsFromControls(volume, bass, treble float64) Params {
	return Params{
		Volume:   VolumeFromControl(volume),
		BassHz:   CutoffFromControl(bass),
		TrebleHz: CutoffFromControl(treble),
	}
}

// LiveParams holds the current effect parameters. Every change bumps a
// version counter so consumers on the audio goroutine can cheaply detect
// updates.
type LiveParams struct {
	mu      sync.RWMutex
	p       Params
	version uint64
}

func NewLiveParams(p Params) *LiveParams {
	return &LiveParams{p: p}
}

// Snapshot returns a copy of the current parameters.
func (l *LiveParams) Snapshot() Params {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.p
}

// Load returns the current parameters and their version.
func (l *LiveParams) Load() (Params, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.p, l.version
}

func (l *LiveParams) update(fn func(p *Params)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(&l.p)
	l.version++
}

// Set replaces all parameters at once.
func (l *LiveParams) Set(p Params) {
	l.update(func(dst *Params) { *dst = p })
}

// SetVolume sets the linear gain; negative values are treated as 0.
func (l *LiveParams) SetVolume(gain float64) {
	if gain < 0 {
		gain = 0
	}
	l.update(func(p *Params) { p.Volume = gain })
}

// SetBass sets the high-pass cutoff in Hz.
func (l *LiveParams) SetBass(hz float64) {
	l.update(func(p *Params) { p.BassHz = hz })
}

// SetTreble sets the low-pass cutoff in Hz.
func (l *LiveParams) SetTreble(hz float64) {
	l.update(func(p *Params) { p.TrebleHz = hz })
}

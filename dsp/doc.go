// SPDX-License-Identifier: EPL-2.0

// Package dsp implements the tone-shaping chain shared by live playback and
// offline export.
//
// The chain has a fixed topology and every stage is always present:
//
//	source -> gain (volume) -> high-pass (bass) -> low-pass (treble) -> output
//
// # Controls
//
// User controls report values in [0, 100]. They are mapped to DSP parameters
// with VolumeFromControl (linear, 1:1) and CutoffFromControl (logarithmic
// between 20 Hz and 20 kHz):
//
//	freq = 20 * (20000/20)^(value/100)
//
// The defaults (volume 100, bass 0, treble 100) leave the filters inert.
//
// # Filters
//
// Biquad implements the RBJ cookbook high-pass and low-pass sections with a
// fixed Q of 0.7. SetCutoff recomputes the coefficients while keeping the
// filter history, so a cutoff can be moved while audio is streaming without
// clicks or a pipeline rebuild.
//
// # Live parameters
//
// LiveParams is the single mutable parameter set. Writers call the setters
// from the control goroutine; audio goroutines call Load and re-tune their
// Chain only when the version changed:
//
//	params := dsp.NewLiveParams(dsp.DefaultParams())
//	chain := dsp.NewChain(44100, 2, params.Snapshot())
//
//	params.SetTreble(dsp.CutoffFromControl(40))
//	if p, v := params.Load(); v != seen {
//	    chain.SetParams(p)
//	}
//
// Export takes a Snapshot once at start, so later changes never leak into an
// export in flight.
//
// # PCM
//
// FloatToPCM16 and FloatToPCM24 quantize float samples with rounding and hard
// clamping; out-of-range input saturates instead of wrapping.
package dsp

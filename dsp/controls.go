// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

const (
	// ControlMin and ControlMax bound every user control value.
	ControlMin = 0.0
	ControlMax = 100.0

	// MinCutoffHz and MaxCutoffHz bound the logarithmic cutoff scale.
	MinCutoffHz = 20.0
	MaxCutoffHz = 20000.0

	// DefaultVolumeControl, DefaultBassControl and DefaultTrebleControl
	// leave the chain transparent.
	DefaultVolumeControl = 100.0
	DefaultBassControl   = 0.0
	DefaultTrebleControl = 100.0
)

func clampControl(v float64) float64 {
	if math.IsNaN(v) || v < ControlMin {
		return ControlMin
	}
	if v > ControlMax {
		return ControlMax
	}
	return v
}

// VolumeFromControl maps a [0,100] control to a linear gain in [0,1].
func VolumeFromControl(v float64) float64 {
	return clampControl(v) / ControlMax
}

// CutoffFromControl maps a [0,100] control to a cutoff frequency on a
// logarithmic scale between MinCutoffHz and MaxCutoffHz.
func CutoffFromControl(v float64) float64 {
	return MinCutoffHz * math.Pow(MaxCutoffHz/MinCutoffHz, clampControl(v)/ControlMax)
}

// ControlFromCutoff is the inverse of CutoffFromControl.
func ControlFromCutoff(hz float64) float64 {
	if hz <= MinCutoffHz {
		return ControlMin
	}
	if hz >= MaxCutoffHz {
		return ControlMax
	}
	return ControlMax * math.Log(hz/MinCutoffHz) / math.Log(MaxCutoffHz/MinCutoffHz)
}

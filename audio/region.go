// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// Region is a time range in seconds of source audio.
type Region struct {
	Start float64
	End   float64
}

// Length of the region in seconds.
func (r Region) Length() float64 { return r.End - r.Start }

// Validate checks 0 <= start < end <= duration.
func (r Region) Validate(duration float64) error {
	if math.IsNaN(r.Start) || math.IsNaN(r.End) ||
		r.Start < 0 || r.Start >= r.End || r.End > duration {
		return fmt.Errorf("%w: [%g, %g] in %gs", ErrInvalidRegion, r.Start, r.End, duration)
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("[%.3fs, %.3fs]", r.Start, r.End)
}

// SPDX-License-Identifier: EPL-2.0

package wavedeck

import (
	"fmt"

	"github.com/ik5/wavedeck/audio"
)

// Resample converts buf to sampleRate with cubic interpolation, keeping
// its channels and duration. A buffer already at sampleRate is returned
// as is.
func Resample(buf *audio.Buffer, sampleRate int) (*audio.Buffer, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: rate=%d", audio.ErrInvalidFormat, sampleRate)
	}
	if sampleRate == buf.SampleRate() {
		return buf, nil
	}

	src := audio.NewBufferSource(buf, 0, buf.Frames())
	out, err := audio.ReadAll(audio.NewResampler(src, sampleRate))
	if err != nil {
		return nil, fmt.Errorf("resampling to %d Hz: %w", sampleRate, err)
	}
	return out, nil
}

// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

const blockFrames = 4096

// Render runs the offline chain over the request range of buf and returns
// the rendered buffer, with the same sample rate and channel count as buf.
// ctx is checked between blocks; a canceled render returns no buffer.
func Render(ctx context.Context, buf *audio.Buffer, req Request) (*audio.Buffer, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if err := req.validateRate(); err != nil {
		return nil, err
	}
	start, end, err := req.SampleRange(buf)
	if err != nil {
		return nil, err
	}

	channels := buf.Channels()
	frames := OutputFrames(end-start, req.Rate)

	var src audio.Source = audio.NewBufferSource(buf, start, end)
	if req.Rate != 1 {
		src = audio.NewRateResampler(src, req.Rate)
	}
	src = dsp.NewChainSource(src, req.Params)
	defer src.Close()

	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}

	block := make([]float32, blockFrames*channels)
	pos := 0
	for pos < frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.ReadSamples(block)
		for i := 0; i+channels <= n && pos < frames; i += channels {
			for ch := range channels {
				out[ch][pos] = block[i+ch]
			}
			pos++
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rendering: %w", err)
		}
	}
	// any frames the resampler did not produce stay silent

	return audio.NewBufferFromPlanar(buf.SampleRate(), out)
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadAll tolerates
// before giving up on a stalled source.
const maxEmptyReads = 100

// ReadAll drains src into a new Buffer. It does not close src.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	if channels <= 0 || src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidFormat, src.SampleRate(), channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels
	chunk := make([]float32, size)

	data := make([][]float32, channels)
	empty := 0

	for {
		n, err := src.ReadSamples(chunk)
		n -= n % channels
		if n > 0 {
			empty = 0
			for i := 0; i < n; i += channels {
				for ch := range channels {
					data[ch] = append(data[ch], chunk[i+ch])
				}
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		}
	}

	if len(data[0]) == 0 {
		return nil, ErrEmptyAudio
	}
	return NewBufferFromPlanar(src.SampleRate(), data)
}

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"context"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

const (
	// DefaultBitDepth is 16-bit integer PCM.
	DefaultBitDepth = 16

	// blockFrames is how many frames are converted per encoder write.
	blockFrames = 4096
)

// Encoder writes a Buffer as an uncompressed RIFF/WAVE file: a fixed header
// followed by interleaved little-endian integer PCM. The zero value writes
// 16-bit samples.
type Encoder struct {
	// BitDepth is 16 or 24. Zero means DefaultBitDepth.
	BitDepth int
}

func (e Encoder) bitDepth() int {
	if e.BitDepth == 0 {
		return DefaultBitDepth
	}
	return e.BitDepth
}

// Validate checks the encoder can represent the given stream layout.
func (e Encoder) Validate(sampleRate, channels int) error {
	switch e.bitDepth() {
	case 16, 24:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, e.BitDepth)
	}
	if sampleRate <= 0 || channels <= 0 || channels > 0xffff {
		return fmt.Errorf("%w: rate=%d channels=%d", ErrUnsupportedWavLayout, sampleRate, channels)
	}
	return nil
}

// Encode renders buf into WAV bytes. ctx is checked between blocks and a
// canceled encode returns no data.
func (e Encoder) Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error) {
	if err := e.Validate(buf.SampleRate(), buf.Channels()); err != nil {
		return nil, err
	}
	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}

	ws := &writerseeker.WriterSeeker{}
	if err := e.write(ctx, ws, buf); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(ws.Reader())
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// Write encodes buf to w, which must support seeking so the header sizes
// can be patched once all samples are written.
func (e Encoder) Write(ctx context.Context, w io.WriteSeeker, buf *audio.Buffer) error {
	if err := e.Validate(buf.SampleRate(), buf.Channels()); err != nil {
		return err
	}
	return e.write(ctx, w, buf)
}

func (e Encoder) write(ctx context.Context, w io.WriteSeeker, buf *audio.Buffer) error {
	depth := e.bitDepth()
	channels := buf.Channels()

	enc := wav.NewEncoder(w, buf.SampleRate(), depth, channels, formatPCM)

	floats := make([]float32, blockFrames*channels)
	block := &goaudio.IntBuffer{
		Data:           make([]int, blockFrames*channels),
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: buf.SampleRate()},
		SourceBitDepth: depth,
	}

	for start := 0; start < buf.Frames(); start += blockFrames {
		if err := ctx.Err(); err != nil {
			return err
		}

		n := buf.Interleave(floats, start)
		block.Data = block.Data[:n]
		for i, x := range floats[:n] {
			if depth == 24 {
				block.Data[i] = dsp.FloatToPCM24(x)
			} else {
				block.Data[i] = int(dsp.FloatToPCM16(x))
			}
		}

		if err := enc.Write(block); err != nil {
			return fmt.Errorf("writing pcm: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}

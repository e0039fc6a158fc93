// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"

	shine "github.com/braheezy/shine-mp3/pkg/mp3"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

const (
	// SamplesPerFrame is the number of samples per channel in one MPEG-1
	// layer III frame.
	SamplesPerFrame = 1152

	// DefaultBitrate is the constant bitrate, in kbps, of encoded streams.
	DefaultBitrate = 128

	// FallbackSampleRate is used for sources whose rate MPEG-1 cannot carry.
	FallbackSampleRate = 44100

	// encodedChannels is fixed: mono input is duplicated to both sides.
	encodedChannels = 2
)

// SampleRates are the rates an MPEG-1 layer III stream can carry directly.
var SampleRates = []int{32000, 44100, 48000}

// frameEncoder is the part of the shine encoder used here, to allow testing.
type frameEncoder interface {
	Write(w io.Writer, data []int16) error
}

type frameEncoderFunc func(sampleRate, channels int) frameEncoder

func newShineEncoder(sampleRate, channels int) frameEncoder {
	return shine.NewEncoder(sampleRate, channels)
}

// BlockEncoder feeds 16-bit stereo PCM to the frame encoder in whole
// SamplesPerFrame blocks. Callers write any number of samples and must call
// Flush once to emit the final, zero padded block.
type BlockEncoder struct {
	enc     frameEncoder
	w       io.Writer
	block   []int16 // interleaved L/R
	fill    int     // frames buffered in block
	blocks  int
	flushed bool
}

// NewBlockEncoder returns a stereo BlockEncoder writing MP3 frames to w.
func NewBlockEncoder(w io.Writer, sampleRate int) *BlockEncoder {
	return newBlockEncoder(w, newShineEncoder(sampleRate, encodedChannels))
}

func newBlockEncoder(w io.Writer, enc frameEncoder) *BlockEncoder {
	return &BlockEncoder{
		enc:   enc,
		w:     w,
		block: make([]int16, SamplesPerFrame*encodedChannels),
	}
}

// Blocks reports how many full blocks were handed to the frame encoder.
func (b *BlockEncoder) Blocks() int { return b.blocks }

// Write buffers one sample per channel pair. left and right must have the
// same length.
func (b *BlockEncoder) Write(left, right []int16) error {
	if b.flushed {
		return ErrEncoderFlushed
	}
	if len(left) != len(right) {
		return fmt.Errorf("%w: %d left and %d right samples", ErrInvalidLayout, len(left), len(right))
	}

	for i := range left {
		b.block[2*b.fill] = left[i]
		b.block[2*b.fill+1] = right[i]
		b.fill++
		if b.fill == SamplesPerFrame {
			if err := b.emit(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush pads and encodes any buffered samples. Later writes fail.
func (b *BlockEncoder) Flush() error {
	if b.flushed {
		return ErrEncoderFlushed
	}
	b.flushed = true

	if b.fill == 0 {
		return nil
	}
	clear(b.block[2*b.fill:])
	return b.emit()
}

func (b *BlockEncoder) emit() error {
	if err := b.enc.Write(b.w, b.block); err != nil {
		return fmt.Errorf("encoding block %d: %w", b.blocks, err)
	}
	b.blocks++
	b.fill = 0
	return nil
}

// Encoder renders a Buffer to a constant bitrate MPEG-1 layer III stream.
// Output is always stereo.
type Encoder struct {
	// Bitrate in kbps. Zero means DefaultBitrate, the only rate supported.
	Bitrate int

	newFrames frameEncoderFunc
}

func (e Encoder) frames() frameEncoderFunc {
	if e.newFrames == nil {
		return newShineEncoder
	}
	return e.newFrames
}

// Validate checks the stream layout. Sample rates outside SampleRates are
// accepted and converted to FallbackSampleRate during encoding.
func (e Encoder) Validate(sampleRate, channels int) error {
	if e.Bitrate != 0 && e.Bitrate != DefaultBitrate {
		return fmt.Errorf("%w: %d kbps", ErrUnsupportedBitrate, e.Bitrate)
	}
	if sampleRate <= 0 || channels <= 0 {
		return fmt.Errorf("%w: rate=%d channels=%d", ErrInvalidLayout, sampleRate, channels)
	}
	return nil
}

// OutputSampleRate reports the rate an input at sampleRate is encoded at.
func OutputSampleRate(sampleRate int) int {
	if slices.Contains(SampleRates, sampleRate) {
		return sampleRate
	}
	return FallbackSampleRate
}

// Encode renders buf into MP3 bytes. ctx is checked between blocks and a
// canceled encode returns no data.
func (e Encoder) Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error) {
	var out bytes.Buffer
	if err := e.Write(ctx, &out, buf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Write encodes buf to w.
func (e Encoder) Write(ctx context.Context, w io.Writer, buf *audio.Buffer) error {
	if err := e.Validate(buf.SampleRate(), buf.Channels()); err != nil {
		return err
	}
	if buf.Frames() == 0 {
		return ErrEmptyBuffer
	}

	var src audio.Source = audio.NewBufferSource(buf, 0, buf.Frames())
	rate := OutputSampleRate(buf.SampleRate())
	if rate != buf.SampleRate() {
		src = audio.NewResampler(src, rate)
	}
	stereo := audio.NewStereoMixer(src)
	defer stereo.Close()

	blocks := newBlockEncoder(w, e.frames()(rate, encodedChannels))

	floats := make([]float32, SamplesPerFrame*encodedChannels)
	left := make([]int16, SamplesPerFrame)
	right := make([]int16, SamplesPerFrame)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := stereo.ReadSamples(floats)
		frames := n / encodedChannels
		for i := range frames {
			left[i] = dsp.FloatToPCM16(floats[2*i])
			right[i] = dsp.FloatToPCM16(floats[2*i+1])
		}
		if werr := blocks.Write(left[:frames], right[:frames]); werr != nil {
			return werr
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading samples: %w", err)
		}
	}

	return blocks.Flush()
}

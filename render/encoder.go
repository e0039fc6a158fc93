// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/formats/mp3"
	"github.com/ik5/wavedeck/formats/wav"
)

// Encoder turns a rendered buffer into file bytes.
type Encoder interface {
	// Validate reports whether the encoder can take a stream of this
	// layout. It is called before rendering.
	Validate(sampleRate, channels int) error
	Encode(ctx context.Context, buf *audio.Buffer) ([]byte, error)
}

var (
	_ Encoder = wav.Encoder{}
	_ Encoder = mp3.Encoder{}
)

// EncoderConfig holds the tunables of the built-in encoders. Zero values
// select each encoder's default.
type EncoderConfig struct {
	WAVBitDepth int
	MP3Bitrate  int
}

// DefaultEncoders returns the built-in WAV and MP3 encoders.
func DefaultEncoders(cfg EncoderConfig) map[Format]Encoder {
	return map[Format]Encoder{
		FormatWAV: wav.Encoder{BitDepth: cfg.WAVBitDepth},
		FormatMP3: mp3.Encoder{Bitrate: cfg.MP3Bitrate},
	}
}

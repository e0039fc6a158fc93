// SPDX-License-Identifier: EPL-2.0

package wavedeck

import (
	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/formats/aiff"
	"github.com/ik5/wavedeck/formats/flac"
	"github.com/ik5/wavedeck/formats/mp3"
	"github.com/ik5/wavedeck/formats/vorbis"
	"github.com/ik5/wavedeck/formats/wav"
)

// NewRegistry returns a registry with every built-in decoder. MP3 is
// registered last because its frame-sync check is the loosest.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	return reg
}

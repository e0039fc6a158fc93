// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio with
// github.com/jfreymuth/oggvorbis.
//
// The decoder keeps the stream's channel count and sample rate and yields
// interleaved float32 samples in [-1.0, 1.0]. Decoder.Match recognizes the
// "OggS" capture pattern so the decoder can take part in content sniffing
// through an audio.Registry:
//
//	reg := audio.NewRegistry()
//	reg.Register("ogg", vorbis.Decoder{})
//	buf, err := audio.LoadFile("loop.ogg", reg)
//
// Only decoding is provided.
package vorbis

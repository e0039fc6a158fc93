// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes and encodes MPEG-1 layer III audio.
//
// Decoding uses github.com/hajimehoshi/go-mp3 and always yields stereo
// float32 samples in [-1.0, 1.0] at the stream's own sample rate. The
// Decoder recognizes streams that start with an ID3v2 tag or a layer III
// frame header, so it can be registered with an audio.Registry for content
// sniffing.
//
// Encoding uses github.com/braheezy/shine-mp3, a pure Go port of the shine
// fixed-point encoder, at a constant 128 kbps. Samples are converted to
// 16-bit PCM by rounding x*32768 and clamping, then handed to the encoder
// in blocks of SamplesPerFrame samples per channel. The last partial block
// is zero padded when the BlockEncoder is flushed.
//
// Output is always stereo; mono buffers are written to both channels.
// Buffers whose sample rate MPEG-1 cannot carry are converted to
// FallbackSampleRate with audio.NewResampler first:
//
//	buf, _ := audio.LoadFile("take.wav", registry)
//	data, err := mp3.Encoder{}.Encode(ctx, buf)
//
// An Encoder checks ctx between blocks, and a canceled encode returns no
// data.
package mp3

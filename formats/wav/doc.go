// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files with integer PCM samples.
//
// Both directions are built on github.com/go-audio/wav. The decoder accepts
// 8, 16, 24 and 32-bit PCM with any channel count and skips chunks it does
// not know about. IEEE float and compressed WAVE formats are rejected.
//
// # Decoding
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Decoder also implements audio.Matcher, so it can be picked automatically
// by audio.Registry.Detect from the RIFF/WAVE signature.
//
// # Encoding
//
// Encoder is the lossless export target. It writes the canonical 44-byte
// header followed by interleaved little-endian PCM:
//
//	data, err := wav.Encoder{}.Encode(ctx, buf)              // 16-bit
//	data, err := wav.Encoder{BitDepth: 24}.Encode(ctx, buf) // 24-bit
//
// Float samples are rounded and clamped, so values outside [-1, 1] saturate
// instead of wrapping around. Encode checks ctx between blocks and returns
// no data when canceled.
package wav

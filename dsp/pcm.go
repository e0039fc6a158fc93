// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

const (
	pcm16Scale = 32768.0
	pcm24Scale = 8388608.0
)

// FloatToPCM16 converts a float sample to signed 16-bit PCM as
// round(x*32768), clamped to [-32768, 32767].
func FloatToPCM16(x float32) int16 {
	v := math.Round(float64(x) * pcm16Scale)
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}

// FloatToPCM24 converts a float sample to signed 24-bit PCM held in an int.
func FloatToPCM24(x float32) int {
	v := math.Round(float64(x) * pcm24Scale)
	switch {
	case math.IsNaN(v):
		return 0
	case v > pcm24Scale-1:
		return pcm24Scale - 1
	case v < -pcm24Scale:
		return -pcm24Scale
	}
	return int(v)
}

// PCMToFloat normalizes an integer sample of the given bit depth to [-1, 1).
// 8-bit samples are treated as unsigned, as stored in WAV files.
func PCMToFloat(v, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		// 8-bit PCM is unsigned
		return float32(v-128) / 128.0
	case 24:
		return float32(v) / pcm24Scale
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / pcm16Scale
	}
}

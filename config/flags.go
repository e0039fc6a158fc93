// SPDX-License-Identifier: EPL-2.0

package config

import "github.com/spf13/pflag"

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"sample-rate":   "device.sample_rate",
	"buffer-ms":     "device.buffer_ms",
	"quality":       "device.resample_quality",
	"end-tolerance": "transport.end_tolerance",
	"tick-ms":       "transport.tick_ms",
	"loop-length":   "transport.loop_length",
	"volume":        "effects.volume",
	"bass":          "effects.bass",
	"treble":        "effects.treble",
	"tempo":         "effects.tempo",
	"format":        "export.format",
	"mode":          "export.mode",
	"output":        "export.filename",
	"dir":           "export.dir",
	"bitrate":       "export.mp3_bitrate",
	"bit-depth":     "export.wav_bit_depth",
	"log-level":     "log.level",
	"debug":         "log.development",
}

// RegisterFlags adds the flags understood by Load to fs. Their defaults
// are only shown in help output; unset flags never override a file.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("sample-rate", 0, "output device sample rate (0 = buffer rate)")
	fs.Int("buffer-ms", 100, "output device buffer length in milliseconds")
	fs.Int("quality", 4, "live resampling quality (1-64)")
	fs.Float64("end-tolerance", 0.05, "seconds before the end at which a finished segment ends the track")
	fs.Int("tick-ms", 16, "position update interval in milliseconds")
	fs.Float64("loop-length", 2, "length of a new loop region in seconds")
	fs.Float64("volume", 100, "volume control (0-100)")
	fs.Float64("bass", 0, "bass cut control (0-100)")
	fs.Float64("treble", 100, "treble control (0-100)")
	fs.Float64("tempo", 1, "playback rate (0-2]")
	fs.String("format", "wav", "export format: wav or mp3")
	fs.String("mode", "clip", "export mode: clip or loop")
	fs.StringP("output", "o", "recording", "export file name")
	fs.String("dir", ".", "export directory")
	fs.Int("bitrate", 128, "MP3 bitrate in kbps")
	fs.Int("bit-depth", 16, "WAV bit depth (16 or 24)")
	fs.String("log-level", "info", "log level")
	fs.Bool("debug", false, "development logging")
}

// SPDX-License-Identifier: EPL-2.0

// Package config loads wavedeck settings from TOML files and command line
// flags. Flags win over files; later files win over earlier ones. Defaults
// are applied by the getters, so a zero Config is usable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

type Config struct {
	Device    DeviceConfig    `koanf:"device"`
	Transport TransportConfig `koanf:"transport"`
	Effects   EffectsConfig   `koanf:"effects"`
	Export    ExportConfig    `koanf:"export"`
	Log       LogConfig       `koanf:"log"`
}

type DeviceConfig struct {
	SampleRate      int `koanf:"sample_rate"`      // 0 = buffer rate
	BufferMS        int `koanf:"buffer_ms"`        // default: 100
	ResampleQuality int `koanf:"resample_quality"` // 1-64, default: 4
}

type TransportConfig struct {
	EndTolerance *float64 `koanf:"end_tolerance"` // seconds, default: 0.05
	TickMS       int      `koanf:"tick_ms"`       // default: 16
	LoopLength   float64  `koanf:"loop_length"`   // seconds, default: 2
}

// EffectsConfig holds the initial control positions, each in [0,100],
// and the tempo multiplier.
type EffectsConfig struct {
	Volume *float64 `koanf:"volume"` // default: 100
	Bass   *float64 `koanf:"bass"`   // default: 0
	Treble *float64 `koanf:"treble"` // default: 100
	Tempo  float64  `koanf:"tempo"`  // (0,2], default: 1
}

type ExportConfig struct {
	Format      string `koanf:"format"`   // "wav" or "mp3", default: "wav"
	Mode        string `koanf:"mode"`     // "clip" or "loop", default: "clip"
	FileName    string `koanf:"filename"` // default: "recording"
	Dir         string `koanf:"dir"`      // default: "."
	MP3Bitrate  int    `koanf:"mp3_bitrate"`
	WAVBitDepth int    `koanf:"wav_bit_depth"`
}

type LogConfig struct {
	Level       string `koanf:"level"` // default: "info"
	Development bool   `koanf:"development"`
}

// Load reads the given TOML files, skipping missing ones, then applies
// the flags in fs that were set on the command line. fs may be nil.
func Load(paths []string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if fs != nil {
		// nil ko: only flags changed on the command line are merged
		provider := posflag.ProviderWithFlag(fs, ".", nil, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Export.Dir = expandPath(cfg.Export.Dir)
	return cfg, nil
}

// DefaultPaths returns the configuration files in load order:
// ~/.config/wavedeck/config.toml, then ./wavedeck.toml.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "wavedeck", "config.toml"))
	}
	return append(paths, "wavedeck.toml")
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetDeviceConfig returns the device configuration with defaults applied.
func (c *Config) GetDeviceConfig() DeviceConfig {
	cfg := c.Device

	if cfg.SampleRate < 0 {
		cfg.SampleRate = 0
	}
	if cfg.BufferMS <= 0 {
		cfg.BufferMS = 100
	}
	if cfg.ResampleQuality <= 0 || cfg.ResampleQuality > 64 {
		cfg.ResampleQuality = 4
	}

	return cfg
}

// BufferDuration is the speaker buffer length.
func (c DeviceConfig) BufferDuration() time.Duration {
	return time.Duration(c.BufferMS) * time.Millisecond
}

// GetTransportConfig returns the transport configuration with defaults
// applied. EndTolerance is never nil in the result.
func (c *Config) GetTransportConfig() TransportConfig {
	cfg := c.Transport

	if cfg.EndTolerance == nil || *cfg.EndTolerance < 0 {
		cfg.EndTolerance = ptr(0.05)
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 16
	}
	if cfg.LoopLength <= 0 {
		cfg.LoopLength = 2
	}

	return cfg
}

// TickInterval is the loop-back and position update cadence.
func (c TransportConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// GetEffectsConfig returns the effect controls with defaults applied.
// Controls are clamped to [0,100]. An unset tempo becomes 1; other
// tempos are checked when applied.
func (c *Config) GetEffectsConfig() EffectsConfig {
	cfg := c.Effects

	cfg.Volume = control(cfg.Volume, 100)
	cfg.Bass = control(cfg.Bass, 0)
	cfg.Treble = control(cfg.Treble, 100)
	if cfg.Tempo == 0 {
		cfg.Tempo = 1
	}

	return cfg
}

// GetExportConfig returns the export configuration with defaults applied.
// Encoder tunables left at zero select the encoder defaults.
func (c *Config) GetExportConfig() ExportConfig {
	cfg := c.Export

	if cfg.Format == "" {
		cfg.Format = "wav"
	}
	if cfg.Mode == "" {
		cfg.Mode = "clip"
	}
	if cfg.FileName == "" {
		cfg.FileName = "recording"
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	return cfg
}

func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

func control(v *float64, def float64) *float64 {
	if v == nil {
		return ptr(def)
	}
	return ptr(max(0, min(*v, 100)))
}

func ptr[T any](v T) *T { return &v }

// SPDX-License-Identifier: EPL-2.0

package wavedeck

import (
	"go.uber.org/zap"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/render"
	"github.com/ik5/wavedeck/transport"
)

type options struct {
	log        *zap.Logger
	registry   *audio.Registry
	params     *dsp.LiveParams
	engine     []transport.Option
	exporter   []render.ExporterOption
	sampleRate int
}

type Option func(*options)

// WithLogger sets the logger of the deck and of the engine and exporter it
// builds.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRegistry replaces the built-in decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithLiveParams shares p with the output device, so control changes are
// heard during playback.
func WithLiveParams(p *dsp.LiveParams) Option {
	return func(o *options) { o.params = p }
}

func WithEngineOptions(opts ...transport.Option) Option {
	return func(o *options) { o.engine = append(o.engine, opts...) }
}

func WithExporterOptions(opts ...render.ExporterOption) Option {
	return func(o *options) { o.exporter = append(o.exporter, opts...) }
}

// WithLoadSampleRate resamples every loaded buffer to rate. Zero keeps
// the decoded rate.
func WithLoadSampleRate(rate int) Option {
	return func(o *options) { o.sampleRate = rate }
}

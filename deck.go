// SPDX-License-Identifier: EPL-2.0

package wavedeck

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/device"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/render"
	"github.com/ik5/wavedeck/transport"
)

// MaxTempo is the fastest playback rate SetTempo accepts.
const MaxTempo = 2.0

// Controls are the raw [0,100] control positions behind the effect
// parameters.
type Controls struct {
	Volume float64
	Bass   float64
	Treble float64
}

// DefaultControls leave the effects chain transparent.
func DefaultControls() Controls {
	return Controls{
		Volume: dsp.DefaultVolumeControl,
		Bass:   dsp.DefaultBassControl,
		Treble: dsp.DefaultTrebleControl,
	}
}

// Params maps the controls to effect parameters.
func (c Controls) Params() dsp.Params {
	return dsp.ParamsFromControls(c.Volume, c.Bass, c.Treble)
}

// ExportOptions select what Export writes. The range, effect parameters
// and rate are taken from the deck when the export starts.
type ExportOptions struct {
	Mode     render.Mode
	Format   render.Format
	FileName string
}

// Deck owns one loaded clip, its playback engine, the live effect
// parameters and an exporter.
type Deck struct {
	log        *zap.Logger
	registry   *audio.Registry
	engine     *transport.Engine
	params     *dsp.LiveParams
	exporter   *render.Exporter
	sampleRate int

	mu       sync.Mutex
	controls Controls
}

// New returns a deck playing through out. Without WithLiveParams the
// effect parameters only affect export.
func New(out device.Output, opts ...Option) *Deck {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}

	d := &Deck{
		log:        o.log,
		registry:   o.registry,
		params:     o.params,
		sampleRate: o.sampleRate,
		controls:   DefaultControls(),
	}
	if d.params == nil {
		d.params = dsp.NewLiveParams(d.controls.Params())
	} else {
		// keep the reported controls in step with shared parameters
		p := d.params.Snapshot()
		d.controls = Controls{
			Volume: p.Volume * dsp.ControlMax,
			Bass:   dsp.ControlFromCutoff(p.BassHz),
			Treble: dsp.ControlFromCutoff(p.TrebleHz),
		}
	}

	d.engine = transport.New(out,
		append([]transport.Option{transport.WithLogger(o.log.Named("transport"))}, o.engine...)...)
	d.exporter = render.NewExporter(
		append([]render.ExporterOption{render.WithExporterLogger(o.log.Named("export"))}, o.exporter...)...)
	return d
}

// Engine returns the playback engine for transport control.
func (d *Deck) Engine() *transport.Engine { return d.engine }

// Params returns the live effect parameters.
func (d *Deck) Params() *dsp.LiveParams { return d.params }

func (d *Deck) Registry() *audio.Registry { return d.registry }

// Load decodes r and replaces the current clip. On failure the previous
// clip stays loaded and the error wraps audio.ErrLoad.
func (d *Deck) Load(r io.Reader) error {
	buf, err := audio.Decode(r, d.registry)
	if err != nil {
		d.log.Warn("load failed", zap.Error(err))
		return err
	}
	return d.LoadBuffer(buf)
}

// LoadFile is Load for a file on disk.
func (d *Deck) LoadFile(path string) error {
	buf, err := audio.LoadFile(path, d.registry)
	if err != nil {
		d.log.Warn("load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := d.LoadBuffer(buf); err != nil {
		return err
	}
	d.log.Info("loaded", zap.String("path", path), zap.Float64("duration", buf.Duration()))
	return nil
}

// LoadBuffer replaces the current clip with an already decoded buffer.
func (d *Deck) LoadBuffer(buf *audio.Buffer) error {
	if buf == nil {
		return audio.ErrNoBuffer
	}
	if d.sampleRate > 0 {
		var err error
		if buf, err = Resample(buf, d.sampleRate); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrLoad, err)
		}
	}
	return d.engine.Load(buf)
}

// Controls returns the current control positions.
func (d *Deck) Controls() Controls {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.controls
}

// SetVolume sets the volume control. Values are clamped to [0,100].
func (d *Deck) SetVolume(control float64) {
	gain := dsp.VolumeFromControl(control)

	d.mu.Lock()
	d.controls.Volume = gain * dsp.ControlMax
	d.params.SetVolume(gain)
	d.mu.Unlock()

	d.engine.Publish(transport.Event{
		Kind:  transport.EventVolumeChange,
		Value: gain,
	})
}

// SetBass sets the bass control, which moves the high-pass cutoff.
func (d *Deck) SetBass(control float64) {
	hz := dsp.CutoffFromControl(control)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.controls.Bass = dsp.ControlFromCutoff(hz)
	d.params.SetBass(hz)
	d.log.Debug("bass changed", zap.Float64("cutoff_hz", hz))
}

// SetTreble sets the treble control, which moves the low-pass cutoff.
func (d *Deck) SetTreble(control float64) {
	hz := dsp.CutoffFromControl(control)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.controls.Treble = dsp.ControlFromCutoff(hz)
	d.params.SetTreble(hz)
	d.log.Debug("treble changed", zap.Float64("cutoff_hz", hz))
}

// SetTempo sets the playback rate used for playback and export. It must
// be in (0, MaxTempo].
func (d *Deck) SetTempo(rate float64) error {
	if !(rate > 0) || rate > MaxTempo || math.IsNaN(rate) {
		return fmt.Errorf("%w: %v", ErrInvalidTempo, rate)
	}
	return d.engine.SetRate(rate)
}

// Export renders the loaded clip with the current effects and tempo.
func (d *Deck) Export(ctx context.Context, opts ExportOptions) (*render.File, error) {
	// one snapshot, so the region always belongs to the buffer
	snap := d.engine.Snapshot()
	buf := snap.Buffer
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}

	req := render.Request{
		Range:    render.SelectRange(opts.Mode, buf.Duration(), snap.Region, snap.HasRegion),
		Rate:     snap.Rate,
		Params:   d.params.Snapshot(),
		Format:   opts.Format,
		FileName: opts.FileName,
	}
	d.log.Debug("export requested",
		zap.Stringer("mode", opts.Mode),
		zap.Stringer("range", req.Range))

	return d.exporter.Export(ctx, buf, req)
}

// Close stops playback and closes the engine's subscriptions.
func (d *Deck) Close() error {
	return d.engine.Close()
}

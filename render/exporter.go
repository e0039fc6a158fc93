// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/wavedeck/audio"
)

// Exporter runs exports one at a time. A second export while one is
// running fails with ErrExportInProgress.
type Exporter struct {
	log      *zap.Logger
	encoders map[Format]Encoder
	busy     atomic.Bool
}

type ExporterOption func(*Exporter)

func WithExporterLogger(l *zap.Logger) ExporterOption {
	return func(e *Exporter) { e.log = l }
}

// WithEncoder registers enc for f, replacing any built-in encoder. A nil
// enc removes the format.
func WithEncoder(f Format, enc Encoder) ExporterOption {
	return func(e *Exporter) {
		if enc == nil {
			delete(e.encoders, f)
			return
		}
		e.encoders[f] = enc
	}
}

// WithEncoderConfig replaces the built-in encoders with ones using cfg.
func WithEncoderConfig(cfg EncoderConfig) ExporterOption {
	return func(e *Exporter) {
		for f, enc := range DefaultEncoders(cfg) {
			e.encoders[f] = enc
		}
	}
}

// NewExporter returns an exporter with the built-in WAV and MP3 encoders.
func NewExporter(opts ...ExporterOption) *Exporter {
	e := &Exporter{
		log:      zap.NewNop(),
		encoders: DefaultEncoders(EncoderConfig{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Supports reports whether f has an encoder.
func (e *Exporter) Supports(f Format) bool {
	_, ok := e.encoders[f]
	return ok
}

// Busy reports whether an export is running.
func (e *Exporter) Busy() bool { return e.busy.Load() }

// Export renders and encodes req against buf. The format and range are
// validated before rendering starts. On any error no file is returned.
func (e *Exporter) Export(ctx context.Context, buf *audio.Buffer, req Request) (*File, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrExportInProgress
	}
	defer e.busy.Store(false)

	enc, ok := e.encoders[req.Format]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", ErrEncode, ErrUnsupportedFormat, req.Format)
	}
	if err := enc.Validate(buf.SampleRate(), buf.Channels()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	if err := req.validateRate(); err != nil {
		return nil, err
	}
	if _, _, err := req.SampleRange(buf); err != nil {
		return nil, err
	}

	log := e.log.With(
		zap.Stringer("format", req.Format),
		zap.Stringer("range", req.Range),
		zap.Float64("rate", req.Rate))
	log.Info("export started")
	began := time.Now()

	rendered, err := Render(ctx, buf, req)
	if err != nil {
		log.Warn("render failed", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := enc.Encode(ctx, rendered)
	if err != nil {
		log.Error("encode failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	file := &File{
		Name:     FileName(req.FileName, req.Format),
		MIMEType: req.Format.MIMEType(),
		Data:     data,
	}
	log.Info("export finished",
		zap.String("file", file.Name),
		zap.Int("bytes", len(data)),
		zap.Float64("seconds", rendered.Duration()),
		zap.Duration("took", time.Since(began)))
	return file, nil
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ik5/wavedeck"
	"github.com/ik5/wavedeck/config"
	"github.com/ik5/wavedeck/device"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/render"
)

func export(ctx context.Context, log *zap.Logger, cfg *config.Config, opts options, stdout io.Writer) error {
	ex := cfg.GetExportConfig()

	format, err := render.ParseFormat(ex.Format)
	if err != nil {
		return err
	}
	mode, err := render.ParseMode(ex.Mode)
	if err != nil {
		return err
	}

	deck := wavedeck.New(device.Null{},
		wavedeck.WithLogger(log),
		wavedeck.WithLiveParams(dsp.NewLiveParams(initialParams(cfg))),
		wavedeck.WithLoadSampleRate(opts.rate),
		wavedeck.WithEngineOptions(engineOptions(cfg)...),
		wavedeck.WithExporterOptions(render.WithEncoderConfig(render.EncoderConfig{
			WAVBitDepth: ex.WAVBitDepth,
			MP3Bitrate:  ex.MP3Bitrate,
		})),
	)
	defer deck.Close()

	if err := prepare(deck, cfg, opts); err != nil {
		return err
	}

	file, err := deck.Export(ctx, wavedeck.ExportOptions{
		Mode:     mode,
		Format:   format,
		FileName: ex.FileName,
	})
	if err != nil {
		return err
	}

	path, err := file.Save(ex.Dir)
	if err != nil {
		return fmt.Errorf("saving export: %w", err)
	}
	fmt.Fprintln(stdout, path)
	return nil
}

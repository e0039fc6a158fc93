// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/wavedeck"
	"github.com/ik5/wavedeck/config"
	"github.com/ik5/wavedeck/device"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/transport"
)

// play plays the input until it ends or ctx is canceled. With a loop
// region it plays until canceled.
func play(ctx context.Context, log *zap.Logger, cfg *config.Config, opts options) error {
	dev := cfg.GetDeviceConfig()
	params := dsp.NewLiveParams(initialParams(cfg))

	spk := device.NewSpeaker(
		device.WithSampleRate(dev.SampleRate),
		device.WithBufferDuration(dev.BufferDuration()),
		device.WithQuality(dev.ResampleQuality),
		device.WithParams(params),
		device.WithSpeakerLogger(log.Named("speaker")),
	)
	defer spk.Close()
	spk.SetMuted(opts.mute)

	deck := wavedeck.New(spk,
		wavedeck.WithLogger(log),
		wavedeck.WithLiveParams(params),
		wavedeck.WithLoadSampleRate(opts.rate),
		wavedeck.WithEngineOptions(engineOptions(cfg)...),
	)
	defer deck.Close()

	if err := prepare(deck, cfg, opts); err != nil {
		return err
	}

	engine := deck.Engine()
	sub := engine.Subscribe()
	if err := engine.Play(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tickErr := make(chan error, 1)
	go func() {
		tickErr <- transport.RunTicker(ctx, engine, cfg.GetTransportConfig().TickInterval())
	}()

	for {
		select {
		case ev := <-sub.Events:
			if ev.Kind == transport.EventTimeUpdate {
				continue
			}
			log.Debug("transport event",
				zap.Stringer("kind", ev.Kind),
				zap.Float64("position", ev.Position),
				zap.Float64("rate", ev.Rate))
			if ev.Kind == transport.EventEnded {
				cancel()
				<-tickErr
				return nil
			}
		case <-sub.Done:
			return nil
		case err := <-tickErr:
			if errors.Is(err, context.Canceled) {
				log.Info("stopped", zap.Float64("position", engine.Position()))
				return nil
			}
			return fmt.Errorf("ticker: %w", err)
		}
	}
}

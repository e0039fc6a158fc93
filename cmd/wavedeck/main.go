// SPDX-License-Identifier: EPL-2.0

// Command wavedeck plays audio clips with live tempo and tone controls, and
// exports processed ranges of them to WAV or MP3.
//
//	wavedeck play [flags] <input>
//	wavedeck export [flags] <input>
//
// Settings are read from ~/.config/wavedeck/config.toml, ./wavedeck.toml
// and a file given with --config, in that order; flags override them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ik5/wavedeck"
	"github.com/ik5/wavedeck/config"
	"github.com/ik5/wavedeck/dsp"
	"github.com/ik5/wavedeck/internal/logging"
	"github.com/ik5/wavedeck/transport"
)

const usage = `usage: wavedeck <command> [flags] <input>

commands:
  play     play the input through the default output device
  export   render the input with the current settings and save it
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// options are the flags that are not configuration keys.
type options struct {
	configPath string
	rate       int
	loopStart  float64
	loopEnd    float64
	mute       bool
	input      string
}

func (o options) hasLoop() bool { return o.loopEnd > o.loopStart }

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd := args[0]
	switch cmd {
	case "play", "export":
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	config.RegisterFlags(fs)

	var opts options
	fs.StringVarP(&opts.configPath, "config", "c", "", "additional configuration file")
	fs.IntVar(&opts.rate, "rate", 0, "resample the input to this sample rate after loading")
	fs.Float64Var(&opts.loopStart, "loop-start", 0, "loop region start in seconds")
	fs.Float64Var(&opts.loopEnd, "loop-end", 0, "loop region end in seconds")
	fs.BoolVar(&opts.mute, "mute", false, "start playback muted")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "%s needs exactly one input file\n", cmd)
		return 2
	}
	opts.input = fs.Arg(0)

	paths := config.DefaultPaths()
	if opts.configPath != "" {
		paths = append(paths, opts.configPath)
	}
	cfg, err := config.Load(paths, fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logCfg := cfg.GetLogConfig()
	log, err := logging.New(logCfg.Level, logCfg.Development)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	switch cmd {
	case "play":
		err = play(ctx, log, cfg, opts)
	case "export":
		err = export(ctx, log, cfg, opts, stdout)
	}
	if err != nil {
		log.Error(cmd+" failed", zap.Error(err))
		return 1
	}
	return 0
}

// prepare loads the input into deck and applies the configured effects,
// tempo and loop region.
func prepare(deck *wavedeck.Deck, cfg *config.Config, opts options) error {
	if err := deck.LoadFile(opts.input); err != nil {
		return err
	}

	fx := cfg.GetEffectsConfig()
	deck.SetVolume(*fx.Volume)
	deck.SetBass(*fx.Bass)
	deck.SetTreble(*fx.Treble)
	if err := deck.SetTempo(fx.Tempo); err != nil {
		return err
	}

	if opts.hasLoop() {
		if err := deck.Engine().SetLoopRegion(opts.loopStart, opts.loopEnd); err != nil {
			return err
		}
		deck.Engine().SetLooping(true)
	}
	return nil
}

func initialParams(cfg *config.Config) dsp.Params {
	fx := cfg.GetEffectsConfig()
	return dsp.ParamsFromControls(*fx.Volume, *fx.Bass, *fx.Treble)
}

func engineOptions(cfg *config.Config) []transport.Option {
	tr := cfg.GetTransportConfig()
	return []transport.Option{
		transport.WithEndTolerance(*tr.EndTolerance),
		transport.WithLoopLength(tr.LoopLength),
	}
}

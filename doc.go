// SPDX-License-Identifier: EPL-2.0

// Package wavedeck plays and exports audio clips.
//
// A Deck ties together the pieces found in the subpackages:
//
//   - audio: decoded buffers, format detection and resampling
//   - formats/*: decoders for WAV, MP3, Ogg Vorbis, AIFF and FLAC, and the
//     WAV and MP3 encoders used for export
//   - transport: the playback clock, which keeps the reported position in
//     step with the audio across pause, seek and rate changes
//   - dsp: the gain, high-pass and low-pass chain and its control mapping
//   - device: the output the transport starts voices on
//   - render: offline rendering and export of a time range
//
// # Quick Start
//
//	params := dsp.NewLiveParams(dsp.DefaultParams())
//	spk := device.NewSpeaker(device.WithParams(params))
//	defer spk.Close()
//
//	deck := wavedeck.New(spk, wavedeck.WithLiveParams(params))
//	defer deck.Close()
//
//	if err := deck.LoadFile("take.wav"); err != nil {
//		return err
//	}
//	_ = deck.Engine().Play()
//
//	deck.SetTreble(60)  // low-pass at roughly 1.2 kHz
//	deck.SetTempo(1.25) // faster and higher
//
// Live parameter changes retune the running filters in place; rate
// changes retune the running voice without restarting it.
//
// # Export
//
// Export renders the loaded buffer with the current effect settings and
// tempo, independently of playback:
//
//	file, err := deck.Export(ctx, wavedeck.ExportOptions{
//		Mode:     render.ModeLoop,
//		Format:   render.FormatMP3,
//		FileName: "take-3",
//	})
//	if err != nil {
//		return err
//	}
//	path, err := file.Save(".")
//
// Only one export runs at a time, and a failed export never yields a
// partial file.
package wavedeck

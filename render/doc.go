// SPDX-License-Identifier: EPL-2.0

// Package render produces effects-applied, tempo-adjusted copies of a
// decoded buffer and encodes them to files.
//
// An export runs in three strictly sequential steps:
//
//  1. Range selection. The Request range, in seconds, is converted to a
//     frame window with floor(seconds * sampleRate). Empty, inverted or
//     out-of-bounds ranges fail with ErrRange before anything is rendered.
//  2. Offline render. The window is read at the requested rate with the
//     audio package's Catmull-Rom rate resampler, which changes pitch along
//     with tempo, then run through the same gain, high-pass and low-pass
//     chain used for live playback. The result holds exactly
//     ceil(frames / rate) frames.
//  3. Encode. The rendered buffer is handed to the Encoder registered for
//     the requested Format.
//
// The Exporter wraps these steps, allows a single export at a time and
// never returns partial output: any failure, including cancellation,
// discards everything produced so far.
//
//	exp := render.NewExporter(render.WithExporterLogger(log))
//	file, err := exp.Export(ctx, buf, render.Request{
//		Range:    render.SelectRange(render.ModeClip, buf.Duration(), audio.Region{}, false),
//		Rate:     1.25,
//		Params:   dsp.DefaultParams(),
//		Format:   render.FormatMP3,
//		FileName: "take-3",
//	})
package render

// SPDX-License-Identifier: EPL-2.0

// Package audio provides the low-level building blocks shared by playback
// and export.
//
// This package contains:
//   - Source interface for streaming interleaved float32 audio
//   - Buffer, a decoded clip held in memory (planar float32)
//   - BufferSource for streaming a window of a Buffer
//   - Resampler for sample rate conversion and tempo (rate) resampling
//   - StereoMixer for presenting any layout as two channels
//   - Region, a time range inside a clip
//   - Registry of decoders with content based format detection
//
// # Source Interface
//
// The Source interface is the foundation of audio processing:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// All decoders and processing stages implement this interface, allowing
// them to be chained together.
//
// # Loading
//
// Decode reads a whole stream, asks the registry which decoder recognizes
// its first bytes and drains the decoder into a Buffer:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	registry.Register("mp3", mp3.Decoder{})
//
//	buf, err := audio.Decode(r, registry)
//	if errors.Is(err, audio.ErrLoad) {
//	    // keep whatever was loaded before
//	}
//
// A Buffer is immutable once built, so playback and export may read it
// from different goroutines without locking.
//
// # Resampling
//
// NewResampler converts between sample rates. NewRateResampler keeps the
// sample rate and consumes rate source frames per output frame, which is
// how a playback rate is rendered offline: the result is shorter or longer
// and its pitch moves with it.
//
//	src := audio.NewBufferSource(buf, start, end)
//	fast := audio.NewRateResampler(src, 2.0) // ceil((end-start)/2) frames
//
// Both use Catmull-Rom cubic interpolation. The first output frame is the
// first input frame.
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. The final call may
// return n > 0 together with io.EOF:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio

// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/internal/audiotest"
)

// Example_tempo renders a clip at double speed.
func Example_tempo() {
	clip, _ := audio.NewBufferFromPlanar(44100, audiotest.Planar(2, 44100, audiotest.Sine(44100, 440, 0.5)))

	// play the clip twice as fast: half the frames, pitch one octave up
	src := audio.NewRateResampler(audio.NewBufferSource(clip, 0, clip.Frames()), 2.0)

	out, err := audio.ReadAll(src)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("in: %.1fs, out: %.1fs at %d Hz\n", clip.Duration(), out.Duration(), out.SampleRate())
	// Output:
	// in: 1.0s, out: 0.5s at 44100 Hz
}

// Example_region selects a window of a clip by time.
func Example_region() {
	clip, _ := audio.NewBuffer(8000, 1, 8000*10)
	region := audio.Region{Start: 2, End: 5}

	if err := region.Validate(clip.Duration()); err != nil {
		fmt.Println(err)
		return
	}

	src := audio.NewBufferSource(clip, clip.FrameAt(region.Start), clip.FrameAt(region.End))
	fmt.Printf("%s covers %d frames\n", region, src.Remaining())
	// Output:
	// [2.000s, 5.000s] covers 24000 frames
}

// Example_stereoMixer duplicates a mono source to two channels.
func Example_stereoMixer() {
	mono := audiotest.NewConstantSource(16000, 1, 160, 0.5)
	stereo := audio.NewStereoMixer(mono)

	buf := make([]float32, 8)
	n, _ := stereo.ReadSamples(buf)

	fmt.Printf("%d channels, %d samples: %v\n", stereo.Channels(), n, buf[:4])
	// Output:
	// 2 channels, 8 samples: [0.5 0.5 0.5 0.5]
}

// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/formats/mp3"
)

func ExampleDecoder_Match() {
	var d mp3.Decoder

	fmt.Println(d.Match([]byte("ID3\x04\x00")))
	fmt.Println(d.Match([]byte{0xFF, 0xFB, 0x90, 0x64}))
	fmt.Println(d.Match([]byte("RIFF\x24\x00\x00\x00WAVE")))

	// Output:
	// true
	// true
	// false
}

func ExampleOutputSampleRate() {
	fmt.Println(mp3.OutputSampleRate(48000))
	fmt.Println(mp3.OutputSampleRate(22050))

	// Output:
	// 48000
	// 44100
}

// Example_encode writes one second of a 440 Hz tone as an MP3 file.
func Example_encode() {
	const rate = 44100

	buf, err := audio.NewBuffer(rate, 1, rate)
	if err != nil {
		log.Fatal(err)
	}
	tone := buf.Channel(0)
	for i := range tone {
		// triangle wave, cheap stand-in for a sine
		phase := float32(i%100) / 100
		tone[i] = 0.5 * (4*abs(phase-0.5) - 1)
	}

	data, err := mp3.Encoder{}.Encode(context.Background(), buf)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.WriteFile("tone.mp3", data, 0o644); err != nil {
		log.Fatal(err)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/formats/wav"
)

// Example_roundTrip encodes a buffer and decodes it back.
func Example_roundTrip() {
	clip, _ := audio.NewBufferFromPlanar(8000, [][]float32{
		{-0.5, -0.25, 0, 0.25, 0.5},
	})

	data, err := wav.Encoder{}.Encode(context.Background(), clip)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Wrote %d bytes (44 header + %d data)\n", len(data), len(data)-44)

	decoded, err := audio.DecodeWith(bytes.NewReader(data), wav.Decoder{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Recovered: %v\n", decoded.Channel(0))
	// Output:
	// Wrote 54 bytes (44 header + 10 data)
	// Recovered: [-0.5 -0.25 0 0.25 0.5]
}

// Example_errorNotWAV shows handling of invalid WAV files.
func Example_errorNotWAV() {
	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file")))
	fmt.Println(errors.Is(err, wav.ErrNotWavFile))
	// Output:
	// true
}

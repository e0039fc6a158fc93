// SPDX-License-Identifier: EPL-2.0

package wavedeck

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/internal/audiotest"
)

func TestResample(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		channels int
	}{
		{name: "down", from: 44100, to: 8000, channels: 2},
		{name: "up", from: 8000, to: 44100, channels: 1},
		{name: "cd to dvd", from: 44100, to: 48000, channels: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf, err := audio.NewBufferFromPlanar(tt.from,
				audiotest.Planar(tt.channels, tt.from, audiotest.Constant(0.5)))
			if err != nil {
				t.Fatal(err)
			}

			out, err := Resample(buf, tt.to)
			if err != nil {
				t.Fatalf("Resample() error = %v", err)
			}
			if out.SampleRate() != tt.to {
				t.Errorf("SampleRate() = %d, want %d", out.SampleRate(), tt.to)
			}
			if out.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", out.Channels(), tt.channels)
			}
			if math.Abs(float64(out.Frames()-tt.to)) > 1 {
				t.Errorf("Frames() = %d, want ~%d", out.Frames(), tt.to)
			}
			for i, x := range out.Channel(0) {
				if math.Abs(float64(x)-0.5) > 1e-3 {
					t.Fatalf("sample %d = %v, want 0.5", i, x)
				}
			}
		})
	}
}

func TestResample_SameRate(t *testing.T) {
	t.Parallel()

	buf, _ := audio.NewBuffer(8000, 1, 100)
	out, err := Resample(buf, 8000)
	if err != nil {
		t.Fatal(err)
	}
	if out != buf {
		t.Error("Resample() copied a buffer already at the target rate")
	}
}

func TestResample_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Resample(nil, 8000); !errors.Is(err, audio.ErrNoBuffer) {
		t.Errorf("nil buffer error = %v, want ErrNoBuffer", err)
	}

	buf, _ := audio.NewBuffer(8000, 1, 100)
	for _, rate := range []int{0, -44100} {
		if _, err := Resample(buf, rate); !errors.Is(err, audio.ErrInvalidFormat) {
			t.Errorf("rate %d error = %v, want ErrInvalidFormat", rate, err)
		}
	}
}

func BenchmarkResample(b *testing.B) {
	buf, _ := audio.NewBufferFromPlanar(44100, audiotest.Planar(2, 44100, audiotest.Sine(44100, 440, 0.5)))

	b.ReportAllocs()
	for range b.N {
		if _, err := Resample(buf, 48000); err != nil {
			b.Fatal(err)
		}
	}
}

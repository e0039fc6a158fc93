// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	samples    []int16
	offset     int // in bytes
	maxRead    int // caps bytes per Read when positive
	err        error
}

func (m *mockMP3Reader) SampleRate() int {
	return m.sampleRate
}

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	raw := make([]byte, len(m.samples)*2)
	for i, s := range m.samples {
		binary.LittleEndian.PutUint16(raw[i*2:], uint16(s))
	}
	if m.offset >= len(raw) {
		return 0, io.EOF
	}

	want := len(buf)
	if m.maxRead > 0 && want > m.maxRead {
		want = m.maxRead
	}
	n := copy(buf[:want], raw[m.offset:])
	m.offset += n

	if m.offset >= len(raw) {
		return n, io.EOF
	}
	return n, nil
}

func newTestSource(r *mockMP3Reader, bufSize int) *source {
	return &source{dec: r, sampleRate: r.sampleRate, buf: make([]byte, bufSize)}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not MP3 data")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := (Decoder{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestDecoder_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   bool
	}{
		{name: "id3 tag", header: []byte("ID3\x04\x00\x00"), want: true},
		{name: "mpeg1 layer3", header: []byte{0xFF, 0xFB, 0x90, 0x64}, want: true},
		{name: "mpeg2 layer3", header: []byte{0xFF, 0xF3, 0x48, 0xC4}, want: true},
		{name: "layer2 sync", header: []byte{0xFF, 0xFD, 0x90, 0x64}, want: false},
		{name: "riff", header: []byte("RIFF\x00\x00\x00\x00WAVE"), want: false},
		{name: "short", header: []byte{0xFF}, want: false},
		{name: "empty", header: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := (Decoder{}).Match(tt.header); got != tt.want {
				t.Errorf("Match(% x) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 100)}, 8192)

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want 4096", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	samples := []int16{0, 1, -1, 32767, -32768, 16384, -16384, 8192}
	src := newTestSource(&mockMP3Reader{sampleRate: 8000, samples: samples}, 8192)

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 8 {
		t.Fatalf("ReadSamples() n = %d, want 8", n)
	}

	want := []float32{0, 1.0 / 32768, -1.0 / 32768, 32767.0 / 32768, -1, 0.5, -0.5, 0.25}
	for i := range n {
		if math.Abs(float64(dst[i]-want[i])) > 1e-6 {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSource_ReadSamples_EmptyDst(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 8000, samples: make([]int16, 100)}, 8192)

	// a single sample cannot hold a stereo frame either
	for _, size := range []int{0, 1} {
		n, err := src.ReadSamples(make([]float32, size))
		if n != 0 || err != nil {
			t.Errorf("ReadSamples(len %d) = %d, %v, want 0, nil", size, n, err)
		}
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 8000, samples: []int16{100, 200, 300, 400}}, 8192)

	dst := make([]float32, 4)
	n, err := src.ReadSamples(dst)
	if n != 4 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() = %d, %v, want 4, EOF", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("second ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_ChunkedReads(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 10)
	for i := range samples {
		samples[i] = int16(i * 1000)
	}
	src := newTestSource(&mockMP3Reader{sampleRate: 8000, samples: samples}, 8192)

	dst := make([]float32, 4)
	var counts []int
	for {
		n, err := src.ReadSamples(dst)
		counts = append(counts, n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []int{4, 4, 2}
	if len(counts) != len(want) {
		t.Fatalf("read counts = %v, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("read %d returned %d samples, want %d", i, counts[i], want[i])
		}
	}
}

func TestSource_ReadSamples_SplitFrames(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, 2000, 3000, 4000, 5000, 6000}
	// 3-byte reads split both samples and frames
	src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: samples, maxRead: 3}, 8192)

	var got []float32
	dst := make([]float32, 6)
	for range 100 {
		n, err := src.ReadSamples(dst)
		if n%2 != 0 {
			t.Fatalf("ReadSamples() returned %d samples, want whole frames", n)
		}
		got = append(got, dst[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i, s := range samples {
		if want := float32(s) / 32768; got[i] != want {
			t.Errorf("sample %d = %v, want %v", i, got[i], want)
		}
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 8000, err: io.ErrUnexpectedEOF}, 8192)

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BufferResize(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockMP3Reader{sampleRate: 44100, samples: make([]int16, 1000)}, 100)
	initialCap := cap(src.buf)

	n, err := src.ReadSamples(make([]float32, 1000))
	if err != nil && !errors.Is(err, io.EOF) {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 1000 {
		t.Errorf("ReadSamples() n = %d, want 1000", n)
	}
	if cap(src.buf) <= initialCap {
		t.Errorf("buffer capacity = %d, want > %d", cap(src.buf), initialCap)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}
	reader := &mockMP3Reader{sampleRate: 44100, samples: samples}
	src := newTestSource(reader, 8192)
	dst := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		reader.offset = 0
		_, _ = src.ReadSamples(dst)
	}
}

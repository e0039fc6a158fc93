// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"math"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ik5/wavedeck/dsp"
)

// fakeBackend stands in for the beep speaker: the test pulls audio from
// whatever was played instead of a hardware callback.
type fakeBackend struct {
	mu      sync.Mutex
	inits   int
	rate    beep.SampleRate
	size    int
	initErr error
	played  []beep.Streamer
}

func (f *fakeBackend) backend() backend {
	return backend{
		init: func(sr beep.SampleRate, size int) error {
			if f.initErr != nil {
				return f.initErr
			}
			f.inits++
			f.rate, f.size = sr, size
			return nil
		},
		play:   func(s ...beep.Streamer) { f.played = append(f.played, s...) },
		lock:   f.mu.Lock,
		unlock: f.mu.Unlock,
		clear:  func() { f.played = nil },
	}
}

// pull streams n frames from the device output like the audio thread would.
func (f *fakeBackend) pull(t *testing.T, n int) [][2]float64 {
	t.Helper()
	require.Len(t, f.played, 1)

	out := make([][2]float64, n)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.played[0].Stream(out)
	return out
}

func newTestSpeaker(t *testing.T, fake *fakeBackend, opts ...SpeakerOption) *Speaker {
	t.Helper()

	opts = append([]SpeakerOption{WithSpeakerLogger(zaptest.NewLogger(t))}, opts...)
	s := NewSpeaker(opts...)
	s.be = fake.backend()
	return s
}

func waitDone(t *testing.T, v Voice) {
	t.Helper()
	select {
	case <-v.Done():
	case <-time.After(time.Second):
		t.Fatal("voice did not finish")
	}
}

func TestSpeaker_OpensOnceAtBufferRate(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	s := newTestSpeaker(t, fake, WithBufferDuration(50*time.Millisecond))
	assert.Zero(t, s.SampleRate())

	buf := testBuffer(t, 22050, 1, 22050, 0.5)
	_, err := s.Start(buf, 0, 1)
	require.NoError(t, err)
	_, err = s.Start(buf, 0.5, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.inits)
	assert.Equal(t, beep.SampleRate(22050), fake.rate)
	assert.Equal(t, 1102, fake.size)
	assert.Equal(t, 22050, s.SampleRate())
}

func TestSpeaker_StartErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("no sound card")
	fake := &fakeBackend{initErr: boom}
	s := newTestSpeaker(t, fake)
	buf := testBuffer(t, 8000, 1, 100, 0)

	_, err := s.Start(buf, 0, 1)
	assert.ErrorIs(t, err, ErrDevice)
	assert.ErrorIs(t, err, boom)

	_, err = s.Start(nil, 0, 1)
	assert.Error(t, err)

	_, err = s.Start(buf, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidRate)

	// a later attempt retries the device
	fake.initErr = nil
	_, err = s.Start(buf, 0, 1)
	assert.NoError(t, err)
}

func TestSpeaker_PlaysBufferAndFinishes(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	s := newTestSpeaker(t, fake)

	v, err := s.Start(testBuffer(t, 8000, 1, 400, 0.5), 0, 1)
	require.NoError(t, err)

	out := fake.pull(t, 300)
	for i := 50; i < 250; i++ {
		assert.InDelta(t, 0.5, out[i][0], 1e-3, "left %d", i)
		assert.InDelta(t, 0.5, out[i][1], 1e-3, "right %d", i)
	}

	for range 4 {
		fake.pull(t, 300)
	}
	waitDone(t, v)
}

func TestSpeaker_DoneWaitsForDeviceBuffer(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		fake := &fakeBackend{}
		s := newTestSpeaker(t, fake, WithBufferDuration(100*time.Millisecond))

		v, err := s.Start(testBuffer(t, 8000, 1, 400, 0.5), 0, 1)
		require.NoError(t, err)

		// drain the voice and run its end callback
		for range 5 {
			fake.pull(t, 300)
		}
		synctest.Wait()
		select {
		case <-v.Done():
			t.Fatal("voice done while its last chunk is still buffered")
		default:
		}

		time.Sleep(49 * time.Millisecond)
		synctest.Wait()
		select {
		case <-v.Done():
			t.Fatal("voice done before half the buffer elapsed")
		default:
		}

		time.Sleep(time.Millisecond)
		synctest.Wait()
		select {
		case <-v.Done():
		default:
			t.Fatal("voice not done after half the buffer")
		}
	})
}

func TestSpeaker_StopIsImmediate(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		fake := &fakeBackend{}
		s := newTestSpeaker(t, fake, WithBufferDuration(time.Second))

		v, err := s.Start(testBuffer(t, 8000, 1, 8000, 0.5), 0, 1)
		require.NoError(t, err)

		v.Stop()
		synctest.Wait()
		select {
		case <-v.Done():
		default:
			t.Fatal("Stop did not close Done")
		}
	})
}

func TestSpeaker_StopAndMute(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	s := newTestSpeaker(t, fake)

	v, err := s.Start(testBuffer(t, 8000, 2, 8000, 0.25), 0, 1)
	require.NoError(t, err)

	s.SetMuted(true)
	assert.True(t, s.Muted())
	for _, f := range fake.pull(t, 200) {
		assert.Equal(t, [2]float64{}, f)
	}

	s.SetMuted(false)
	out := fake.pull(t, 200)
	assert.InDelta(t, 0.25, out[100][0], 1e-3)

	v.Stop()
	waitDone(t, v)
	for _, f := range fake.pull(t, 200) {
		assert.Equal(t, [2]float64{}, f)
	}
}

func TestSpeaker_LiveParams(t *testing.T) {
	t.Parallel()

	params := dsp.NewLiveParams(dsp.Params{Volume: 0, BassHz: dsp.MinCutoffHz, TrebleHz: dsp.MaxCutoffHz})
	fake := &fakeBackend{}
	s := newTestSpeaker(t, fake, WithParams(params), WithSampleRate(44100))

	buf := testBuffer(t, 44100, 1, 44100, 0)
	tone := buf.Channel(0)
	for i := range tone {
		tone[i] = float32(0.5 * math.Sin(2*math.Pi*1000*float64(i)/44100))
	}
	_, err := s.Start(buf, 0, 1)
	require.NoError(t, err)

	out := fake.pull(t, 256)
	assert.InDelta(t, 0, out[128][0], 1e-9)

	params.SetVolume(0.5)
	out = fake.pull(t, 4096)
	peak := 0.0
	for _, f := range out[2048:] {
		peak = max(peak, math.Abs(f[0]))
	}
	assert.InDelta(t, 0.25, peak, 0.02)
}

func TestSpeaker_Close(t *testing.T) {
	t.Parallel()

	fake := &fakeBackend{}
	s := newTestSpeaker(t, fake)
	buf := testBuffer(t, 8000, 1, 8000, 0)

	v1, err := s.Start(buf, 0, 1)
	require.NoError(t, err)
	v2, err := s.Start(buf, 0, 2)
	require.NoError(t, err)
	v2.SetRate(0.5)

	require.NoError(t, s.Close())
	waitDone(t, v1)
	waitDone(t, v2)
}

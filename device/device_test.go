// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/wavedeck/audio"
)

func testBuffer(t *testing.T, rate, channels, frames int, value float32) *audio.Buffer {
	t.Helper()

	buf, err := audio.NewBuffer(rate, channels, frames)
	require.NoError(t, err)
	for ch := range channels {
		for i := range buf.Channel(ch) {
			buf.Channel(ch)[i] = value
		}
	}
	return buf
}

func TestManualClock(t *testing.T) {
	t.Parallel()

	c := NewManualClock(10)
	assert.Equal(t, 10.0, c.Now())

	c.Advance(0.25)
	c.Advance(0.25)
	assert.InDelta(t, 10.5, c.Now(), 1e-12)

	c.Set(3)
	assert.Equal(t, 3.0, c.Now())
}

func TestSystemClock_Monotonic(t *testing.T) {
	t.Parallel()

	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	assert.GreaterOrEqual(t, a, 0.0)
	assert.GreaterOrEqual(t, b, a)
}

func TestMock_StartRecordsVoices(t *testing.T) {
	t.Parallel()

	m := NewMock()
	buf := testBuffer(t, 8000, 1, 800, 0)

	v1, err := m.Start(buf, 0.5, 1)
	require.NoError(t, err)
	v2, err := m.Start(buf, 0.25, 2)
	require.NoError(t, err)

	assert.NotEqual(t, v1.ID(), v2.ID())
	assert.Same(t, v2, m.Last())
	assert.Len(t, m.Voices(), 2)
	assert.Equal(t, 0.25, m.Last().Offset)
	assert.Equal(t, 2.0, m.Last().Rate())

	v1.SetRate(1.5)
	assert.Equal(t, []float64{1, 1.5}, m.Voices()[0].Rates())

	v1.Stop()
	v1.Stop()
	assert.True(t, m.Voices()[0].Stopped())
	assert.Equal(t, []*MockVoice{m.Last()}, m.Sounding())

	m.Last().Finish()
	assert.Empty(t, m.Sounding())
	assert.False(t, m.Last().Stopped(), "finishing is not stopping")

	select {
	case <-v2.Done():
	default:
		t.Fatal("Done() not closed after Finish")
	}
}

func TestMock_StartErrors(t *testing.T) {
	t.Parallel()

	m := NewMock()
	buf := testBuffer(t, 8000, 1, 10, 0)

	_, err := m.Start(nil, 0, 1)
	assert.ErrorIs(t, err, audio.ErrNoBuffer)

	_, err = m.Start(buf, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	boom := errors.New("no device")
	m.SetError(boom)
	_, err = m.Start(buf, 0, 1)
	assert.ErrorIs(t, err, ErrDevice)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, m.Voices())

	m.SetError(nil)
	_, err = m.Start(buf, 0, 1)
	assert.NoError(t, err)
}

func TestVoiceIDs_Unique(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := make(map[uint64]bool)
	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 100 {
				id := nextVoiceID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	assert.Len(t, seen, 800)
}

func TestNull(t *testing.T) {
	t.Parallel()

	var out Null
	buf := testBuffer(t, 8000, 1, 800, 0)

	_, err := out.Start(nil, 0, 1)
	assert.ErrorIs(t, err, audio.ErrNoBuffer)
	_, err = out.Start(buf, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidRate)

	v, err := out.Start(buf, 0.5, 2)
	require.NoError(t, err)
	v.SetRate(0.5)
	select {
	case <-v.Done():
		t.Fatal("voice finished before Stop")
	default:
	}

	v.Stop()
	v.Stop()
	<-v.Done()
}

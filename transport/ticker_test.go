// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ik5/wavedeck/device"
)

type countingTicker struct{ n atomic.Int64 }

func (c *countingTicker) Tick() float64 {
	c.n.Add(1)
	return 0
}

func TestRunTicker_Cadence(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		var c countingTicker
		err := RunTicker(ctx, &c, 16*time.Millisecond)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int64(6), c.n.Load())
	})
}

func TestRunTicker_DefaultInterval(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*DefaultTickInterval+time.Millisecond)
		defer cancel()

		var c countingTicker
		_ = RunTicker(ctx, &c, 0)
		assert.Equal(t, int64(10), c.n.Load())
	})
}

// With a real clock and the ticker driving loop-back, playback keeps
// cycling through the region.
func TestRunTicker_DrivesLoopBack(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		out := device.NewMock()
		e := New(out, WithLogger(zaptest.NewLogger(t)))
		defer e.Close()

		require.NoError(t, e.Load(silence(t, 10)))
		require.NoError(t, e.SetLoopRegion(0, 1))
		e.SetLooping(true)
		require.NoError(t, e.Play())

		ctx, cancel := context.WithTimeout(context.Background(), 3500*time.Millisecond)
		defer cancel()
		_ = RunTicker(ctx, e, DefaultTickInterval)

		assert.LessOrEqual(t, e.Position(), 1.0)
		assert.GreaterOrEqual(t, len(out.Voices()), 4)
	})
}

// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/device"
)

// Engine is the playback clock and transport. All methods are safe for
// concurrent use; voice completions arrive on their own goroutines and are
// serialized with the caller's operations.
type Engine struct {
	out   device.Output
	clock device.Clock
	log   *zap.Logger

	endTolerance float64
	loopLength   float64

	mu        sync.Mutex
	buf       *audio.Buffer
	duration  float64
	played    float64 // banked audio-time
	startAt   float64 // clock time the current segment began
	paused    bool
	rate      float64
	voice     device.Voice
	looping   bool
	region    audio.Region
	hasRegion bool
	closed    bool

	quit chan struct{}
	wg   sync.WaitGroup

	subsMu     sync.Mutex
	subs       []*Subscription
	subsClosed bool
}

// New returns a paused engine with no buffer, playing through out.
func New(out device.Output, opts ...Option) *Engine {
	e := &Engine{
		out:          out,
		log:          zap.NewNop(),
		endTolerance: DefaultEndTolerance,
		loopLength:   DefaultLoopLength,
		paused:       true,
		rate:         1,
		quit:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = device.NewSystemClock()
	}
	return e
}

// Load replaces the buffer. Any voice is stopped, the position returns to
// zero and the loop region is removed. The rate is kept.
func (e *Engine) Load(buf *audio.Buffer) error {
	if buf == nil {
		return audio.ErrNoBuffer
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}

	e.stopVoice()
	e.buf = buf
	e.duration = buf.Duration()
	e.played = 0
	e.paused = true
	e.looping = false
	e.hasRegion = false

	e.log.Debug("buffer loaded",
		zap.Float64("duration", e.duration),
		zap.Int("sample_rate", buf.SampleRate()),
		zap.Int("channels", buf.Channels()))
	e.emit(EventLoad)
	return nil
}

// Play resumes from the banked position. Playing at or past the end starts
// over from zero. It is a no-op while already playing.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.buf == nil {
		return audio.ErrNoBuffer
	}
	if !e.paused {
		return nil
	}

	if e.played >= e.duration {
		e.played = 0
	}
	if err := e.startVoice(e.clock.Now()); err != nil {
		return err
	}

	e.emit(EventPlay)
	return nil
}

// Pause banks the elapsed time and stops the voice. It is a no-op while
// already paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.paused {
		return
	}
	e.pauseAt(e.clock.Now())
	e.emit(EventPause)
}

// SetRate changes the playback rate. While playing, time elapsed so far is
// banked at the old rate and the voice changes rate in place.
func (e *Engine) SetRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if rate == e.rate {
		return nil
	}

	if !e.paused {
		e.bank(e.clock.Now())
		if e.voice != nil {
			e.voice.SetRate(rate)
		}
	}
	e.rate = rate

	e.log.Debug("rate changed", zap.Float64("rate", rate), zap.Float64("position", e.played))
	e.emit(EventRateChange)
	return nil
}

// Seek moves to t seconds, clamped to the buffer. While playing, the
// current segment is discarded and a new voice starts at t.
func (e *Engine) Seek(t float64) error {
	if math.IsNaN(t) {
		return fmt.Errorf("%w: %v", ErrInvalidPosition, t)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrClosed
	}
	if e.buf == nil {
		return audio.ErrNoBuffer
	}

	if err := e.seekTo(t, e.clock.Now()); err != nil {
		return err
	}
	e.emit(EventSeeking)
	return nil
}

// Tick applies loop-back and publishes the position. It returns the
// position after any loop-back.
func (e *Engine) Tick() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.buf == nil {
		return e.played
	}

	now := e.clock.Now()
	pos := e.positionAt(now)

	if !e.paused && e.looping && e.hasRegion && pos >= e.region.End {
		e.log.Debug("loop back",
			zap.Float64("from", pos),
			zap.Stringer("region", e.region))
		if err := e.seekTo(e.region.Start, now); err != nil {
			e.log.Warn("loop back failed", zap.Error(err))
			e.emit(EventPause)
		} else {
			e.emit(EventSeeking)
		}
		pos = e.positionAt(now)
	}

	e.emit(EventTimeUpdate)
	return pos
}

// Position is the current audio-time in seconds, never beyond the
// duration.
func (e *Engine) Position() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionAt(e.clock.Now())
}

func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.duration
}

func (e *Engine) Rate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rate
}

func (e *Engine) IsPaused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state()
}

// Buffer returns the loaded buffer, or nil.
func (e *Engine) Buffer() *audio.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Buffer:    e.buf,
		State:     e.state(),
		Position:  e.positionAt(e.clock.Now()),
		Duration:  e.duration,
		Rate:      e.rate,
		Looping:   e.looping,
		Region:    e.region,
		HasRegion: e.hasRegion,
	}
}

// SetLooping turns loop-back on or off without touching the region.
func (e *Engine) SetLooping(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.looping == on {
		return
	}
	e.looping = on
	e.emit(EventLoopChange)
}

func (e *Engine) Looping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.looping
}

// ToggleLoop flips looping. Turning it on creates a region from the current
// position spanning the default loop length when there is none; turning it
// off removes the region. It reports whether looping is now on.
func (e *Engine) ToggleLoop() (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.looping {
		e.looping = false
		e.hasRegion = false
		e.emit(EventLoopChange)
		return false, nil
	}

	if e.buf == nil {
		return false, audio.ErrNoBuffer
	}
	if !e.hasRegion {
		start := e.positionAt(e.clock.Now())
		end := min(start+e.loopLength, e.duration)
		if end <= start {
			// at the very end: loop the last stretch instead
			start = max(0, e.duration-e.loopLength)
			end = e.duration
		}
		region := audio.Region{Start: start, End: end}
		if err := region.Validate(e.duration); err != nil {
			return false, err
		}
		e.region, e.hasRegion = region, true
	}

	e.looping = true
	e.emit(EventLoopChange)
	return true, nil
}

// SetLoopRegion replaces the loop region. It must satisfy
// 0 <= start < end <= duration.
func (e *Engine) SetLoopRegion(start, end float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.buf == nil {
		return audio.ErrNoBuffer
	}
	region := audio.Region{Start: start, End: end}
	if err := region.Validate(e.duration); err != nil {
		return err
	}

	e.region, e.hasRegion = region, true
	e.emit(EventLoopChange)
	return nil
}

func (e *Engine) ClearLoopRegion() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasRegion {
		return
	}
	e.hasRegion = false
	e.emit(EventLoopChange)
}

// LoopRegion returns the loop region and whether one exists.
func (e *Engine) LoopRegion() (audio.Region, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.region, e.hasRegion
}

// Subscribe returns a new event subscription. It is closed by Close.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()

	sub := newSubscription()
	if e.subsClosed {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

// Publish forwards an event that did not originate in the transport, such
// as a volume change, to all subscribers.
func (e *Engine) Publish(ev Event) {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, sub := range e.subs {
		sub.send(ev)
	}
}

// Close stops playback, waits for voice watchers and closes all
// subscriptions.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	if !e.paused {
		e.bank(e.clock.Now())
		e.paused = true
	}
	e.stopVoice()
	e.closed = true
	close(e.quit)
	e.mu.Unlock()

	e.wg.Wait()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsClosed = true
	e.subsMu.Unlock()

	e.log.Debug("engine closed")
	return nil
}

func (e *Engine) state() State {
	if e.paused {
		return StatePaused
	}
	return StatePlaying
}

func (e *Engine) positionAt(now float64) float64 {
	if e.paused {
		return e.played
	}
	return min(e.played+(now-e.startAt)*e.rate, e.duration)
}

// bank folds the running segment into played at the current rate and
// starts a new segment at now.
func (e *Engine) bank(now float64) {
	e.played += (now - e.startAt) * e.rate
	e.startAt = now

	assertInvariant(e.played >= 0 && !math.IsNaN(e.played), "negative or NaN position after banking")
	e.played = max(0, min(e.played, e.duration))
}

func (e *Engine) pauseAt(now float64) {
	e.bank(now)
	e.stopVoice()
	e.paused = true
}

func (e *Engine) seekTo(t, now float64) error {
	t = max(0, min(t, e.duration))
	if e.paused {
		e.played = t
		return nil
	}

	e.stopVoice()
	e.played = t
	return e.startVoice(now)
}

// startVoice starts a voice at the banked position. On failure the engine
// is left paused.
func (e *Engine) startVoice(now float64) error {
	v, err := e.out.Start(e.buf, e.played, e.rate)
	if err != nil {
		e.paused = true
		if !errors.Is(err, device.ErrDevice) {
			err = fmt.Errorf("%w: %w", device.ErrDevice, err)
		}
		e.log.Warn("cannot start voice", zap.Float64("position", e.played), zap.Error(err))
		return err
	}

	e.voice = v
	e.startAt = now
	e.paused = false
	e.watch(v)

	e.log.Debug("segment started",
		zap.Uint64("voice", v.ID()),
		zap.Float64("position", e.played),
		zap.Float64("rate", e.rate))
	return nil
}

// stopVoice detaches the current voice before stopping it, so its
// completion is seen as stale.
func (e *Engine) stopVoice() {
	v := e.voice
	e.voice = nil
	if v != nil {
		v.Stop()
	}
}

func (e *Engine) watch(v device.Voice) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		select {
		case <-v.Done():
			e.voiceDone(v)
		case <-e.quit:
		}
	}()
}

func (e *Engine) voiceDone(v device.Voice) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.voice == nil || e.voice.ID() != v.ID() {
		e.log.Debug("ignoring voice completion",
			zap.Uint64("voice", v.ID()),
			zap.Error(ErrStaleCallback))
		return
	}

	now := e.clock.Now()
	end := e.played + (now-e.startAt)*e.rate
	if end < e.duration-e.endTolerance {
		e.log.Debug("segment ended early",
			zap.Uint64("voice", v.ID()),
			zap.Float64("position", end))
		return
	}

	e.pauseAt(now)
	e.played = e.duration
	e.log.Debug("track ended", zap.Float64("position", end))
	e.emit(EventPause)
	e.emit(EventEnded)
}

// emit must be called with e.mu held.
func (e *Engine) emit(kind EventKind) {
	e.Publish(Event{
		Kind:     kind,
		Position: e.positionAt(e.clock.Now()),
		Rate:     e.rate,
	})
}

// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"

	"github.com/ik5/wavedeck/audio"
	"github.com/ik5/wavedeck/dsp"
)

const (
	DefaultBufferDuration = 100 * time.Millisecond
	DefaultQuality        = 4
)

var _ Output = (*Speaker)(nil)

// backend is the slice of the beep speaker package Speaker relies on.
type backend struct {
	init   func(sr beep.SampleRate, bufferSize int) error
	play   func(s ...beep.Streamer)
	lock   func()
	unlock func()
	clear  func()
}

var speakerBackend = backend{
	init:   speaker.Init,
	play:   speaker.Play,
	lock:   speaker.Lock,
	unlock: speaker.Unlock,
	clear:  speaker.Clear,
}

// Speaker plays voices on the system audio device. The device is opened on
// the first Start, at the configured sample rate or, when none is set, at
// the rate of the first buffer played. Every voice runs through the live
// effects chain when one is attached.
type Speaker struct {
	mu         sync.Mutex
	be         backend
	log        *zap.Logger
	sampleRate beep.SampleRate
	bufferDur  time.Duration
	latency    time.Duration
	quality    int
	params     *dsp.LiveParams

	opened bool
	mixer  *beep.Mixer
	volume *effects.Volume
	muted  bool
	voices map[uint64]*speakerVoice
}

type SpeakerOption func(*Speaker)

// WithSampleRate fixes the device rate. Buffers at other rates are
// resampled on the fly.
func WithSampleRate(rate int) SpeakerOption {
	return func(s *Speaker) { s.sampleRate = beep.SampleRate(rate) }
}

func WithBufferDuration(d time.Duration) SpeakerOption {
	return func(s *Speaker) { s.bufferDur = d }
}

// WithQuality sets the beep resampling quality, clamped to [1, 64].
func WithQuality(q int) SpeakerOption {
	return func(s *Speaker) { s.quality = max(1, min(q, 64)) }
}

// WithParams attaches live effect parameters to every voice.
func WithParams(p *dsp.LiveParams) SpeakerOption {
	return func(s *Speaker) { s.params = p }
}

func WithSpeakerLogger(l *zap.Logger) SpeakerOption {
	return func(s *Speaker) { s.log = l }
}

func NewSpeaker(opts ...SpeakerOption) *Speaker {
	s := &Speaker{
		be:        speakerBackend,
		log:       zap.NewNop(),
		bufferDur: DefaultBufferDuration,
		quality:   DefaultQuality,
		voices:    make(map[uint64]*speakerVoice),
	}
	for _, opt := range opts {
		opt(s)
	}
	// beep fills the device in chunks of half the buffer, so a drained
	// voice is still audible for up to one chunk
	s.latency = s.bufferDur / 2
	return s
}

// SampleRate reports the device rate, or 0 before the device is opened.
func (s *Speaker) SampleRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		return 0
	}
	return int(s.sampleRate)
}

func (s *Speaker) open(bufRate int) error {
	if s.opened {
		return nil
	}
	if s.sampleRate <= 0 {
		s.sampleRate = beep.SampleRate(bufRate)
	}

	if err := s.be.init(s.sampleRate, s.sampleRate.N(s.bufferDur)); err != nil {
		return fmt.Errorf("%w: %w", ErrDevice, err)
	}

	s.mixer = &beep.Mixer{}
	s.volume = &effects.Volume{Streamer: s.mixer, Base: 2, Silent: s.muted}
	s.be.play(s.volume)
	s.opened = true

	s.log.Info("audio device opened",
		zap.Int("sample_rate", int(s.sampleRate)),
		zap.Duration("buffer", s.bufferDur))
	return nil
}

func (s *Speaker) Start(buf *audio.Buffer, offset, rate float64) (Voice, error) {
	if buf == nil {
		return nil, audio.ErrNoBuffer
	}
	if !(rate > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.open(buf.SampleRate()); err != nil {
		s.log.Warn("cannot open audio device", zap.Error(err))
		return nil, err
	}

	src := audio.NewStereoMixer(audio.NewBufferSource(buf, buf.FrameAt(offset), buf.Frames()))

	v := &speakerVoice{
		id:       nextVoiceID(),
		owner:    s,
		rateBase: float64(buf.SampleRate()) / float64(s.sampleRate),
		latency:  s.latency,
		done:     make(chan struct{}),
	}
	v.resampler = beep.ResampleRatio(s.quality, rate*v.rateBase, newSourceStreamer(src))

	var out beep.Streamer = v.resampler
	if s.params != nil {
		out = newChainStreamer(out, int(s.sampleRate), s.params)
	}
	v.ctrl = &beep.Ctrl{Streamer: out}

	s.voices[v.id] = v

	s.be.lock()
	s.mixer.Add(beep.Seq(v.ctrl, beep.Callback(v.drained)))
	s.be.unlock()

	s.log.Debug("voice started",
		zap.Uint64("voice", v.id),
		zap.Float64("offset", offset),
		zap.Float64("rate", rate))
	return v, nil
}

// SetMuted silences the device output without touching any gain setting.
func (s *Speaker) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.muted = muted
	if s.volume == nil {
		return
	}
	s.be.lock()
	s.volume.Silent = muted
	s.be.unlock()
}

func (s *Speaker) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Close stops all voices. The device itself stays open; beep allows a
// single initialization per process.
func (s *Speaker) Close() error {
	s.mu.Lock()
	voices := make([]*speakerVoice, 0, len(s.voices))
	for _, v := range s.voices {
		voices = append(voices, v)
	}
	s.mu.Unlock()

	for _, v := range voices {
		v.Stop()
	}
	return nil
}

func (s *Speaker) forget(id uint64) {
	s.mu.Lock()
	delete(s.voices, id)
	s.mu.Unlock()
}

type speakerVoice struct {
	id        uint64
	owner     *Speaker
	rateBase  float64 // buffer rate over device rate
	latency   time.Duration
	resampler *beep.Resampler
	ctrl      *beep.Ctrl
	done      chan struct{}
	once      sync.Once
}

func (v *speakerVoice) ID() uint64 { return v.id }

func (v *speakerVoice) SetRate(rate float64) {
	if !(rate > 0) {
		return
	}
	v.owner.be.lock()
	v.resampler.SetRatio(rate * v.rateBase)
	v.owner.be.unlock()
}

func (v *speakerVoice) Stop() {
	v.owner.be.lock()
	v.ctrl.Streamer = nil
	v.owner.be.unlock()
	v.finish()
}

// drained runs on the audio goroutine once the last sample was mixed. Done
// closes when that sample has left the device buffer.
func (v *speakerVoice) drained() {
	if v.latency <= 0 {
		v.finish()
		return
	}
	time.AfterFunc(v.latency, v.finish)
}

// finish closes Done. Stop calls it directly.
func (v *speakerVoice) finish() {
	v.once.Do(func() {
		close(v.done)
		go v.owner.forget(v.id)
	})
}

func (v *speakerVoice) Done() <-chan struct{} { return v.done }

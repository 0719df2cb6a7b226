// Package audio implements the playback backend on the beep speaker: each
// voice is a streamer chain over the shared sample buffer with its own
// resample ratio, loop region and gain, mixed by the speaker.
package audio

import (
	"errors"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/AnonymousChar42/otomad-online/playback"
)

// DefaultSampleRate is the engine's output rate when none is given.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrForeignBuffer reports a buffer that was not produced by this package.
var ErrForeignBuffer = errors.New("audio: buffer was not created by this engine")

// Engine owns the speaker and the host clock. It satisfies playback.Backend.
type Engine struct {
	sr    beep.SampleRate
	start time.Time
}

// NewEngine initializes the speaker at the given rate with a 100ms buffer.
func NewEngine(sr beep.SampleRate) (*Engine, error) {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Engine{sr: sr, start: time.Now()}, nil
}

// SampleRate returns the engine's output rate.
func (e *Engine) SampleRate() beep.SampleRate { return e.sr }

// Now is the monotonic host clock in seconds since the engine started.
func (e *Engine) Now() float64 { return time.Since(e.start).Seconds() }

// CreateVoice returns a fresh voice over the given sample buffer.
func (e *Engine) CreateVoice(buf playback.Buffer) (playback.Voice, error) {
	sb, ok := buf.(*SampleBuffer)
	if !ok {
		return nil, ErrForeignBuffer
	}
	return &voice{engine: e, buf: sb, rate: 1, gain: 1}, nil
}

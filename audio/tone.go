package audio

import (
	"errors"
	"math"
	"time"

	"github.com/faiface/beep"
)

type sineGenerator struct {
	dt float64
	t  float64
}

func sineTone(sr beep.SampleRate, freq float64) (beep.Streamer, error) {
	dt := freq / float64(sr)

	if dt >= 1.0/2.0 {
		return nil, errors.New("audio: tone frequency must be below half the sample rate")
	}

	return &sineGenerator{dt, 0}, nil
}

func (g *sineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := math.Sin(g.t * 2.0 * math.Pi)
		samples[i][0] = v
		samples[i][1] = v
		_, g.t = math.Modf(g.t + g.dt)
	}

	return len(samples), true
}

func (*sineGenerator) Err() error {
	return nil
}

// NewToneBuffer renders a sine tone into a sample buffer, a stand-in sample
// for when no recording is at hand.
func NewToneBuffer(sr beep.SampleRate, freq float64, dur time.Duration) (*SampleBuffer, error) {
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	g, err := sineTone(sr, freq)
	if err != nil {
		return nil, err
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sr.N(dur), g))
	return &SampleBuffer{samples: buf, sr: sr}, nil
}

// ToneBuffer renders a tone at the engine's own rate.
func (e *Engine) ToneBuffer(freq float64, dur time.Duration) (*SampleBuffer, error) {
	return NewToneBuffer(e.sr, freq, dur)
}

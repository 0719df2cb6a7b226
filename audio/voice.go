package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

type voice struct {
	engine *Engine
	buf    *SampleBuffer

	rate      float64
	gain      float64
	loopStart float64
	loopEnd   float64
}

func (v *voice) SetPlaybackRate(ratio float64) {
	if ratio > 0 {
		v.rate = ratio
	}
}

func (v *voice) SetLoop(start, end float64) {
	v.loopStart, v.loopEnd = start, end
}

func (v *voice) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	v.gain = gain
}

// Start builds the voice's streamer chain and hands it to the speaker:
// sample source (looped or plain) at the requested offset, resampled for
// pitch, scaled for gain, cut to duration, followed by the completion
// callback.
func (v *voice) Start(hostDelay, sampleOffset, duration float64, onComplete func()) {
	sr := v.engine.sr
	raw := v.buf.samples

	offset := clampSamples(sr.N(secondsToDuration(sampleOffset)), raw.Len())

	loopStart := clampSamples(sr.N(secondsToDuration(v.loopStart)), raw.Len())
	loopEnd := clampSamples(sr.N(secondsToDuration(v.loopEnd)), raw.Len())

	var src beep.Streamer
	if loopEnd > loopStart {
		src = newLoopStreamer(raw, offset, loopStart, loopEnd)
	} else {
		src = raw.Streamer(offset, raw.Len())
	}

	if v.rate != 1 {
		src = beep.ResampleRatio(resampleQuality, v.rate, src)
	}
	src = &amplitude{streamer: src, amplitude: v.gain}
	src = beep.Take(sr.N(secondsToDuration(duration)), src)

	parts := make([]beep.Streamer, 0, 3)
	if hostDelay > 0 {
		parts = append(parts, beep.Silence(sr.N(secondsToDuration(hostDelay))))
	}
	parts = append(parts, src)
	if onComplete != nil {
		parts = append(parts, beep.Callback(onComplete))
	}

	speaker.Play(beep.Seq(parts...))
}

const resampleQuality = 4

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func clampSamples(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// amplitude scales the wrapped streamer by a constant gain.
type amplitude struct {
	streamer  beep.Streamer
	amplitude float64
}

func (a *amplitude) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = a.streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= a.amplitude
		samples[i][1] *= a.amplitude
	}
	return n, ok
}

func (a *amplitude) Err() error {
	return a.streamer.Err()
}

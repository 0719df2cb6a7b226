package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// ErrUnsupportedFormat reports a sample file extension the engine cannot
// decode.
var ErrUnsupportedFormat = errors.New("audio: unsupported sample format")

// ErrDecodeFailed reports that the sample file could not be decoded.
var ErrDecodeFailed = errors.New("audio: sample decode failed")

// SampleBuffer is a fully decoded sample at the engine's rate, the buffer
// handle voices stream from.
type SampleBuffer struct {
	samples *beep.Buffer
	sr      beep.SampleRate
}

// Duration is the buffer's length in seconds.
func (b *SampleBuffer) Duration() float64 {
	return float64(b.samples.Len()) / float64(b.sr)
}

// Len is the buffer's length in samples.
func (b *SampleBuffer) Len() int { return b.samples.Len() }

// LoadSample decodes a wav or mp3 file into a buffer at the engine's rate.
func (e *Engine) LoadSample(path string) (*SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeFailed, path, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != e.sr {
		src = beep.Resample(resampleQuality, format.SampleRate, e.sr, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: e.sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return &SampleBuffer{samples: buf, sr: e.sr}, nil
}

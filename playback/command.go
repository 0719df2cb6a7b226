// Package playback schedules and dispatches note timelines against an audio
// backend: every note becomes one independently pitch-shifted, loop-corrected
// voice of a single sample, fired at its position in the timeline.
package playback

import "math"

// middleC is the MIDI pitch at which a sample with no authored base pitch is
// assumed to play at its natural rate.
const middleC = 60

// Sample describes how the source sample should be performed: where playback
// enters the buffer, the optional loop region, and the pitch the recording
// was made at.
type Sample struct {
	// BufferSeconds is the decoded buffer's length.
	BufferSeconds float64

	// Offset is where each voice enters the buffer, in seconds.
	Offset float64

	// LoopStart and LoopEnd bound the loop region; equal values mean no loop.
	LoopStart float64
	LoopEnd   float64

	// BasePitch is the MIDI pitch of the recorded sample; 0 means middle C.
	BasePitch int
}

func (s Sample) basePitch() int {
	if s.BasePitch == 0 {
		return middleC
	}
	return s.BasePitch
}

// Command is one voice-start order: when to fire relative to the start of
// dispatch, where to enter the sample, how fast, how loud, for how long.
// Commands are owned by the session that scheduled them.
type Command struct {
	StartOffset  float64
	SampleOffset float64
	LoopStart    float64
	LoopEnd      float64
	Rate         float64
	Velocity     uint8
	Duration     float64
}

// Rate returns the playback-rate ratio that shifts the sample from base up
// or down to pitch: one octave per twelve semitones.
func Rate(pitch, base int) float64 {
	return math.Pow(2, float64(pitch-base)/12)
}

package playback

// Buffer is an opaque handle to a decoded audio sample buffer.
type Buffer interface {
	// Duration is the buffer's length in seconds.
	Duration() float64
}

// Voice is one independently playing instance of the sample buffer. The
// dispatcher configures rate, loop and gain before calling Start; the backend
// invokes onComplete exactly once when the voice finishes.
type Voice interface {
	SetPlaybackRate(ratio float64)
	SetLoop(start, end float64)
	SetGain(gain float64)
	Start(hostDelay, sampleOffset, duration float64, onComplete func())
}

// Backend is the narrow contract the dispatcher drives: voice creation plus a
// monotonic host clock.
type Backend interface {
	CreateVoice(buf Buffer) (Voice, error)

	// Now is the host clock reading in seconds. Only differences matter.
	Now() float64
}

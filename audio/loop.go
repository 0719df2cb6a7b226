package audio

import "github.com/faiface/beep"

// loopStreamer plays a buffer from an initial offset and, whenever the loop
// end is reached, jumps back to the loop start. It never drains on its own;
// the caller bounds it with beep.Take.
type loopStreamer struct {
	buf       *beep.Buffer
	seg       beep.StreamSeeker
	loopStart int
	loopEnd   int
}

// newLoopStreamer assumes loopStart < loopEnd, both clamped to the buffer.
func newLoopStreamer(buf *beep.Buffer, offset, loopStart, loopEnd int) *loopStreamer {
	l := &loopStreamer{buf: buf, loopStart: loopStart, loopEnd: loopEnd}
	l.seg = buf.Streamer(offset, l.segmentEnd(offset))
	return l
}

// segmentEnd bounds a segment at the loop end, except when the position
// already sits past it, in which case the segment runs to the buffer's end
// before wrapping.
func (l *loopStreamer) segmentEnd(pos int) int {
	if pos < l.loopEnd {
		return l.loopEnd
	}
	return l.buf.Len()
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		sn, sok := l.seg.Stream(samples[n:])
		n += sn
		if !sok {
			l.seg = l.buf.Streamer(l.loopStart, l.segmentEnd(l.loopStart))
		}
	}
	return n, true
}

func (l *loopStreamer) Err() error {
	return l.seg.Err()
}

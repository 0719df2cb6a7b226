package midi

const (
	// DefaultTempo is used when a file carries no tempo meta event anywhere:
	// 500000 µs per beat, i.e. 120 BPM.
	DefaultTempo = 500000

	// DefaultTicksPerBeat is used when the header's time division is absent
	// or in SMPTE format.
	DefaultTicksPerBeat = 48
)

// Note is one closed note: absolute start and end ticks, pitch, velocity and
// channel. End is always greater than Start; the extractor never emits
// unclosed notes.
type Note struct {
	Start    int64
	End      int64
	Pitch    uint8
	Velocity uint8
	Channel  uint8
}

// Track holds one channel's time-ordered notes together with the musical
// metadata shared by every track of the file. Tracks are immutable after
// extraction, except for Selected which belongs to the caller.
type Track struct {
	Name  string
	Notes []Note

	// EndTime is the absolute tick of the end-of-track meta event, -1 if the
	// track had none.
	EndTime int64

	// Selected marks the track for playback. Extraction sets it true.
	Selected bool

	// Tempo is microseconds per beat; 0 until resolved across the file.
	Tempo int

	TicksPerBeat int
}

// TickDuration returns the real-time length of one tick in seconds.
func (t *Track) TickDuration() float64 {
	tempo := t.Tempo
	if tempo == 0 {
		tempo = DefaultTempo
	}
	return float64(tempo) / float64(t.TicksPerBeat) / 1e6
}

func (t *Track) setTimeDivision(div int) {
	if div > 0 {
		t.TicksPerBeat = div
	}
}

// Package midi turns standard MIDI files into note timelines: time-ordered
// notes with absolute tick positions, grouped into per-channel tracks and
// annotated with the timing constants playback needs.
package midi

// EventKind discriminates the decoded events the extractor cares about.
// The values match the raw MIDI status nibbles / meta marker.
type EventKind uint8

const (
	NoteOff EventKind = 8
	NoteOn  EventKind = 9
	Meta    EventKind = 0xFF
)

// MetaKind identifies the meta events the extractor reads.
type MetaKind uint8

const (
	MetaTrackName  MetaKind = 3
	MetaEndOfTrack MetaKind = 47
	MetaTempo      MetaKind = 81
)

// RawEvent is one decoded MIDI event. DeltaTicks is relative to the previous
// event of the same track. Only the fields relevant to the event's Kind are
// populated.
type RawEvent struct {
	DeltaTicks uint32
	Kind       EventKind
	Meta       MetaKind

	Channel  uint8
	Pitch    uint8
	Velocity uint8

	Text  string // MetaTrackName
	Tempo int    // MetaTempo, microseconds per beat
}

// RawTrack is one track's ordered event list.
type RawTrack struct {
	Events []RawEvent
}

// File is a decoded MIDI file: the header's time division plus every track's
// event list, ready for note extraction.
type File struct {
	TimeDivision int
	Tracks       []RawTrack
}

package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrInvalidFormat reports that the input is not a readable standard MIDI file.
var ErrInvalidFormat = errors.New("midi: invalid file format")

// Decode parses standard MIDI file bytes into a File. Events other than
// note-on, note-off and the meta events the extractor reads are dropped, with
// their delta time folded into the following event so absolute positions
// survive.
func Decode(data []byte) (*File, error) {
	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	f := &File{}
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		f.TimeDivision = int(mt)
	}

	for _, tr := range s.Tracks {
		var raw RawTrack
		var carry uint32
		for _, ev := range tr {
			delta := ev.Delta + carry
			e, ok := convertMessage(ev.Message)
			if !ok {
				carry = delta
				continue
			}
			carry = 0
			e.DeltaTicks = delta
			raw.Events = append(raw.Events, e)
		}
		f.Tracks = append(f.Tracks, raw)
	}

	return f, nil
}

func convertMessage(msg smf.Message) (RawEvent, bool) {
	var (
		ch, key, vel uint8
		bpm          float64
		text         string
	)

	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		return RawEvent{Kind: NoteOn, Channel: ch, Pitch: key, Velocity: vel}, true
	case msg.GetNoteOff(&ch, &key, &vel):
		return RawEvent{Kind: NoteOff, Channel: ch, Pitch: key, Velocity: vel}, true
	case msg.GetMetaTempo(&bpm):
		if bpm <= 0 {
			return RawEvent{}, false
		}
		return RawEvent{Kind: Meta, Meta: MetaTempo, Tempo: int(math.Round(60e6 / bpm))}, true
	case msg.GetMetaTrackName(&text):
		return RawEvent{Kind: Meta, Meta: MetaTrackName, Text: text}, true
	case msg.Is(smf.MetaEndOfTrackMsg):
		return RawEvent{Kind: Meta, Meta: MetaEndOfTrack}, true
	}
	return RawEvent{}, false
}

package midi

import "sort"

// Extract converts a decoded file into playable tracks: one walk per input
// track pairing note-ons with note-offs, then the first nonzero tempo found
// is broadcast to tracks lacking their own, and finally each track is split
// into one track per channel.
func Extract(f *File) []*Track {
	tracks := make([]*Track, 0, len(f.Tracks))
	for _, raw := range f.Tracks {
		tracks = append(tracks, extractTrack(raw, f.TimeDivision))
	}

	var tempo int
	for _, t := range tracks {
		if t.Tempo != 0 {
			tempo = t.Tempo
			break
		}
	}
	if tempo != 0 {
		for _, t := range tracks {
			if t.Tempo == 0 {
				t.Tempo = tempo
			}
		}
	}

	var out []*Track
	for _, t := range tracks {
		out = append(out, SplitByChannel(t)...)
	}
	return out
}

// extractTrack walks one track's events accumulating absolute tick time.
// Open notes are kept on a per-pitch stack; a note-off (or note-on with zero
// velocity) closes the most recently opened note of that pitch. Unmatched
// note-offs are ignored and notes never closed are discarded.
func extractTrack(raw RawTrack, div int) *Track {
	t := &Track{EndTime: -1, Selected: true, TicksPerBeat: DefaultTicksPerBeat}
	t.setTimeDivision(div)

	pending := make(map[uint8][]*Note)
	var opened []*Note
	var cur int64

	for _, ev := range raw.Events {
		cur += int64(ev.DeltaTicks)

		switch ev.Kind {
		case Meta:
			switch ev.Meta {
			case MetaTrackName:
				t.Name = ev.Text
			case MetaTempo:
				t.Tempo = ev.Tempo
			case MetaEndOfTrack:
				t.EndTime = cur
			}

		case NoteOn, NoteOff:
			if ev.Kind == NoteOn && ev.Velocity > 0 {
				n := &Note{Start: cur, End: -1, Pitch: ev.Pitch, Velocity: ev.Velocity, Channel: ev.Channel}
				pending[ev.Pitch] = append(pending[ev.Pitch], n)
				opened = append(opened, n)
				continue
			}
			stack := pending[ev.Pitch]
			if len(stack) == 0 {
				continue
			}
			stack[len(stack)-1].End = cur
			pending[ev.Pitch] = stack[:len(stack)-1]
		}
	}

	notes := make([]Note, 0, len(opened))
	for _, n := range opened {
		if n.End > n.Start {
			notes = append(notes, *n)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Start != notes[j].Start {
			return notes[i].Start < notes[j].Start
		}
		return notes[i].End > notes[j].End
	})
	t.Notes = notes
	return t
}

// SplitByChannel partitions a track's notes by channel, in first-seen channel
// order. Each output track copies the source's metadata; a track whose notes
// sit on a single channel yields exactly one track, and a track without notes
// yields none.
func SplitByChannel(t *Track) []*Track {
	var order []uint8
	groups := make(map[uint8][]Note)
	for _, n := range t.Notes {
		if _, ok := groups[n.Channel]; !ok {
			order = append(order, n.Channel)
		}
		groups[n.Channel] = append(groups[n.Channel], n)
	}

	out := make([]*Track, 0, len(order))
	for _, ch := range order {
		out = append(out, &Track{
			Name:         t.Name,
			Notes:        groups[ch],
			EndTime:      t.EndTime,
			Selected:     t.Selected,
			Tempo:        t.Tempo,
			TicksPerBeat: t.TicksPerBeat,
		})
	}
	return out
}

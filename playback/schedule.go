package playback

import (
	"sort"

	"github.com/AnonymousChar42/otomad-online/midi"
)

// Schedule turns a resolved track set into the ordered list of voice-start
// commands for one playback session. seekFraction positions the session
// inside the timeline: notes whose window contains the seek point fire
// immediately with their sample offset advanced by the elapsed part of the
// note, notes already fully over are dropped, and everything else fires
// relative to the seek point. Scheduling is pure; identical inputs yield
// identical command lists.
func Schedule(tracks []*midi.Track, tl midi.Timeline, sample Sample, seekFraction float64) []Command {
	if seekFraction >= 1 || seekFraction < 0 {
		seekFraction = 0
	}
	seek := seekFraction * tl.TotalDurationMs / 1e3
	tick := tl.TickDurationMs / 1e3

	var notes []midi.Note
	for _, t := range tracks {
		if t.Selected {
			notes = append(notes, t.Notes...)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Start < notes[j].Start
	})

	cmds := make([]Command, 0, len(notes))
	for _, n := range notes {
		start := float64(n.Start) * tick
		end := float64(n.End) * tick

		c := Command{
			Rate:      Rate(int(n.Pitch), sample.basePitch()),
			Velocity:  n.Velocity,
			LoopStart: sample.LoopStart,
			LoopEnd:   sample.LoopEnd,
		}
		if seek > start && seek < end {
			// Already sounding at the seek point: fire now, entering the
			// sample at nominal (unshifted) time.
			into := seek - start
			c.StartOffset = 0
			c.SampleOffset = sample.Offset + into
			c.Duration = (end - start) - into
		} else {
			c.StartOffset = start - seek
			c.SampleOffset = sample.Offset
			c.Duration = end - start
		}

		fixStartEnd(&c)
		if c.StartOffset < 0 {
			continue
		}
		cmds = append(cmds, c)
	}
	return cmds
}

// fixStartEnd disables the loop for commands whose playback window ends
// before the loop region is ever reached; looping such a voice would produce
// silence instead of the sample's tail.
func fixStartEnd(c *Command) {
	if c.LoopStart == c.LoopEnd {
		return
	}
	if c.Duration != 0 && c.Duration < c.LoopStart-c.SampleOffset {
		c.LoopStart, c.LoopEnd = 0, 0
	}
}

package midi

import "errors"

// ErrEmptyTimeline reports that extraction produced no notes, so there is
// nothing to play.
var ErrEmptyTimeline = errors.New("midi: no notes in any track")

// Timeline holds the timing constants shared by every track of one file.
type Timeline struct {
	// TickDurationMs is the real-time length of one tick in milliseconds.
	TickDurationMs float64

	// TotalDurationMs is the end of the last note, in milliseconds.
	TotalDurationMs float64
}

// Resolve computes the timeline for a resolved track set. All tracks of one
// file share tempo and time division after extraction, so the first track's
// tick duration stands for all of them.
func Resolve(tracks []*Track) (Timeline, error) {
	hasNotes := false
	for _, t := range tracks {
		if len(t.Notes) > 0 {
			hasNotes = true
			break
		}
	}
	if !hasNotes {
		return Timeline{}, ErrEmptyTimeline
	}

	tick := tracks[0].TickDuration() * 1e3
	var maxEnd int64
	for _, t := range tracks {
		for _, n := range t.Notes {
			if n.End > maxEnd {
				maxEnd = n.End
			}
		}
	}

	return Timeline{
		TickDurationMs:  tick,
		TotalDurationMs: float64(maxEnd) * tick,
	}, nil
}

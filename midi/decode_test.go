package midi

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeSMF(t *testing.T, ticks smf.MetricTicks, tracks ...smf.Track) []byte {
	t.Helper()
	s := smf.New()
	s.TimeFormat = ticks
	for _, tr := range tracks {
		require.NoError(t, s.Add(tr))
	}
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a midi file"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDecodeSingleTrack(t *testing.T) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("lead"))
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(3, 60, 100))
	tr.Add(48, gomidi.NoteOff(3, 60))
	tr.Close(12)

	f, err := Decode(writeSMF(t, smf.MetricTicks(48), tr))
	require.NoError(t, err)

	assert.Equal(t, 48, f.TimeDivision)
	require.Len(t, f.Tracks, 1)

	evs := f.Tracks[0].Events
	require.Len(t, evs, 5)
	assert.Equal(t, MetaTrackName, evs[0].Meta)
	assert.Equal(t, "lead", evs[0].Text)
	assert.Equal(t, MetaTempo, evs[1].Meta)
	assert.Equal(t, 500000, evs[1].Tempo)

	assert.Equal(t, NoteOn, evs[2].Kind)
	assert.Equal(t, uint8(3), evs[2].Channel)
	assert.Equal(t, uint8(60), evs[2].Pitch)
	assert.Equal(t, uint8(100), evs[2].Velocity)

	assert.Equal(t, NoteOff, evs[3].Kind)
	assert.Equal(t, uint32(48), evs[3].DeltaTicks)

	assert.Equal(t, MetaEndOfTrack, evs[4].Meta)
	assert.Equal(t, uint32(12), evs[4].DeltaTicks)
}

func TestDecodeFoldsDroppedEventDeltas(t *testing.T) {
	var tr smf.Track
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(24, gomidi.ProgramChange(0, 5)) // dropped, delta must carry
	tr.Add(24, gomidi.NoteOff(0, 60))
	tr.Close(0)

	f, err := Decode(writeSMF(t, smf.MetricTicks(96), tr))
	require.NoError(t, err)

	evs := f.Tracks[0].Events
	require.Len(t, evs, 3)
	assert.Equal(t, NoteOn, evs[0].Kind)
	assert.Equal(t, NoteOff, evs[1].Kind)
	assert.Equal(t, uint32(48), evs[1].DeltaTicks, "dropped event's delta folds into the next")
}

func TestDecodeExtractPipeline(t *testing.T) {
	var tempoTrack smf.Track
	tempoTrack.Add(0, smf.MetaTempo(100)) // 600000 µs per beat
	tempoTrack.Close(0)

	var notes smf.Track
	notes.Add(0, gomidi.NoteOn(0, 60, 100))
	notes.Add(0, gomidi.NoteOn(9, 35, 90))
	notes.Add(48, gomidi.NoteOff(0, 60))
	notes.Add(0, gomidi.NoteOff(9, 35))
	notes.Close(0)

	f, err := Decode(writeSMF(t, smf.MetricTicks(48), tempoTrack, notes))
	require.NoError(t, err)

	tracks := Extract(f)
	require.Len(t, tracks, 2, "one track per channel, tempo-only track dropped")
	for _, tr := range tracks {
		assert.Equal(t, 600000, tr.Tempo)
		assert.Equal(t, 48, tr.TicksPerBeat)
		require.Len(t, tr.Notes, 1)
		assert.Equal(t, int64(48), tr.Notes[0].End)
	}
	assert.Equal(t, uint8(0), tracks[0].Notes[0].Channel)
	assert.Equal(t, uint8(9), tracks[1].Notes[0].Channel)
}

package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/AnonymousChar42/otomad-online/playback"
)

func writeTestMidi(t *testing.T) string {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(48)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("melody"))
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(48, midi.NoteOff(0, 60))
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	path := filepath.Join(t.TempDir(), "melody.mid")
	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = s.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return path
}

func TestMidiFileInit(t *testing.T) {
	f := NewMidiFile(writeTestMidi(t))
	require.NoError(t, f.Init())
	require.Len(t, f.Tracks, 1)
	assert.Equal(t, "melody", f.Tracks[0].Name)
	require.Len(t, f.Tracks[0].Notes, 1)
	assert.Equal(t, uint8(60), f.Tracks[0].Notes[0].Pitch)

	// Init caches; a second call must not re-read the file.
	tracks := f.Tracks
	require.NoError(t, os.Remove(f.Path))
	require.NoError(t, f.Init())
	assert.Equal(t, tracks, f.Tracks)
}

func TestMidiFileInitMissingFile(t *testing.T) {
	f := NewMidiFile(filepath.Join(t.TempDir(), "absent.mid"))
	assert.Error(t, f.Init())
}

func TestFileInfoLabel(t *testing.T) {
	withName := FileInfo{Name: "My Song", Path: "/tmp/upload-1234.mid"}
	assert.Equal(t, "My Song", withName.Label())

	bare := FileInfo{Path: "/tmp/upload-1234.mid"}
	assert.Equal(t, "upload-1234.mid", bare.Label())
}

func TestSoundFileSample(t *testing.T) {
	f := NewSoundFile("/tmp/sample.wav")
	f.Offset = 0.025
	f.LoopStart = 0.379
	f.LoopEnd = 0.396
	f.BasePitch = 69

	assert.Equal(t, playback.Sample{
		BufferSeconds: 1.5,
		Offset:        0.025,
		LoopStart:     0.379,
		LoopEnd:       0.396,
		BasePitch:     69,
	}, f.Sample(1.5))
}

func TestLibraryAddRemove(t *testing.T) {
	var lib Library
	a := NewSoundFile("a.wav")
	b := NewSoundFile("b.wav")
	lib.Add(a)
	lib.Add(b)
	require.Len(t, lib.Items, 2)

	lib.Remove(a)
	require.Len(t, lib.Items, 1)
	assert.Same(t, b, lib.Items[0].(*SoundFile))

	// Removing an absent item is a no-op.
	lib.Remove(a)
	assert.Len(t, lib.Items, 1)
}

func TestItemIDsAreDistinct(t *testing.T) {
	a := NewMidiFile("a.mid")
	b := NewSoundFile("b.wav")
	c := NewImageFile("c.png")
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, b.ID, c.ID)
}

func TestConfigInit(t *testing.T) {
	c := NewConfig("take one")
	assert.ErrorIs(t, c.Init(), ErrNoMidi)

	c.Midi = NewMidiFile(writeTestMidi(t))
	require.NoError(t, c.Init())
	assert.NotEmpty(t, c.Midi.Tracks)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindMidi, NewMidiFile("a.mid").Kind())
	assert.Equal(t, KindSound, NewSoundFile("b.wav").Kind())
	assert.Equal(t, KindImage, NewImageFile("c.png").Kind())
}

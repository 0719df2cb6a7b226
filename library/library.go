// Package library models the user's file collection: MIDI files, image
// files and pitched sound samples, plus the configurations pairing them for
// playback. Persistence of uploads lives outside this package; items load
// from local paths and cache their decoded form.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/AnonymousChar42/otomad-online/midi"
	"github.com/AnonymousChar42/otomad-online/playback"
)

// Kind tags a file item by what it holds.
type Kind int

const (
	KindMidi Kind = iota + 1
	KindImage
	KindSound
)

// ErrNoMidi reports a configuration with no MIDI file attached.
var ErrNoMidi = errors.New("library: configuration has no MIDI file")

var lastID uint64

func nextID() string {
	return strconv.FormatUint(atomic.AddUint64(&lastID, 1), 10)
}

// FileInfo is the part every item shares.
type FileInfo struct {
	ID   string
	Name string
	Path string
}

// Item is any file the library holds.
type Item interface {
	Kind() Kind
	Label() string
}

func (f FileInfo) Label() string {
	if f.Name != "" {
		return f.Name
	}
	return filepath.Base(f.Path)
}

// MidiFile is a MIDI file item; Init decodes it into tracks once and caches
// them.
type MidiFile struct {
	FileInfo
	Tracks []*midi.Track
}

// NewMidiFile returns an item for the file at path.
func NewMidiFile(path string) *MidiFile {
	return &MidiFile{FileInfo: FileInfo{ID: nextID(), Path: path}}
}

func (f *MidiFile) Kind() Kind { return KindMidi }

// Init extracts the file's tracks. Repeated calls reuse the first result.
func (f *MidiFile) Init() error {
	if f.Tracks != nil {
		return nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("library: read %s: %w", f.Path, err)
	}
	decoded, err := midi.Decode(data)
	if err != nil {
		return err
	}
	f.Tracks = midi.Extract(decoded)
	return nil
}

// SoundFile is a pitched sample item: the file plus how playback should
// enter and loop it.
type SoundFile struct {
	FileInfo

	// Offset is where voices enter the sample, in seconds.
	Offset float64

	// LoopStart and LoopEnd bound the loop region; equal values disable it.
	LoopStart float64
	LoopEnd   float64

	// BasePitch is the MIDI pitch of the recording; 0 means middle C.
	BasePitch int
}

// NewSoundFile returns an item for the sample at path.
func NewSoundFile(path string) *SoundFile {
	return &SoundFile{FileInfo: FileInfo{ID: nextID(), Path: path}}
}

func (f *SoundFile) Kind() Kind { return KindSound }

// Sample builds the playback descriptor for this sound over a decoded buffer
// of the given length.
func (f *SoundFile) Sample(bufferSeconds float64) playback.Sample {
	return playback.Sample{
		BufferSeconds: bufferSeconds,
		Offset:        f.Offset,
		LoopStart:     f.LoopStart,
		LoopEnd:       f.LoopEnd,
		BasePitch:     f.BasePitch,
	}
}

// ImageFile is a still image item; decoding it is the UI's business.
type ImageFile struct {
	FileInfo
}

// NewImageFile returns an item for the image at path.
func NewImageFile(path string) *ImageFile {
	return &ImageFile{FileInfo: FileInfo{ID: nextID(), Path: path}}
}

func (f *ImageFile) Kind() Kind { return KindImage }

// Library groups items of one kind.
type Library struct {
	Items []Item
}

// Add appends an item.
func (l *Library) Add(item Item) {
	l.Items = append(l.Items, item)
}

// Remove drops the first occurrence of item.
func (l *Library) Remove(item Item) {
	for i, it := range l.Items {
		if it == item {
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return
		}
	}
}

// Config pairs a MIDI file with the sample and image performing it.
type Config struct {
	ID    string
	Name  string
	Midi  *MidiFile
	Sound *SoundFile
	Image *ImageFile
}

// NewConfig returns a named configuration.
func NewConfig(name string) *Config {
	return &Config{ID: nextID(), Name: name}
}

// Init resolves the configuration's MIDI file into tracks.
func (c *Config) Init() error {
	if c.Midi == nil {
		return ErrNoMidi
	}
	return c.Midi.Init()
}

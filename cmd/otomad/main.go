package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/AnonymousChar42/otomad-online/audio"
	"github.com/AnonymousChar42/otomad-online/library"
	"github.com/AnonymousChar42/otomad-online/midi"
	"github.com/AnonymousChar42/otomad-online/playback"
)

var (
	midiFlag   = flag.String("midi", "", "path to the MIDI file to perform")
	sampleFlag = flag.String("sample", "", "path to the wav/mp3 sample; empty plays a sine tone")
	offsetFlag = flag.Float64("offset", 0, "sample offset in seconds")
	loopStart  = flag.Float64("loop-start", 0, "loop region start in seconds")
	loopEnd    = flag.Float64("loop-end", 0, "loop region end in seconds, equal to start disables the loop")
	basePitch  = flag.Int("base-pitch", 60, "MIDI pitch the sample was recorded at")
	seekFlag   = flag.Float64("seek", 0, "start position as a fraction of the timeline, in [0,1)")
	debugFlag  = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -midi <file> [-sample <file>]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *midiFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *debugFlag {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	engine, err := audio.NewEngine(audio.DefaultSampleRate)
	if err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	item := library.NewMidiFile(*midiFlag)
	if err := item.Init(); err != nil {
		return err
	}

	timeline, err := midi.Resolve(item.Tracks)
	if err != nil {
		return err
	}
	logger.Info("midi extracted",
		zap.String("file", item.Label()),
		zap.Int("tracks", len(item.Tracks)),
		zap.Float64("durationMs", timeline.TotalDurationMs),
	)

	var buf *audio.SampleBuffer
	if *sampleFlag != "" {
		buf, err = engine.LoadSample(*sampleFlag)
	} else {
		// Middle C sine so the player works without a sample on hand.
		buf, err = engine.ToneBuffer(261.63, time.Second)
	}
	if err != nil {
		return err
	}

	sample := playback.Sample{
		BufferSeconds: buf.Duration(),
		Offset:        *offsetFlag,
		LoopStart:     *loopStart,
		LoopEnd:       *loopEnd,
		BasePitch:     *basePitch,
	}

	player := playback.NewPlayer(engine, playback.NewFrameTicker(playback.DefaultTickInterval), playback.WithLogger(logger))
	if err := player.Play(item.Tracks, sample, buf, *seekFlag); err != nil {
		return err
	}

	for player.IsPlaying() {
		fmt.Printf("\rprogress %5.1f%%  onsets %v", player.Progress()*100, player.Counters())
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println()

	return nil
}

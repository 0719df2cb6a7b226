package playback

import (
	"errors"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/AnonymousChar42/otomad-online/midi"
)

// ErrMissingSample reports that playback was requested without a decoded
// sample buffer.
var ErrMissingSample = errors.New("playback: no sample buffer available")

// session is one playback invocation's complete dispatch state. A session is
// invalidated by replacement, never mutated by its successor; in-flight ticks
// and voice completions check the id and go quiet on mismatch.
type session struct {
	id     uint64
	buffer Buffer

	queue         []Command
	startHost     float64
	seekOriginMs  float64
	totalMs       float64
	starts        [][]float64
	counters      []int
	outstanding   int
	dispatchedAll bool
	playing       bool
	progress      float64
}

// Player drives playback sessions against an audio backend. At most one
// session is ever active: starting a new one supersedes the previous, whose
// pending commands are discarded while its already-sounding voices play out.
type Player struct {
	backend Backend
	ticker  Ticker
	log     *zap.Logger

	mu     sync.Mutex
	nextID uint64
	cur    *session
}

// Option configures a Player.
type Option func(*Player)

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Player) { p.log = l }
}

// NewPlayer returns a Player dispatching on the given ticker.
func NewPlayer(backend Backend, ticker Ticker, opts ...Option) *Player {
	p := &Player{backend: backend, ticker: ticker, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play starts a new playback session at the given seek fraction, superseding
// any session in progress. It fails with midi.ErrEmptyTimeline when the
// tracks hold no notes and with ErrMissingSample when buf is nil.
func (p *Player) Play(tracks []*midi.Track, sample Sample, buf Buffer, seekFraction float64) error {
	tl, err := midi.Resolve(tracks)
	if err != nil {
		return err
	}
	if buf == nil {
		return ErrMissingSample
	}

	if seekFraction >= 1 || seekFraction < 0 {
		seekFraction = 0
	}
	cmds := Schedule(tracks, tl, sample, seekFraction)
	starts := distinctStarts(tracks, tl)

	p.mu.Lock()
	p.nextID++
	s := &session{
		id:           p.nextID,
		buffer:       buf,
		queue:        cmds,
		startHost:    p.backend.Now(),
		seekOriginMs: seekFraction * tl.TotalDurationMs,
		totalMs:      tl.TotalDurationMs,
		starts:       starts,
		counters:     make([]int, len(starts)),
		playing:      true,
	}
	p.cur = s
	p.ticker.Start(p.tick)
	p.mu.Unlock()

	p.log.Debug("playback session started",
		zap.Uint64("session", s.id),
		zap.Int("commands", len(cmds)),
		zap.Float64("seekFraction", seekFraction),
		zap.Float64("totalMs", tl.TotalDurationMs),
	)
	return nil
}

// Stop ends the current session and resets progress. The external pause
// control maps to this: resuming is a new Play with a seek fraction.
func (p *Player) Stop() {
	p.mu.Lock()
	if p.cur != nil {
		p.cur.playing = false
		p.cur.progress = 0
		p.cur.queue = nil
	}
	p.ticker.Stop()
	p.mu.Unlock()
}

// Pause is the caller-facing name for Stop.
func (p *Player) Pause() { p.Stop() }

// IsPlaying reports whether the current session is still dispatching or has
// voices sounding.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur != nil && p.cur.playing
}

// Progress is the normalized elapsed fraction of the timeline, in [0,1].
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return 0
	}
	return p.cur.progress
}

// Counters returns, per selected non-empty track, how many distinct note
// onsets have passed.
func (p *Player) Counters() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return nil
	}
	out := make([]int, len(p.cur.counters))
	copy(out, p.cur.counters)
	return out
}

// tick is one cooperative dispatch step: skip commands whose whole window
// already elapsed, fire every command now due, and refresh progress and
// counters. Runs once per ticker period; never concurrently with itself.
func (p *Player) tick() {
	p.mu.Lock()
	s := p.cur
	if s == nil || !s.playing {
		// Stop before unlocking; a Play landing in between would no-op its
		// Start against the still-running ticker and lose it to this Stop.
		p.ticker.Stop()
		p.mu.Unlock()
		return
	}

	elapsed := p.backend.Now() - s.startHost
	elapsedMs := elapsed * 1e3

	var fire []Command
	for len(s.queue) > 0 {
		c := s.queue[0]
		if c.StartOffset+c.Duration < elapsed {
			// Catch-up after a stall skips overdue notes instead of queueing
			// them.
			s.queue = s.queue[1:]
			continue
		}
		if c.StartOffset <= elapsed {
			fire = append(fire, c)
			s.queue = s.queue[1:]
			continue
		}
		break
	}
	if len(s.queue) == 0 {
		s.dispatchedAll = true
	}

	if s.totalMs > 0 {
		s.progress = math.Min(1, (elapsedMs+s.seekOriginMs)/s.totalMs)
	}
	pos := elapsedMs + s.seekOriginMs
	for i, st := range s.starts {
		idx := s.counters[i]
		for idx < len(st) && st[idx] <= pos {
			idx++
		}
		s.counters[i] = idx
	}

	s.outstanding += len(fire)
	finished := s.dispatchedAll && s.outstanding == 0
	if finished {
		s.playing = false
		s.progress = 0
		p.ticker.Stop()
	}
	id := s.id
	buf := s.buffer
	p.mu.Unlock()

	if finished {
		p.log.Debug("playback session finished", zap.Uint64("session", id))
		return
	}

	for i, c := range fire {
		if !p.sessionAlive(id) {
			p.releaseVoices(id, len(fire)-i)
			return
		}
		v, err := p.backend.CreateVoice(buf)
		if err != nil {
			p.log.Warn("voice creation failed", zap.Uint64("session", id), zap.Error(err))
			p.releaseVoices(id, 1)
			continue
		}
		v.SetPlaybackRate(c.Rate)
		v.SetLoop(c.LoopStart, c.LoopEnd)
		v.SetGain(float64(c.Velocity) / 127)
		v.Start(0, c.SampleOffset, c.Duration, func() { p.releaseVoices(id, 1) })
	}
}

// releaseVoices records n voice completions for the given session. Stale
// sessions are ignored; the last completion of a fully dispatched session
// ends it.
func (p *Player) releaseVoices(id uint64, n int) {
	p.mu.Lock()
	s := p.cur
	if s == nil || s.id != id {
		p.mu.Unlock()
		return
	}
	s.outstanding -= n
	if s.outstanding <= 0 && s.dispatchedAll && s.playing {
		s.playing = false
		s.progress = 0
		p.mu.Unlock()
		p.log.Debug("playback session finished", zap.Uint64("session", id))
		return
	}
	p.mu.Unlock()
}

func (p *Player) sessionAlive(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cur != nil && p.cur.id == id && p.cur.playing
}

// distinctStarts collects, per selected non-empty track, the ascending
// distinct note start times in milliseconds. Notes sharing a start advance
// the track's counter once.
func distinctStarts(tracks []*midi.Track, tl midi.Timeline) [][]float64 {
	var out [][]float64
	for _, t := range tracks {
		if !t.Selected || len(t.Notes) == 0 {
			continue
		}
		starts := make([]float64, 0, len(t.Notes))
		last := int64(-1)
		for _, n := range t.Notes {
			if n.Start == last && len(starts) > 0 {
				continue
			}
			starts = append(starts, float64(n.Start)*tl.TickDurationMs)
			last = n.Start
		}
		out = append(out, starts)
	}
	return out
}

package playback

import (
	"sync"
	"time"
)

// Ticker re-invokes a callback on a bounded-latency period, the stand-in for
// a display/audio frame callback. Ticks never overlap: each invocation
// completes before the next is delivered.
type Ticker interface {
	Start(fn func())
	Stop()
}

// DefaultTickInterval approximates a 60 Hz display frame.
const DefaultTickInterval = time.Second / 60

type frameTicker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewFrameTicker returns a Ticker driven by a time.Ticker goroutine. A
// non-positive interval falls back to DefaultTickInterval.
func NewFrameTicker(interval time.Duration) Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &frameTicker{interval: interval}
}

func (t *frameTicker) Start(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				fn()
			}
		}
	}()
}

func (t *frameTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

package playback

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTickerFiresAndStops(t *testing.T) {
	var ticks atomic.Int64
	tk := NewFrameTicker(time.Millisecond)

	tk.Start(func() { ticks.Add(1) })
	assert.Eventually(t, func() bool { return ticks.Load() >= 3 },
		time.Second, time.Millisecond)

	tk.Stop()
	after := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, ticks.Load(), after+1, "at most one in-flight tick after Stop")
}

func TestFrameTickerStartIsIdempotent(t *testing.T) {
	var ticks atomic.Int64
	var second atomic.Bool
	tk := NewFrameTicker(time.Millisecond)
	defer tk.Stop()

	tk.Start(func() { ticks.Add(1) })
	tk.Start(func() { second.Store(true) }) // ignored while running

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 },
		time.Second, time.Millisecond)
	assert.False(t, second.Load())
}

func TestFrameTickerStopBeforeStart(t *testing.T) {
	tk := NewFrameTicker(time.Millisecond)
	tk.Stop()
	tk.Stop()
}

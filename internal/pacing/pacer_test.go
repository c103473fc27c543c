package pacing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 100 * time.Millisecond

func TestFastTicksSleepTheRemainder(t *testing.T) {
	p := NewPacer(tick)
	assert.Equal(t, 90*time.Millisecond, p.Next(10*time.Millisecond))
	assert.Equal(t, time.Duration(0), p.Deficit())
}

func TestOverrunIsRepaid(t *testing.T) {
	p := NewPacer(tick)

	// 1.5x tick: no sleep, half a tick owed.
	assert.Equal(t, time.Duration(0), p.Next(150*time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, p.Deficit())

	// A 10ms tick has 90ms of slack; 50ms goes to the deficit.
	assert.Equal(t, 40*time.Millisecond, p.Next(10*time.Millisecond))
	assert.Equal(t, time.Duration(0), p.Deficit())

	// Back to nominal.
	assert.Equal(t, 90*time.Millisecond, p.Next(10*time.Millisecond))
}

func TestLargeDeficitSpansSeveralTicks(t *testing.T) {
	p := NewPacer(tick)

	assert.Equal(t, time.Duration(0), p.Next(350*time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.Deficit())

	assert.Equal(t, time.Duration(0), p.Next(0))
	assert.Equal(t, 150*time.Millisecond, p.Deficit())
	assert.Equal(t, time.Duration(0), p.Next(0))
	assert.Equal(t, time.Duration(0), p.Next(0))
	assert.Equal(t, 50*time.Millisecond, p.Deficit())
	assert.Equal(t, 50*time.Millisecond, p.Next(0))
	assert.Equal(t, time.Duration(0), p.Deficit())
}

func TestNeverSleepsNegative(t *testing.T) {
	p := NewPacer(tick)
	for _, e := range []time.Duration{0, 250 * time.Millisecond, 99 * time.Millisecond, tick, 5 * time.Millisecond, 1, 3 * tick} {
		assert.GreaterOrEqual(t, p.Next(e), time.Duration(0))
		assert.GreaterOrEqual(t, p.Deficit(), time.Duration(0))
	}
}

func TestReset(t *testing.T) {
	p := NewPacer(tick)
	p.Next(2 * tick)
	p.Reset()
	assert.Equal(t, time.Duration(0), p.Deficit())
	assert.Equal(t, tick, p.TickLength())
}

func TestTickLengthFromTPS(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, TickLengthFromTPS(2))
	assert.Equal(t, 2*time.Second, TickLengthFromTPS(0.5))
	assert.Equal(t, time.Duration(16666666), TickLengthFromTPS(60))
	assert.Zero(t, TickLengthFromTPS(0))
	assert.Zero(t, TickLengthFromTPS(-1))
	assert.Zero(t, TickLengthFromTPS(math.NaN()))
	assert.Zero(t, TickLengthFromTPS(math.Inf(1)))

	assert.Equal(t, time.Nanosecond, TickLengthFromTPS(1e9))
	assert.Zero(t, TickLengthFromTPS(2e9))
	assert.Zero(t, TickLengthFromTPS(1e-12))
	assert.Positive(t, TickLengthFromTPS(1e-9))
}

func TestSystemSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := System{}.Sleep(ctx, time.Hour)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, System{}.Sleep(context.Background(), time.Millisecond))
}

func TestFakeClock(t *testing.T) {
	start := time.Unix(0, 0)
	f := NewFake(start)
	var hooked []time.Duration
	f.OnSleep = func(d time.Duration) { hooked = append(hooked, d) }

	require.NoError(t, f.Sleep(context.Background(), tick))
	f.Advance(time.Second)

	assert.Equal(t, start.Add(tick+time.Second), f.Now())
	assert.Equal(t, []time.Duration{tick}, f.Sleeps())
	assert.Equal(t, []time.Duration{tick}, hooked)
}

// Package pacing holds the timing arithmetic of the tick loop.
package pacing

import (
	"context"
	"math"
	"time"
)

// Pacer converts how long a tick took into how long to sleep before the next
// one. Overruns accumulate into a deficit that later fast ticks repay by
// sleeping less, so the loop catches up with wall-clock time instead of
// drifting behind it.
type Pacer struct {
	tick    time.Duration
	deficit time.Duration
}

// NewPacer returns a pacer for the nominal tick length.
func NewPacer(tick time.Duration) *Pacer {
	return &Pacer{tick: tick}
}

// TickLength returns the nominal tick length.
func (p *Pacer) TickLength() time.Duration {
	return p.tick
}

// Deficit returns the overrun not yet repaid.
func (p *Pacer) Deficit() time.Duration {
	return p.deficit
}

// Next records a tick that took elapsed and returns the sleep before the
// next tick. The result is never negative.
func (p *Pacer) Next(elapsed time.Duration) time.Duration {
	if elapsed >= p.tick {
		p.deficit += elapsed - p.tick
		return 0
	}

	slack := p.tick - elapsed
	if p.deficit >= slack {
		p.deficit -= slack
		return 0
	}

	sleep := slack - p.deficit
	p.deficit = 0
	return sleep
}

// Reset forgets any accumulated deficit.
func (p *Pacer) Reset() {
	p.deficit = 0
}

// TickLengthFromTPS converts ticks per second into a tick length.
// It returns 0 for non-positive or non-finite rates and for rates whose tick
// length is under a nanosecond or does not fit in a time.Duration.
func TickLengthFromTPS(tps float64) time.Duration {
	if !(tps > 0) {
		return 0
	}
	ns := float64(time.Second) / tps
	if ns < 1 || ns >= float64(math.MaxInt64) {
		return 0
	}
	return time.Duration(ns)
}

// Clock abstracts time for the loop.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, whichever is first.
	Sleep(ctx context.Context, d time.Duration) error
}

// System is the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

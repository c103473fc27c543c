package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/comalice/tickloop"
)

// tickLoop is the main tick execution loop
func (l *Loop[T, E]) tickLoop(ctx context.Context) error {
	observed := tickloop.Running

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		tickStart := l.clock.Now()

		state := l.control.State()
		if state != observed {
			l.logger.Debug().Stringer("from", observed).Stringer("to", state).Msg("loop state changed")
			observed = state
		}
		l.metrics.State.Set(float64(state))

		switch state {
		case tickloop.Stopped:
			return nil
		case tickloop.Paused:
			// No catch-up for time spent paused.
			l.pacer.Reset()
			l.deficit.Store(0)
			if err := l.clock.Sleep(ctx, l.pacer.TickLength()); err != nil {
				return err
			}
			continue
		}

		if closed, err := l.processTick(tickStart); closed || err != nil {
			return err
		}

		elapsed := l.clock.Now().Sub(tickStart)
		before := l.pacer.Deficit()
		sleep := l.pacer.Next(elapsed)
		after := l.pacer.Deficit()

		l.deficit.Store(int64(after))
		l.metrics.TickDuration.Observe(elapsed.Seconds())
		l.metrics.Deficit.Set(after.Seconds())
		if after > before {
			l.logger.Debug().
				Uint64("tick", l.tickNum.Load()).
				Dur("elapsed", elapsed).
				Dur("deficit", after).
				Msg("tick overran")
		}

		if err := l.clock.Sleep(ctx, sleep); err != nil {
			return err
		}
	}
}

// processTick processes one complete tick. It reports closed when a Close
// event ended the loop.
func (l *Loop[T, E]) processTick(tickStart time.Time) (closed bool, err error) {
	// Phase 1: Collect events atomically
	events := l.inbox.Drain()

	// Phase 2: Close wins over everything else queued this tick
	for _, ev := range events {
		if ev.IsClose() {
			l.logger.Info().Int("pending", len(events)).Msg("close event received")
			l.control.Stop()
			return true, nil
		}
	}
	l.metrics.Events.Add(float64(len(events)))

	// Phase 3: Step
	tick := l.tickNum.Add(1)
	l.metrics.Ticks.Inc()

	snapshot, err := l.step(tick, events, tickStart)
	if err != nil {
		l.metrics.FailedTicks.Inc()
		l.logger.Warn().Err(err).Uint64("tick", tick).Msg("tick skipped")
		if l.onStepErr != nil {
			l.onStepErr(err)
		}
		return false, nil
	}

	// Phase 4: Publish
	return false, l.store.UpdateAt(snapshot, tickStart)
}

// step calls the stepper, turning errors and panics into *tickloop.StepError.
func (l *Loop[T, E]) step(tick uint64, events []tickloop.Event[E], tickStart time.Time) (snapshot T, err error) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error().Uint64("tick", tick).Interface("panic", r).Msg("step panicked")
			var zero T
			snapshot, err = zero, &tickloop.StepError{Tick: tick, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	dt := float32(l.pacer.TickLength().Seconds())
	snapshot, err = l.stepper.Step(dt, events, l.control, tickStart)
	if err != nil {
		return snapshot, &tickloop.StepError{Tick: tick, Err: err}
	}
	return snapshot, nil
}

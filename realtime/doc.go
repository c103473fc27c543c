// Package realtime provides the fixed-rate tick loop for tickloop.
//
// The loop calls a user Stepper at a target rate and publishes each returned
// snapshot into a double-buffered tickloop.Store so that other goroutines
// (typically a renderer) can interpolate between the last two ticks:
//   - Events are batched and handed to the step function at tick boundaries
//   - Fixed time-step execution (e.g., 60 TPS) with overrun catch-up
//   - A failed tick publishes nothing; readers keep seeing the last snapshot
//   - Pause/Resume/Stop through a shared control handle
//
// # Example Usage
//
//	loop, events, control, store, err := realtime.Init[Snapshot, Input](
//		realtime.StepFunc[Snapshot, Input](world.Step),
//		realtime.Config{TPS: 66},
//		realtime.WithLogger(log.Logger),
//	)
//	go loop.Start(ctx)
//	events.SendOther(Input{Key: "space"})
//	frame, err := store.InterpolateAt(time.Now(), loop.TickLength(), ease.Linear)
//
// # Timing
//
// Each iteration records its start time, runs the step function and then
// sleeps for the rest of the nominal tick length. A tick that overruns adds
// the overrun to a deficit; following ticks sleep less until the deficit is
// repaid. The loop never sleeps a negative duration and never preempts a
// running step: a hung step function stalls the loop.
//
// # Shutdown
//
// Stop takes effect at the next iteration boundary, within one tick length.
// A Close event sent through the sender ends the loop on the tick that
// drains it; the step function is not called for that tick and no snapshot
// is published. Cancelling the context passed to Start also ends the loop,
// interrupting a pending sleep.
//
// # Use Cases
//
//   - Game logic decoupled from a renderer's frame rate
//   - Physics simulations (fixed time-step)
//   - Headless simulations sampled by a monitoring goroutine
package realtime

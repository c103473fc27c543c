// Package tickloop hands state from a fixed-rate simulation loop to any
// number of readers.
//
// The loop itself lives in package realtime. This package holds the pieces
// shared between the loop and its collaborators:
//
//   - Store: the double-buffered snapshot store. The loop swaps each tick's
//     snapshot in under a write lock; readers copy or interpolate the last
//     two snapshots under a read lock.
//   - Sender / Inbox: an unbounded multi-producer event channel drained by
//     the loop once per tick.
//   - Control: a shared Running/Paused/Stopped flag.
//
// # Interpolating
//
// A renderer running faster than the loop asks the store for an intermediate
// state between the two buffered snapshots:
//
//	frame, err := store.InterpolateAt(time.Now(), loop.TickLength(), ease.OutCubic)
//	if errors.Is(err, tickloop.ErrTooFewSnapshots) {
//		// nothing to draw yet
//	}
//
// Fractions outside [0,1] are clamped rather than rejected so clock drift
// between the two goroutines never surfaces as an error.
package tickloop

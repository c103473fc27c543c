package tickloop

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewSnapshots is returned by store queries that need two buffered
	// snapshots before a second tick has landed. Retry later.
	ErrTooFewSnapshots = errors.New("not enough snapshots to interpolate")

	// ErrChannelClosed is returned by Sender.Send once the loop has exited.
	ErrChannelClosed = errors.New("event channel closed")

	// ErrLockPoisoned is returned by every store operation after a reader
	// panicked while holding the store lock.
	ErrLockPoisoned = errors.New("snapshot store lock poisoned")
)

// StepError wraps an error returned by a step function for one tick.
type StepError struct {
	Tick uint64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step failed on tick %d: %v", e.Tick, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

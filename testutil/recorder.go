// Package testutil provides helpers for testing code built on the tick loop.
package testutil

import (
	"sync"
	"time"

	"github.com/comalice/tickloop"
)

// Call is one recorded step invocation.
type Call[E any] struct {
	Tick      int
	DT        float32
	Events    []tickloop.Event[E]
	TickStart time.Time
}

// Recorder is a realtime.Stepper that records every call and delegates
// snapshot production to Next. It is safe to inspect from other goroutines
// while the loop runs.
type Recorder[T any, E any] struct {
	// Next produces the snapshot for the given 1-based tick. A nil Next
	// returns the zero value.
	Next func(tick int, events []tickloop.Event[E]) (T, error)

	mu    sync.Mutex
	calls []Call[E]
	ch    chan int
}

// NewRecorder returns a Recorder using next.
func NewRecorder[T any, E any](next func(tick int, events []tickloop.Event[E]) (T, error)) *Recorder[T, E] {
	return &Recorder[T, E]{Next: next, ch: make(chan int, 1024)}
}

func (r *Recorder[T, E]) Step(dt float32, events []tickloop.Event[E], _ tickloop.Control, tickStart time.Time) (T, error) {
	r.mu.Lock()
	tick := len(r.calls) + 1
	r.calls = append(r.calls, Call[E]{Tick: tick, DT: dt, Events: events, TickStart: tickStart})
	r.mu.Unlock()

	select {
	case r.ch <- tick:
	default:
	}

	if r.Next == nil {
		var zero T
		return zero, nil
	}
	return r.Next(tick, events)
}

// Calls returns a copy of the recorded calls.
func (r *Recorder[T, E]) Calls() []Call[E] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call[E](nil), r.calls...)
}

// Count returns the number of recorded calls.
func (r *Recorder[T, E]) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Events returns every payload delivered so far, in delivery order.
func (r *Recorder[T, E]) Events() []E {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []E
	for _, c := range r.calls {
		for _, ev := range c.Events {
			if !ev.IsClose() {
				out = append(out, ev.Payload)
			}
		}
	}
	return out
}

// WaitForTicks blocks until at least n ticks ran or timeout elapses. It
// reports whether n was reached.
func (r *Recorder[T, E]) WaitForTicks(n int, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if r.Count() >= n {
			return true
		}
		select {
		case <-r.ch:
		case <-deadline.C:
			return r.Count() >= n
		}
	}
}

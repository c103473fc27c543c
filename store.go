package tickloop

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
)

// View is a consistent copy of the two buffered snapshots.
type View[T any] struct {
	Last    T
	New     T
	LastAt  time.Time
	NewAt   time.Time
	HasLast bool
	HasNew  bool
	Updates uint64
}

// Fraction maps now onto progress between Last and New, assuming New was
// produced tickLength after Last. The result is not clamped.
func (v View[T]) Fraction(now time.Time, tickLength time.Duration) float32 {
	if tickLength <= 0 || !v.HasNew {
		return 1
	}
	return float32(now.Sub(v.NewAt).Seconds() / tickLength.Seconds())
}

// Store holds the last two snapshots published by a loop. A single writer
// swaps snapshots in; any number of readers query concurrently.
type Store[T interpolate.Interpolatable[T]] struct {
	mu       sync.RWMutex
	view     View[T]
	poisoned atomic.Bool
}

// NewStore returns an empty store. Interpolation becomes available after
// the second update.
func NewStore[T interpolate.Interpolatable[T]]() *Store[T] {
	return &Store[T]{}
}

// NewSeededStore returns a store whose newest snapshot is seed, so a single
// update is enough to interpolate.
func NewSeededStore[T interpolate.Interpolatable[T]](seed T) *Store[T] {
	return &Store[T]{view: View[T]{New: seed, NewAt: time.Now(), HasNew: true}}
}

// Update publishes v as the newest snapshot stamped with the current time.
func (s *Store[T]) Update(v T) error {
	return s.UpdateAt(v, time.Now())
}

// UpdateAt publishes v as the newest snapshot produced at at. The previous
// newest snapshot becomes the last one.
func (s *Store[T]) UpdateAt(v T, at time.Time) error {
	if s.poisoned.Load() {
		return ErrLockPoisoned
	}

	s.mu.Lock()
	if s.view.HasNew {
		s.view.Last, s.view.LastAt, s.view.HasLast = s.view.New, s.view.NewAt, true
	}
	s.view.New, s.view.NewAt, s.view.HasNew = v, at, true
	s.view.Updates++
	s.mu.Unlock()

	return nil
}

// View returns a copy of the buffered snapshots.
func (s *Store[T]) View() (View[T], error) {
	if s.poisoned.Load() {
		return View[T]{}, ErrLockPoisoned
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view, nil
}

// Read calls fn with the buffered snapshots while holding the read lock.
// fn must not block or call back into the store for writing. If fn panics
// the store is poisoned and the panic is re-raised.
func (s *Store[T]) Read(fn func(View[T])) error {
	if s.poisoned.Load() {
		return ErrLockPoisoned
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	defer func() {
		if r := recover(); r != nil {
			s.poisoned.Store(true)
			panic(r)
		}
	}()

	fn(s.view)
	return nil
}

// Interpolate blends the last and newest snapshots at fraction t reshaped by
// curve. t is clamped to [0,1]; a nil curve is linear. The blend runs on
// copies outside the lock.
func (s *Store[T]) Interpolate(t float32, curve ease.Curve) (T, error) {
	v, err := s.View()
	if err != nil {
		var zero T
		return zero, err
	}
	return interpolateView(v, interpolate.Clamp(t), curve)
}

// InterpolateAt derives the fraction from the time elapsed since the newest
// snapshot and the loop's tick length, then interpolates.
func (s *Store[T]) InterpolateAt(now time.Time, tickLength time.Duration, curve ease.Curve) (T, error) {
	v, err := s.View()
	if err != nil {
		var zero T
		return zero, err
	}
	return interpolateView(v, interpolate.Clamp(v.Fraction(now, tickLength)), curve)
}

func interpolateView[T interpolate.Interpolatable[T]](v View[T], t float32, curve ease.Curve) (T, error) {
	if !v.HasLast {
		var zero T
		return zero, ErrTooFewSnapshots
	}
	return interpolate.Value(v.Last, v.New, t, curve), nil
}

// Updates returns the number of snapshots published so far.
func (s *Store[T]) Updates() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Updates
}

// Poisoned reports whether a reader panicked while holding the lock.
func (s *Store[T]) Poisoned() bool {
	return s.poisoned.Load()
}

package realtime

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/tickloop"
	"github.com/comalice/tickloop/ease"
	"github.com/comalice/tickloop/interpolate"
	"github.com/comalice/tickloop/internal/pacing"
)

var (
	// ErrNilStepper is returned by Init when no stepper is given.
	ErrNilStepper = errors.New("nil stepper")
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("loop already started")
)

// Stepper advances the simulation by one tick and returns the snapshot to
// publish. dt is the nominal tick length in seconds.
type Stepper[T any, E any] interface {
	Step(dt float32, events []tickloop.Event[E], control tickloop.Control, tickStart time.Time) (T, error)
}

// StepFunc adapts a function to Stepper.
type StepFunc[T any, E any] func(dt float32, events []tickloop.Event[E], control tickloop.Control, tickStart time.Time) (T, error)

func (f StepFunc[T, E]) Step(dt float32, events []tickloop.Event[E], control tickloop.Control, tickStart time.Time) (T, error) {
	return f(dt, events, control, tickStart)
}

// Loop calls a Stepper at a fixed rate and publishes each result into a
// snapshot store. A Loop runs once; Start blocks the calling goroutine.
type Loop[T interpolate.Interpolatable[T], E any] struct {
	stepper Stepper[T, E]
	tps     float64
	curve   ease.Curve

	pacer   *pacing.Pacer
	clock   pacing.Clock
	inbox   *tickloop.Inbox[E]
	control tickloop.Control
	store   *tickloop.Store[T]

	logger    zerolog.Logger
	metrics   *Metrics
	onStepErr func(error)

	tickNum atomic.Uint64
	deficit atomic.Int64
	started atomic.Bool
	stopped chan struct{}
}

// Init builds a loop with an empty snapshot store and returns it together
// with the handles other goroutines use: an event sender, a control handle
// and the store.
func Init[T interpolate.Interpolatable[T], E any](stepper Stepper[T, E], cfg Config, opts ...Option) (*Loop[T, E], tickloop.Sender[E], tickloop.Control, *tickloop.Store[T], error) {
	return build(stepper, tickloop.NewStore[T](), cfg, opts)
}

// InitSeeded is Init with a store whose newest snapshot starts as seed.
func InitSeeded[T interpolate.Interpolatable[T], E any](stepper Stepper[T, E], seed T, cfg Config, opts ...Option) (*Loop[T, E], tickloop.Sender[E], tickloop.Control, *tickloop.Store[T], error) {
	return build(stepper, tickloop.NewSeededStore(seed), cfg, opts)
}

func build[T interpolate.Interpolatable[T], E any](stepper Stepper[T, E], store *tickloop.Store[T], cfg Config, opts []Option) (*Loop[T, E], tickloop.Sender[E], tickloop.Control, *tickloop.Store[T], error) {
	if stepper == nil {
		return nil, tickloop.Sender[E]{}, tickloop.Control{}, nil, ErrNilStepper
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, tickloop.Sender[E]{}, tickloop.Control{}, nil, err
	}
	curve, err := cfg.EaseCurve()
	if err != nil {
		return nil, tickloop.Sender[E]{}, tickloop.Control{}, nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(o.registerer, cfg.MetricsNamespace)
	}

	sender, inbox := tickloop.NewChannel[E]()
	control := tickloop.NewControl()

	l := &Loop[T, E]{
		stepper:   stepper,
		tps:       cfg.TPS,
		curve:     curve,
		pacer:     pacing.NewPacer(pacing.TickLengthFromTPS(cfg.TPS)),
		clock:     o.clock,
		inbox:     inbox,
		control:   control,
		store:     store,
		logger:    o.logger,
		metrics:   o.metrics,
		onStepErr: o.onStepErr,
		stopped:   make(chan struct{}),
	}
	return l, sender, control, store, nil
}

// Start runs the loop on the calling goroutine until the control handle is
// stopped, a Close event arrives, ctx is done, or the store is poisoned.
// It returns nil on a cooperative stop, ctx.Err() on cancellation and
// tickloop.ErrLockPoisoned on a store fault.
func (l *Loop[T, E]) Start(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer close(l.stopped)
	defer l.inbox.Close()

	l.logger.Info().
		Float64("tps", l.tps).
		Dur("tick_length", l.pacer.TickLength()).
		Msg("tick loop started")

	err := l.tickLoop(ctx)

	l.control.Stop()
	l.metrics.State.Set(float64(tickloop.Stopped))

	if err != nil {
		l.logger.Error().Err(err).Uint64("ticks", l.tickNum.Load()).Msg("tick loop exited")
		return err
	}
	l.logger.Info().Uint64("ticks", l.tickNum.Load()).Msg("tick loop exited")

	return nil
}

// Go runs Start on a new goroutine. The channel receives Start's result.
func (l *Loop[T, E]) Go(ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	go func() {
		errc <- l.Start(ctx)
	}()
	return errc
}

// Stop requests a stop and, if the loop is running, waits for it to exit.
func (l *Loop[T, E]) Stop() {
	l.control.Stop()
	if l.started.Load() {
		<-l.stopped
	}
}

// Done is closed once Start has returned.
func (l *Loop[T, E]) Done() <-chan struct{} {
	return l.stopped
}

// TickLength returns the nominal tick length.
func (l *Loop[T, E]) TickLength() time.Duration {
	return l.pacer.TickLength()
}

// TPS returns the target rate.
func (l *Loop[T, E]) TPS() float64 {
	return l.tps
}

// TickNumber returns how many times the step function has been called.
func (l *Loop[T, E]) TickNumber() uint64 {
	return l.tickNum.Load()
}

// Deficit returns the current overrun not yet repaid.
func (l *Loop[T, E]) Deficit() time.Duration {
	return time.Duration(l.deficit.Load())
}

// Control returns the loop's control handle.
func (l *Loop[T, E]) Control() tickloop.Control {
	return l.control
}

// Store returns the loop's snapshot store.
func (l *Loop[T, E]) Store() *tickloop.Store[T] {
	return l.store
}

// Curve returns the easing curve named in the config.
func (l *Loop[T, E]) Curve() ease.Curve {
	return l.curve
}

// Frame interpolates the store at the current time using the configured
// curve. It is what a render goroutine calls once per frame.
func (l *Loop[T, E]) Frame() (T, error) {
	return l.store.InterpolateAt(l.clock.Now(), l.TickLength(), l.curve)
}

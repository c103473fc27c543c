package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/comalice/tickloop/internal/pacing"
)

// Option configures a Loop.
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	metrics    *Metrics
	clock      pacing.Clock
	onStepErr  func(error)
}

func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
		clock:  pacing.System{},
	}
}

// WithLogger sets the structured logger the loop writes to.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegisterer registers the loop metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithMetrics uses m instead of creating new collectors.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c pacing.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithStepErrorHandler is called on the loop goroutine with a
// *tickloop.StepError for every failed tick.
func WithStepErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onStepErr = fn
	}
}

package tickloop

import "sync"

// EventKind tags an Event.
type EventKind uint8

const (
	// EventOther carries application data in Payload.
	EventOther EventKind = iota
	// EventClose asks the loop to shut down.
	EventClose
)

func (k EventKind) String() string {
	switch k {
	case EventOther:
		return "other"
	case EventClose:
		return "close"
	default:
		return "unknown"
	}
}

// Event is delivered to the step function in per-tick batches.
type Event[E any] struct {
	Kind    EventKind
	Payload E
}

// Close returns the reserved shutdown event.
func Close[E any]() Event[E] {
	return Event[E]{Kind: EventClose}
}

// Other wraps an application payload.
func Other[E any](payload E) Event[E] {
	return Event[E]{Kind: EventOther, Payload: payload}
}

// IsClose reports whether e is the shutdown event.
func (e Event[E]) IsClose() bool {
	return e.Kind == EventClose
}

// mailbox is an unbounded multi-producer queue drained by a single consumer.
type mailbox[E any] struct {
	mu     sync.Mutex
	items  []Event[E]
	closed bool
}

// NewChannel creates a connected Sender/Inbox pair.
func NewChannel[E any]() (Sender[E], *Inbox[E]) {
	mb := &mailbox[E]{}
	return Sender[E]{mb: mb}, &Inbox[E]{mb: mb}
}

// Sender is the producer side of the event channel. Copies share the same
// channel and may be used from any goroutine.
type Sender[E any] struct {
	mb *mailbox[E]
}

// Send enqueues ev without blocking. It fails with ErrChannelClosed only
// when the consuming side is gone.
func (s Sender[E]) Send(ev Event[E]) error {
	if s.mb == nil {
		return ErrChannelClosed
	}
	s.mb.mu.Lock()
	defer s.mb.mu.Unlock()

	if s.mb.closed {
		return ErrChannelClosed
	}
	s.mb.items = append(s.mb.items, ev)
	return nil
}

// SendOther is Send(Other(payload)).
func (s Sender[E]) SendOther(payload E) error {
	return s.Send(Other(payload))
}

// Close sends the shutdown event.
func (s Sender[E]) Close() error {
	return s.Send(Close[E]())
}

// Inbox is the consumer side of the event channel.
type Inbox[E any] struct {
	mb *mailbox[E]
}

// Drain returns every queued event in arrival order and empties the queue.
// It never blocks on producers beyond the slice swap.
func (in *Inbox[E]) Drain() []Event[E] {
	in.mb.mu.Lock()
	defer in.mb.mu.Unlock()

	events := in.mb.items
	in.mb.items = nil
	return events
}

// Len reports how many events are waiting.
func (in *Inbox[E]) Len() int {
	in.mb.mu.Lock()
	defer in.mb.mu.Unlock()
	return len(in.mb.items)
}

// Close detaches the inbox. Pending events are discarded and later sends
// report ErrChannelClosed.
func (in *Inbox[E]) Close() {
	in.mb.mu.Lock()
	defer in.mb.mu.Unlock()

	in.mb.closed = true
	in.mb.items = nil
}

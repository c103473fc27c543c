package tickloop

import "sync"

// State is the run state of a loop.
type State int32

const (
	// Running loops step on every tick.
	Running State = iota
	// Paused loops sleep without stepping or draining events.
	Paused
	// Stopped is terminal.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type controlState struct {
	mu    sync.Mutex
	state State
	done  chan struct{}
}

// Control is a shared handle onto a loop's run state. Copying a Control
// yields another handle to the same state; any holder may request a
// transition and the last writer wins. The loop observes changes only
// between ticks.
type Control struct {
	s *controlState
}

// NewControl returns a handle in the Running state.
func NewControl() Control {
	return Control{s: &controlState{state: Running, done: make(chan struct{})}}
}

// State returns the current state.
func (c Control) State() State {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return c.s.state
}

// Stop moves to Stopped. It is terminal and idempotent.
func (c Control) Stop() {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.s.state == Stopped {
		return
	}
	c.s.state = Stopped
	close(c.s.done)
}

// Pause moves Running to Paused. It reports false once stopped.
func (c Control) Pause() bool {
	return c.set(Paused)
}

// Resume moves Paused to Running. It reports false once stopped.
func (c Control) Resume() bool {
	return c.set(Running)
}

func (c Control) set(s State) bool {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if c.s.state == Stopped {
		return false
	}
	c.s.state = s
	return true
}

// Done is closed when the state becomes Stopped.
func (c Control) Done() <-chan struct{} {
	return c.s.done
}

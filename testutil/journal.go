package testutil

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/tickloop"
)

// Journal is the per-tick event history of a run. A step function that
// depends only on dt and its events produces the same snapshots when the
// journal is replayed.
type Journal[E any] struct {
	DT    float32          `yaml:"dt"`
	Ticks []JournalTick[E] `yaml:"ticks"`
}

// JournalTick is one step call. Ticks without events are omitted from a
// journal; Replay fills the gaps.
type JournalTick[E any] struct {
	Tick   int `yaml:"tick"`
	Events []E `yaml:"events"`
}

// Journal builds a journal from the calls recorded so far. It always records
// the last tick so the replay runs as long as the recorded run.
func (r *Recorder[T, E]) Journal() Journal[E] {
	calls := r.Calls()
	j := Journal[E]{}
	for i, c := range calls {
		j.DT = c.DT
		var payloads []E
		for _, ev := range c.Events {
			if !ev.IsClose() {
				payloads = append(payloads, ev.Payload)
			}
		}
		if len(payloads) > 0 || i == len(calls)-1 {
			j.Ticks = append(j.Ticks, JournalTick[E]{Tick: c.Tick, Events: payloads})
		}
	}
	return j
}

// Len returns the number of ticks the journal covers.
func (j Journal[E]) Len() int {
	if len(j.Ticks) == 0 {
		return 0
	}
	return j.Ticks[len(j.Ticks)-1].Tick
}

// Save writes the journal as YAML.
func (j Journal[E]) Save(path string) error {
	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadJournal reads a journal written by Save.
func LoadJournal[E any](path string) (Journal[E], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Journal[E]{}, fmt.Errorf("journal %q: %w", path, os.ErrNotExist)
		}
		return Journal[E]{}, fmt.Errorf("read %s: %w", path, err)
	}
	var j Journal[E]
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Journal[E]{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return j, nil
}

// Replay calls step once per journaled tick, without a loop or a clock, and
// returns every snapshot. A failed step is returned as a *tickloop.StepError.
func Replay[T any, E any](j Journal[E], step func(dt float32, events []tickloop.Event[E], control tickloop.Control, tickStart time.Time) (T, error)) ([]T, error) {
	control := tickloop.NewControl()
	out := make([]T, 0, j.Len())
	next := 0
	for tick := 1; tick <= j.Len(); tick++ {
		var events []tickloop.Event[E]
		if next < len(j.Ticks) && j.Ticks[next].Tick == tick {
			for _, p := range j.Ticks[next].Events {
				events = append(events, tickloop.Other(p))
			}
			next++
		}
		v, err := step(j.DT, events, control, time.Time{})
		if err != nil {
			return out, &tickloop.StepError{Tick: uint64(tick), Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

package events

import (
	"sync"

	"github.com/iov-one/lockbox"
)

// Emitter is implemented by every notification sink.
type Emitter interface {
	Emit(lockbox.Event)
}

// NoopEmitter satisfies the Emitter interface while discarding all events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(lockbox.Event) {}

// Multi forwards every event to all of its emitters, in order.
type Multi []Emitter

// Emit implements the Emitter interface.
func (m Multi) Emit(e lockbox.Event) {
	for _, em := range m {
		if em != nil {
			em.Emit(e)
		}
	}
}

// Recorder keeps every emitted event in memory. It is safe for concurrent
// use and mostly useful in tests.
type Recorder struct {
	mu     sync.Mutex
	events []lockbox.Event
}

// Emit implements the Emitter interface.
func (r *Recorder) Emit(e lockbox.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []lockbox.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]lockbox.Event(nil), r.events...)
}

// Kinds returns the kind of every recorded event.
func (r *Recorder) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

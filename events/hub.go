package events

import (
	"sync"
	"sync/atomic"

	"github.com/iov-one/lockbox"
)

// Hub fans out events to any number of subscribers. A subscriber that does
// not keep up loses events instead of slowing down the publisher.
type Hub struct {
	mu      sync.RWMutex
	nextID  uint64
	subs    map[uint64]chan lockbox.Event
	dropped uint64
}

var _ Emitter = (*Hub)(nil)

// NewHub returns a hub without subscribers.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan lockbox.Event)}
}

// Subscribe registers a new subscriber with a buffer of given size. Returned
// function must be called to release the subscription. It closes the
// channel.
func (h *Hub) Subscribe(buffer int) (<-chan lockbox.Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan lockbox.Event, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Emit implements the Emitter interface.
func (h *Hub) Emit(e lockbox.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default:
			atomic.AddUint64(&h.dropped, 1)
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Dropped returns the number of events that were not delivered because a
// subscriber buffer was full.
func (h *Hub) Dropped() uint64 {
	return atomic.LoadUint64(&h.dropped)
}

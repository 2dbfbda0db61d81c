// Package notify fans store changes out to registered subscribers.
package notify

import (
	"sync"

	"bizledger/internal/core"
)

// Func receives one change notification.
type Func func(core.Change)

type subscriber struct {
	id int
	fn Func
}

// Hub keeps subscribers in registration order. The zero value is ready to use.
type Hub struct {
	mu   sync.Mutex
	next int
	subs []subscriber
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (h *Hub) Subscribe(fn Func) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	h.subs = append(h.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.subs[:0:0]
	for _, s := range h.subs {
		if s.id != id {
			out = append(out, s)
		}
	}
	h.subs = out
}

// Publish calls every subscriber synchronously. Subscribers registered or
// removed during delivery take effect from the next Publish.
func (h *Hub) Publish(c core.Change) {
	h.mu.Lock()
	subs := h.subs
	h.mu.Unlock()

	for _, s := range subs {
		s.fn(c)
	}
}

// Len returns the number of registered subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

package client

import (
	"encoding/json"
	"sync"
)

// Handler receives the payload of one pushed event.
type Handler func(data json.RawMessage)

// Binding is the set of handlers added by one Bind call. Unbinding it removes
// exactly those handlers and nothing else, so two views bound to the same event
// never tear each other down.
type Binding struct {
	entries map[string][]int
}

// Router fans incoming events out to bound handler tables. Dispatch happens on
// the connection's read goroutine, so handlers for one connection never run
// concurrently with each other.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]map[int]Handler
	nextID   int
}

func newRouter() *Router {
	return &Router{handlers: make(map[string]map[int]Handler)}
}

// Bind registers a table of event → handler entries and returns the binding used
// to remove them. Binding the same event from multiple tables is allowed; each
// bound handler sees every occurrence of the event.
func (r *Router) Bind(table map[string]Handler) *Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := &Binding{entries: make(map[string][]int, len(table))}
	for event, handler := range table {
		if handler == nil {
			continue
		}
		if _, ok := r.handlers[event]; !ok {
			r.handlers[event] = make(map[int]Handler)
		}
		id := r.nextID
		r.nextID++
		r.handlers[event][id] = handler
		b.entries[event] = append(b.entries[event], id)
	}
	return b
}

// Unbind removes every handler the binding added. Safe to call more than once.
func (r *Router) Unbind(b *Binding) {
	if b == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for event, ids := range b.entries {
		for _, id := range ids {
			delete(r.handlers[event], id)
		}
		if len(r.handlers[event]) == 0 {
			delete(r.handlers, event)
		}
	}
	b.entries = make(map[string][]int)
}

// HandlerCount reports how many handlers are bound to an event.
func (r *Router) HandlerCount(event string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[event])
}

func (r *Router) dispatch(event string, data json.RawMessage) {
	r.mu.RLock()
	bound := make([]Handler, 0, len(r.handlers[event]))
	for _, h := range r.handlers[event] {
		bound = append(bound, h)
	}
	r.mu.RUnlock()

	for _, h := range bound {
		h(data)
	}
}

package async

import (
	"sort"
	"sync"
)

// Listener receives the payload of an emitted event.
type Listener func(payload any)

// EventSource is anything listeners can subscribe to. The returned function
// detaches the listener and is safe to call more than once.
type EventSource interface {
	On(event string, listener Listener) (off func())
}

// Emitter is a minimal named-event dispatcher. It is safe for concurrent use.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string]map[uint64]Listener
}

// NewEmitter creates an Emitter with no listeners.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string]map[uint64]Listener)}
}

// On subscribes listener to event.
func (e *Emitter) On(event string, listener Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string]map[uint64]Listener)
	}
	if e.listeners[event] == nil {
		e.listeners[event] = make(map[uint64]Listener)
	}
	id := e.nextID
	e.nextID++
	e.listeners[event][id] = listener

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners[event], id)
		if len(e.listeners[event]) == 0 {
			delete(e.listeners, event)
		}
	}
}

// Emit calls every listener of event in subscription order and returns how
// many were called. Listeners run on the caller's goroutine, outside the lock.
func (e *Emitter) Emit(event string, payload any) int {
	e.mu.Lock()
	ids := make([]uint64, 0, len(e.listeners[event]))
	for id := range e.listeners[event] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	snapshot := make([]Listener, 0, len(ids))
	for _, id := range ids {
		snapshot = append(snapshot, e.listeners[event][id])
	}
	e.mu.Unlock()

	for _, listener := range snapshot {
		listener(payload)
	}
	return len(snapshot)
}

// ListenerCount reports the number of listeners subscribed to event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

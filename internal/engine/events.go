// internal/engine/events.go
package engine

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// EventCalculationUpdate is emitted whenever a product calculation completes,
// whether it ran synchronously or through the background runner.
const EventCalculationUpdate = "calculationUpdate"

// Event is the payload delivered to subscribed listeners.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Listener receives engine events. Listeners must not assume a delivery
// goroutine; a panicking listener is recovered and logged without disturbing
// the others.
type Listener func(Event)

type listenerRegistry struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

func newListenerRegistry() *listenerRegistry {
	return &listenerRegistry{listeners: make(map[int]Listener)}
}

// subscribe registers a listener and returns its unsubscribe handle.
func (r *listenerRegistry) subscribe(listener Listener) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = listener

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// dispatch notifies every registered listener. The listener set is snapshotted
// under the lock so subscriptions changing mid-dispatch cannot interleave with
// iteration.
func (r *listenerRegistry) dispatch(event Event) {
	r.mu.Lock()
	snapshot := make([]Listener, 0, len(r.listeners))
	for _, listener := range r.listeners {
		snapshot = append(snapshot, listener)
	}
	r.mu.Unlock()

	for _, listener := range snapshot {
		notify(listener, event)
	}
}

func notify(listener Listener, event Event) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Any("panic", rec).Str("event", event.Type).Msg("event listener panicked")
		}
	}()
	listener(event)
}

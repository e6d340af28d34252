// Package event provides domain event contracts and an in-process dispatcher
// that fans events out to registered handlers.
package event

import (
	"context"
	"reflect"
	"slices"
	"sync"
	"time"
)

// Event is a domain fact that handlers may react to.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// Handler reacts to a dispatched event. Handlers return nothing: delivery is
// fire-and-forget and a failing handler must deal with its own errors.
type Handler interface {
	Handle(ctx context.Context, e Event)
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(ctx context.Context, e Event)

// Handle calls f(ctx, e).
func (f HandlerFunc) Handle(ctx context.Context, e Event) {
	f(ctx, e)
}

// Dispatcher routes events to handlers registered under the event name.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher returns a Dispatcher with no handlers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Register appends h to the handlers of the named event.
func (d *Dispatcher) Register(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[name] = append(d.handlers[name], h)
}

// Unregister removes the first registration of h for the named event.
// Handlers of non-comparable types, such as HandlerFunc, cannot be
// unregistered individually; use UnregisterAll.
func (d *Dispatcher) Unregister(name string, h Handler) {
	if h == nil || !reflect.TypeOf(h).Comparable() {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	hs := d.handlers[name]
	for i, registered := range hs {
		if registered == h {
			hs = slices.Delete(hs, i, i+1)
			break
		}
	}
	if len(hs) == 0 {
		delete(d.handlers, name)
		return
	}
	d.handlers[name] = hs
}

// UnregisterAll drops every registered handler.
func (d *Dispatcher) UnregisterAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers = make(map[string][]Handler)
}

// Handlers returns a copy of the handlers registered for the named event.
func (d *Dispatcher) Handlers(name string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Clone(d.handlers[name])
}

// Notify invokes, in registration order, every handler registered for
// e.Name(). The handler list is snapshotted before the first call, so
// handlers may register or unregister without deadlocking.
func (d *Dispatcher) Notify(ctx context.Context, e Event) {
	for _, h := range d.Handlers(e.Name()) {
		h.Handle(ctx, e)
	}
}

// Package notify decouples user-facing notifications from the flows that
// produce them. Slices publish events; whatever renders them (console, UI
// toast layer, test recorder) subscribes independently.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level indicates how an event should be presented.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event types published by the store slices.
const (
	TypeToast          = "toast"
	TypeSessionExpired = "session.expired"
)

// Event is a single user-facing notification.
type Event struct {
	ID      uuid.UUID
	Type    string
	Level   Level
	Message string
	At      time.Time
}

// Handler processes a published event.
type Handler func(Event)

// Dispatcher manages event subscriptions and publishing. Delivery is
// synchronous and in subscription order.
type Dispatcher struct {
	mu          sync.RWMutex
	handlers    map[string][]Handler
	allHandlers []Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a specific event type.
func (d *Dispatcher) Subscribe(eventType string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], h)
}

// SubscribeAll registers a handler for every event type.
func (d *Dispatcher) SubscribeAll(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allHandlers = append(d.allHandlers, h)
}

// Publish delivers an event to type-specific and catch-all handlers,
// stamping ID and timestamp when absent.
func (d *Dispatcher) Publish(e Event) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	d.mu.RLock()
	typed := make([]Handler, len(d.handlers[e.Type]))
	copy(typed, d.handlers[e.Type])
	all := make([]Handler, len(d.allHandlers))
	copy(all, d.allHandlers)
	d.mu.RUnlock()

	for _, h := range typed {
		h(e)
	}
	for _, h := range all {
		h(e)
	}
}

// Success publishes a success toast.
func (d *Dispatcher) Success(msg string) {
	d.Publish(Event{Type: TypeToast, Level: LevelSuccess, Message: msg})
}

// Error publishes an error toast.
func (d *Dispatcher) Error(msg string) {
	d.Publish(Event{Type: TypeToast, Level: LevelError, Message: msg})
}

// SessionExpired publishes the forced-logout event that tells the embedding
// view layer to route to its sign-in entry point.
func (d *Dispatcher) SessionExpired(msg string) {
	d.Publish(Event{Type: TypeSessionExpired, Level: LevelError, Message: msg})
}

// Recorder collects published events for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Handle appends the event; register it via Subscribe or SubscribeAll.
func (r *Recorder) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns just the message strings, in publish order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Message
	}
	return out
}

// Last returns the most recent event, or a zero Event when none exists.
func (r *Recorder) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

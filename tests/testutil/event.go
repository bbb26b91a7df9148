package testutil

import (
	"context"
	"sync"

	"github.com/faktura/backend/internal/domain/shared"
)

// EventRecorder is an event handler that keeps every event it receives.
type EventRecorder struct {
	mu         sync.Mutex
	eventTypes []string
	handled    []shared.DomainEvent
}

var _ shared.EventHandler = (*EventRecorder)(nil)

// NewEventRecorder records the given event types; none means all.
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{eventTypes: eventTypes}
}

// EventTypes returns the event types this handler subscribes to.
func (r *EventRecorder) EventTypes() []string {
	return r.eventTypes
}

// Handle records ev.
func (r *EventRecorder) Handle(_ context.Context, ev shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handled = append(r.handled, ev)
	return nil
}

// OfType returns the recorded events of eventType in arrival order.
func (r *EventRecorder) OfType(eventType string) []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shared.DomainEvent
	for _, ev := range r.handled {
		if ev.EventType() == eventType {
			out = append(out, ev)
		}
	}
	return out
}

// Count returns the number of recorded events.
func (r *EventRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handled)
}

package events

import (
	"github.com/kelindar/event"
)

// Bus wraps a kelindar/event dispatcher for in-process event broadcasting.
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{dispatcher: event.NewDispatcher()}
}

// Publish publishes an event to all subscribers.
// Usage: bus.Publish(PublisherCreatedEvent{...})
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	// Type switch so the generic Publish sees the concrete type.
	switch e := ev.(type) {
	case PublisherCreatedEvent:
		event.Publish(b.dispatcher, e)
	case OutputUnmappedEvent:
		event.Publish(b.dispatcher, e)
	case ControlAppliedEvent:
		event.Publish(b.dispatcher, e)
	case RegionOfInterestEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function; the handler's
// parameter type selects which events it receives. Returns an unsubscribe
// function.
// Usage: unsub := bus.Subscribe(func(e PublisherCreatedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(PublisherCreatedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(OutputUnmappedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(ControlAppliedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(RegionOfInterestEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

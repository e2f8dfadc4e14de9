package events

import (
	"github.com/kelindar/event"
)

// Bus wraps kelindar/event dispatcher for event broadcasting
type Bus struct {
	dispatcher *event.Dispatcher
}

// New creates a new event bus
func New() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
// A nil bus drops the event.
func (b *Bus) Publish(ev Event) {
	if b == nil {
		return
	}
	switch e := ev.(type) {
	case StateChangedEvent:
		event.Publish(b.dispatcher, e)
	case FrameWrittenEvent:
		event.Publish(b.dispatcher, e)
	case WriteFailedEvent:
		event.Publish(b.dispatcher, e)
	case PersistFailedEvent:
		event.Publish(b.dispatcher, e)
	case LogEntryEvent:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe subscribes to events with a handler function.
// The handler type selects the event type; unknown handler types get a
// no-op unsubscribe function.
// Usage: unsub := bus.Subscribe(func(e StateChangedEvent) { ... })
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(StateChangedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(FrameWrittenEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(WriteFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(PersistFailedEvent):
		return event.Subscribe(b.dispatcher, h)
	case func(LogEntryEvent):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

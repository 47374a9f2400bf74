package reveal

import "time"

// EventType identifies a reveal lifecycle event.
type EventType uint8

const (
	EventReveal   EventType = iota // registration entered revealed
	EventReset                     // registration entered reset
	EventComplete                  // keyframe animation or spring finished
)

var eventTypeNames = [...]string{"reveal", "reset", "complete"}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event describes one lifecycle transition of a registration.
type Event struct {
	Type      EventType
	ElementID uint32
	Effect    string
	State     State
	// Time is the host clock when the event was emitted.
	Time time.Duration
}

// EventSink receives lifecycle events, for example to forward them into an
// ECS world. EmitEvent is called synchronously from the engine's callbacks.
type EventSink interface {
	EmitEvent(Event)
}

// WithEventSink forwards lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

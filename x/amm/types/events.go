package types

// Event is a typed notification emitted after a completed operation.
type Event struct {
	Type       string
	Attributes []EventAttribute
}

// EventAttribute is one key/value pair of an event.
type EventAttribute struct {
	Key   string
	Value string
}

// NewEvent builds an event from a type and its attributes.
func NewEvent(eventType string, attrs ...EventAttribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// NewAttribute builds a single event attribute.
func NewAttribute(key, value string) EventAttribute {
	return EventAttribute{Key: key, Value: value}
}

// EventEmitter receives engine notifications. Implementations must not call
// back into the emitting pool; such calls are rejected by the reentrancy
// guard.
type EventEmitter interface {
	EmitEvent(event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) EmitEvent(Event) {}

// RecordingEmitter retains every emitted event, oldest first.
type RecordingEmitter struct {
	Events []Event
}

func (r *RecordingEmitter) EmitEvent(event Event) {
	r.Events = append(r.Events, event)
}

// Attribute returns the value of the named attribute and whether it was set.
func (e Event) Attribute(key string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

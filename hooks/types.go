package hooks

import "fmt"

// EventKind is a closed, source-specific category of webhook event, e.g.
// "traffic_spike" for GoSquared or "createCard" for Trello.
type EventKind string

// Outcome is the three-way result of the dispatch policy.
type Outcome int

const (
	// Forward means the event was rendered and should be delivered.
	Forward Outcome = iota
	// Ignore means the event is valid but deliberately dropped. The webhook
	// sender still sees success.
	Ignore
	// Reject means the event could not be handled; the sender sees an error.
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Forward:
		return "forward"
	case Ignore:
		return "ignore"
	case Reject:
		return "reject"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Message is a rendered notification ready for the delivery gateway.
type Message struct {
	Topic string
	Body  string
	Label string
}

// Decision is the tagged outcome of handling one webhook. Message is set for
// Forward, Reason for Reject; Ignore carries neither.
type Decision struct {
	Outcome Outcome
	Message *Message
	Reason  error
}

func forward(m *Message) Decision { return Decision{Outcome: Forward, Message: m} }
func ignore() Decision            { return Decision{Outcome: Ignore} }
func reject(err error) Decision   { return Decision{Outcome: Reject, Reason: err} }

// UnrecognizedEventTypeError means classification found no match, or an
// explicit type hint was not in the source's known-kinds table.
type UnrecognizedEventTypeError struct {
	Type string
}

func (e *UnrecognizedEventTypeError) Error() string {
	if e.Type == "" {
		return "unrecognized event: payload matches no known event type"
	}
	return fmt.Sprintf("unsupported event type %q", e.Type)
}

// ValidationError means a required field is missing or has the wrong type.
// Field is the full dotted path from the payload root.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: field %q %s", e.Field, e.Reason)
}

// MalformedPayloadError means the raw body could not be interpreted as a
// generic payload mapping at all.
type MalformedPayloadError struct {
	Err error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed payload: %s", e.Err)
}

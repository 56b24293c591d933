// Package domain contains the building blocks of a bounded context.
// This file defines Messages: immutable records identified by all their field values.
// Messages never reference a bus, a repository or any transport.
package domain

import "reflect"

type Kind int

const (
	KindCommand Kind = iota + 1
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Message is either a Command or an Event.
// Concrete messages are value structs embedding BaseCommand or BaseEvent,
// so == compares every field.
type Message interface {
	MessageKind() Kind
}

// Event is a fact that already happened, routed to zero or more handlers.
type Event interface {
	Message
	isEvent()
}

// BaseEvent marks a struct as an Event.
type BaseEvent struct{}

func (BaseEvent) MessageKind() Kind { return KindEvent }
func (BaseEvent) isEvent() {}

// MessageName returns the package qualified type name used for routing logs.
func MessageName(m Message) string {
	if m == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(m)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

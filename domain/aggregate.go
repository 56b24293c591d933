// Package domain contains the building blocks of a bounded context.
// This file defines Aggregates: the only externally mutable entrypoint into a
// consistency boundary. Every mutation may record events; recording never dispatches.
package domain

import "slices"

type Aggregate interface {
	Entity
	// AddEvent appends an event to the tail of the pending log.
	AddEvent(event Event)
	// Events returns a copy of the pending log, oldest first.
	Events() []Event
	// DrainEvents empties the pending log and returns what it held, oldest first.
	DrainEvents() []Event
}

// AggregateRoot owns the pending-events log. Embed it by value in an aggregate
// struct; each instance starts with its own empty log.
type AggregateRoot struct {
	events []Event
}

func (r *AggregateRoot) AddEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *AggregateRoot) Events() []Event {
	return slices.Clone(r.events)
}

func (r *AggregateRoot) DrainEvents() []Event {
	drained := r.events
	r.events = nil
	return drained
}

//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"cosmokit/domain"
)

// EventCollector drains the events raised by the aggregates a unit of work has seen.
// Every unit of work satisfies it.
type EventCollector interface {
	CollectNewEvents() []domain.Event
}

// Observer is notified of every dispatched message and every handler outcome.
// It must not block: it runs inside the dispatch loop.
type Observer interface {
	Dispatched(msg domain.Message)
	Handled(msg domain.Message, handler string, err error)
}

// EventSink consumes events for read models and side effects.
type EventSink interface {
	Consume(ctx context.Context, event domain.Event) error
}

// Notifications sends a message to a destination outside the process.
type Notifications interface {
	Send(ctx context.Context, destination, message string) error
}

type IMessageBus interface {
	Handle(ctx context.Context, msg domain.Message) error
}

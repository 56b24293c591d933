// Package runtime dispatches commands and events to their handlers.
// It orchestrates the system without containing business logic or domain rules.
package runtime

import (
	"context"
	"cosmokit/contract"
	"cosmokit/domain"
	"cosmokit/errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

// MessageBus runs the dispatch loop of one unit of work.
//
// Handle is not safe for concurrent use: the loop shares the unit of work's
// seen set with every handler it calls. Wrap the bus in a SerialBus to share it.
type MessageBus struct {
	log         *slog.Logger
	collector   contract.EventCollector
	registry    *Registry
	observer    contract.Observer
	recover     bool
	maxMessages int
}

type Option func(*MessageBus)

// WithRecover turns handler panics into ErrHandlerPanic errors. Enabled by default.
func WithRecover(enabled bool) Option {
	return func(b *MessageBus) { b.recover = enabled }
}

// WithMaxMessages bounds the number of messages one Handle call may dispatch.
// Zero or less means unbounded.
func WithMaxMessages(limit int) Option {
	return func(b *MessageBus) { b.maxMessages = limit }
}

func WithObserver(observer contract.Observer) Option {
	return func(b *MessageBus) { b.observer = observer }
}

func NewMessageBus(log *slog.Logger, collector contract.EventCollector, registry *Registry, opts ...Option) *MessageBus {
	bus := &MessageBus{
		log:       log,
		collector: collector,
		registry:  registry,
		observer:  noopObserver{},
		recover:   true,
	}
	for _, opt := range opts {
		opt(bus)
	}
	return bus
}

// Handle dispatches msg, then every event collected after each successful
// handler, oldest first, until the queue is empty.
//
// Event handler failures are logged and skipped. The first command failure
// stops the loop and is returned as a *errors.HandlerError; messages still
// queued are dropped.
func (b *MessageBus) Handle(ctx context.Context, msg domain.Message) error {
	queue := []domain.Message{msg}
	dispatched := 0
	for len(queue) > 0 {
		if b.maxMessages > 0 && dispatched >= b.maxMessages {
			b.log.Error("Dispatch limit reached", "limit", b.maxMessages, "pending", len(queue))
			return fmt.Errorf("%w: %d messages dispatched, %d pending", errors.ErrDispatchLimit, dispatched, len(queue))
		}
		current := queue[0]
		queue = queue[1:]
		dispatched++

		switch m := current.(type) {
		case domain.Event:
			b.observer.Dispatched(m)
			queue = append(queue, b.handleEvent(ctx, m)...)
		case domain.Command:
			b.observer.Dispatched(m)
			raised, err := b.handleCommand(ctx, m)
			if err != nil {
				return err
			}
			queue = append(queue, raised...)
		default:
			b.log.Error("Unroutable message", "type", fmt.Sprintf("%T", current))
			return fmt.Errorf("%w: %T is neither a command nor an event", errors.ErrUnroutableMessage, current)
		}
	}
	return nil
}

func (b *MessageBus) handleEvent(ctx context.Context, event domain.Event) []domain.Message {
	name := domain.MessageName(event)
	var raised []domain.Message
	for _, handler := range b.registry.eventHandlers(event) {
		b.log.Debug("Handling event", "event", name, "handler", handler.name)
		err := b.call(func() error { return handler.handle(ctx, event) })
		if err != nil {
			herr := &errors.HandlerError{Message: name, Handler: handler.name, Err: err}
			b.log.Error("Exception handling event", "event", name, "handler", handler.name, "error", err)
			b.observer.Handled(event, handler.name, herr)
			continue
		}
		b.observer.Handled(event, handler.name, nil)
		raised = append(raised, b.collect()...)
	}
	return raised
}

func (b *MessageBus) handleCommand(ctx context.Context, cmd domain.Command) ([]domain.Message, error) {
	name := domain.MessageName(cmd)
	handler, ok := b.registry.commandHandler(cmd)
	if !ok {
		herr := &errors.HandlerError{Message: name, Err: errors.ErrNoCommandHandler}
		b.log.Error("Exception handling command", "command", name, "error", herr)
		b.observer.Handled(cmd, "", herr)
		return nil, herr
	}
	b.log.Debug("Handling command", "command", name, "handler", handler.name)
	if err := b.call(func() error { return handler.handle(ctx, cmd) }); err != nil {
		herr := &errors.HandlerError{Message: name, Handler: handler.name, Err: err}
		b.log.Error("Exception handling command", "command", name, "handler", handler.name, "error", err)
		b.observer.Handled(cmd, handler.name, herr)
		return nil, herr
	}
	b.observer.Handled(cmd, handler.name, nil)
	return b.collect(), nil
}

// call runs one handler, turning a panic into ErrHandlerPanic when recovery is on.
func (b *MessageBus) call(handle func() error) (err error) {
	if b.recover {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", errors.ErrHandlerPanic, r)
			}
		}()
	}
	return handle()
}

func (b *MessageBus) collect() []domain.Message {
	return lo.Map(b.collector.CollectNewEvents(), func(evt domain.Event, _ int) domain.Message {
		return evt
	})
}

type noopObserver struct{}

func (noopObserver) Dispatched(domain.Message) {}
func (noopObserver) Handled(domain.Message, string, error) {}

var _ contract.IMessageBus = (*MessageBus)(nil)

package runtime

import (
	"context"
	"cosmokit/domain"
	"cosmokit/errors"
	"fmt"
	"reflect"
	"sync"
)

// EventHandler reacts to one event. Several may be registered per event type.
type EventHandler func(ctx context.Context, event domain.Event) error

// CommandHandler executes one command. Exactly one is registered per command type.
type CommandHandler func(ctx context.Context, cmd domain.Command) error

type eventHandler struct {
	name   string
	handle EventHandler
}

type commandHandler struct {
	name   string
	handle CommandHandler
}

// Registry maps concrete message types to their handlers.
// Handlers are looked up by exact type: a command sent as a pointer
// does not match a handler registered for its value type.
type Registry struct {
	mu       sync.RWMutex
	events   map[reflect.Type][]eventHandler
	commands map[reflect.Type]commandHandler
}

func NewRegistry() *Registry {
	return &Registry{
		events:   make(map[reflect.Type][]eventHandler),
		commands: make(map[reflect.Type]commandHandler),
	}
}

// AddEventHandler appends handle to the handlers of the type of event.
// Handlers run in registration order.
func (r *Registry) AddEventHandler(event domain.Event, name string, handle EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := reflect.TypeOf(event)
	r.events[t] = append(r.events[t], eventHandler{name: name, handle: handle})
}

// SetCommandHandler registers the single handler of the type of cmd.
func (r *Registry) SetCommandHandler(cmd domain.Command, name string, handle CommandHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := reflect.TypeOf(cmd)
	if existing, ok := r.commands[t]; ok {
		return fmt.Errorf("%w: %s already handled by %s", errors.ErrDuplicateCommandHandler, t, existing.name)
	}
	r.commands[t] = commandHandler{name: name, handle: handle}
	return nil
}

// OnEvent registers a handler typed on E.
func OnEvent[E domain.Event](r *Registry, name string, handle func(ctx context.Context, event E) error) {
	var zero E
	r.AddEventHandler(zero, name, func(ctx context.Context, event domain.Event) error {
		return handle(ctx, event.(E))
	})
}

// OnCommand registers the handler of C.
func OnCommand[C domain.Command](r *Registry, name string, handle func(ctx context.Context, cmd C) error) error {
	var zero C
	return r.SetCommandHandler(zero, name, func(ctx context.Context, cmd domain.Command) error {
		return handle(ctx, cmd.(C))
	})
}

func (r *Registry) eventHandlers(event domain.Event) []eventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handlers := r.events[reflect.TypeOf(event)]
	// Handlers registered while dispatching only apply to the next event.
	return handlers[:len(handlers):len(handlers)]
}

func (r *Registry) commandHandler(cmd domain.Command) (commandHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.commands[reflect.TypeOf(cmd)]
	return handler, ok
}

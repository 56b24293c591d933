package runtime

import (
	"context"
	"cosmokit/contract"
	"cosmokit/domain"
	"sync"
)

// SerialBus lets several goroutines share one bus by running Handle calls one at a time.
type SerialBus struct {
	mu  sync.Mutex
	bus contract.IMessageBus
}

func NewSerialBus(bus contract.IMessageBus) *SerialBus {
	return &SerialBus{bus: bus}
}

func (s *SerialBus) Handle(ctx context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bus.Handle(ctx, msg)
}

var _ contract.IMessageBus = (*SerialBus)(nil)

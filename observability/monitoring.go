package observability

import (
	"cosmokit/contract"
	"cosmokit/domain"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DispatchStats is a point-in-time copy of the bus counters.
type DispatchStats struct {
	Dispatched      uint64        `json:"dispatched"`
	CommandsHandled uint64        `json:"commands_handled"`
	CommandFailures uint64        `json:"command_failures"`
	EventsHandled   uint64        `json:"events_handled"`
	EventFailures   uint64        `json:"event_failures"`
	Uptime          time.Duration `json:"uptime"`
	LastFailure     string        `json:"last_failure,omitempty"`
}

// MonitoringManager counts what the message bus does.
// It is safe for concurrent use and never blocks the dispatch loop.
type MonitoringManager struct {
	log         *slog.Logger
	mu          sync.RWMutex
	lastFailure string
	startedAt   time.Time

	dispatched      uint64
	commandsHandled uint64
	commandFailures uint64
	eventsHandled   uint64
	eventFailures   uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, startedAt: time.Now()}
}

func (mm *MonitoringManager) Dispatched(domain.Message) {
	atomic.AddUint64(&mm.dispatched, 1)
}

// Handled records one handler outcome. A handler named "" is a missing command handler.
func (mm *MonitoringManager) Handled(msg domain.Message, handler string, err error) {
	isCommand := msg != nil && msg.MessageKind() == domain.KindCommand
	switch {
	case err == nil && isCommand:
		atomic.AddUint64(&mm.commandsHandled, 1)
	case err == nil:
		atomic.AddUint64(&mm.eventsHandled, 1)
	case isCommand:
		atomic.AddUint64(&mm.commandFailures, 1)
	default:
		atomic.AddUint64(&mm.eventFailures, 1)
	}
	if err != nil {
		mm.mu.Lock()
		mm.lastFailure = err.Error()
		mm.mu.Unlock()
	}
}

func (mm *MonitoringManager) GetLatest() DispatchStats {
	mm.mu.RLock()
	lastFailure := mm.lastFailure
	mm.mu.RUnlock()
	return DispatchStats{
		Dispatched:      atomic.LoadUint64(&mm.dispatched),
		CommandsHandled: atomic.LoadUint64(&mm.commandsHandled),
		CommandFailures: atomic.LoadUint64(&mm.commandFailures),
		EventsHandled:   atomic.LoadUint64(&mm.eventsHandled),
		EventFailures:   atomic.LoadUint64(&mm.eventFailures),
		Uptime:          time.Since(mm.startedAt),
		LastFailure:     lastFailure,
	}
}

// LogSummary writes the current counters at info level.
func (mm *MonitoringManager) LogSummary() {
	stats := mm.GetLatest()
	mm.log.Info("📊 Dispatch stats",
		"dispatched", stats.Dispatched,
		"commands_handled", stats.CommandsHandled,
		"command_failures", stats.CommandFailures,
		"events_handled", stats.EventsHandled,
		"event_failures", stats.EventFailures,
		"uptime", stats.Uptime.Round(time.Millisecond),
	)
}

var _ contract.Observer = (*MonitoringManager)(nil)

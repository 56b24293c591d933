package sink

import (
	"context"
	"cosmokit/contract"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Notice is one message handed to LogNotifications.
type Notice struct {
	Destination string
	Message     string
}

// LogNotifications delivers notifications to the log and keeps them for inspection.
// Destinations marked unreachable fail, the way a mail relay would.
type LogNotifications struct {
	log         *slog.Logger
	mu          sync.Mutex
	unreachable []string
	sent        []Notice
}

func NewLogNotifications(log *slog.Logger, unreachable ...string) *LogNotifications {
	return &LogNotifications{log: log, unreachable: unreachable}
}

func (n *LogNotifications) Send(_ context.Context, destination, message string) error {
	if lo.Contains(n.unreachable, destination) {
		return fmt.Errorf("destination %s unreachable", destination)
	}
	n.mu.Lock()
	n.sent = append(n.sent, Notice{Destination: destination, Message: message})
	n.mu.Unlock()
	n.log.Info("📨 Notification sent", "destination", destination, "message", message)
	return nil
}

func (n *LogNotifications) Sent() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notice(nil), n.sent...)
}

var _ contract.Notifications = (*LogNotifications)(nil)

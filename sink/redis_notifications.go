package sink

import (
	"context"
	"cosmokit/contract"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const notificationsKeyPrefix = "notifications:"

// RedisNotifications queues each notification on the Redis list of its destination,
// where a mailer process picks it up.
type RedisNotifications struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisNotifications(client *redis.Client, log *slog.Logger) *RedisNotifications {
	return &RedisNotifications{client: client, log: log}
}

func (n *RedisNotifications) Send(ctx context.Context, destination, message string) error {
	if err := n.client.RPush(ctx, NotificationsKey(destination), message).Err(); err != nil {
		return fmt.Errorf("queueing notification for %s: %w", destination, err)
	}
	n.log.Debug("Notification queued", "destination", destination)
	return nil
}

// Pending returns the notifications queued for destination, oldest first.
func (n *RedisNotifications) Pending(ctx context.Context, destination string) ([]string, error) {
	return n.client.LRange(ctx, NotificationsKey(destination), 0, -1).Result()
}

func NotificationsKey(destination string) string {
	return notificationsKeyPrefix + destination
}

var _ contract.Notifications = (*RedisNotifications)(nil)

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventDeduplicator implements ports.EventDeduplicator using Redis SET NX.
type EventDeduplicator struct {
	client *goredis.Client
	prefix string
}

func NewEventDeduplicator(client *goredis.Client) *EventDeduplicator {
	return &EventDeduplicator{
		client: client,
		prefix: keyPrefix + "event:",
	}
}

// FirstSeen atomically records eventID under source.
// Returns true the first time, false for a redelivery within ttl.
func (d *EventDeduplicator) FirstSeen(ctx context.Context, source, eventID string, ttl time.Duration) (bool, error) {
	key := d.prefix + source + ":" + eventID
	result, err := d.client.SetArgs(ctx, key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis event dedup: %w", err)
	}
	return result == "OK", nil
}

// Forget deletes the record of eventID under source.
func (d *EventDeduplicator) Forget(ctx context.Context, source, eventID string) error {
	if err := d.client.Del(ctx, d.prefix+source+":"+eventID).Err(); err != nil {
		return fmt.Errorf("redis event forget: %w", err)
	}
	return nil
}

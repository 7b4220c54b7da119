package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements ports.Locker with SET NX PX plus an owner token.
type Locker struct {
	client *goredis.Client
	prefix string
}

func NewLocker(client *goredis.Client) *Locker {
	return &Locker{client: client, prefix: keyPrefix + "lock:"}
}

// TryLock returns a nil release func when another holder has key.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	_, err := l.client.SetArgs(ctx, redisKey, token, goredis.SetArgs{Mode: "NX", TTL: ttl}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}

	release := func() {
		// The caller's context may already be done when the work finishes.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
	}
	return release, nil
}

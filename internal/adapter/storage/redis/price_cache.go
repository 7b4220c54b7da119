package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// PriceCache implements ports.PriceCache. Quotes are stored as JSON per token.
type PriceCache struct {
	client *goredis.Client
	prefix string
}

func NewPriceCache(client *goredis.Client) *PriceCache {
	return &PriceCache{client: client, prefix: keyPrefix + "price:last:"}
}

func (c *PriceCache) SetLastKnown(ctx context.Context, quote *domain.PriceQuote, ttl time.Duration) error {
	b, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+string(quote.Token), b, ttl).Err(); err != nil {
		return fmt.Errorf("redis price set: %w", err)
	}
	return nil
}

// GetLastKnown returns nil, nil when no quote is cached.
func (c *PriceCache) GetLastKnown(ctx context.Context, token domain.Token) (*domain.PriceQuote, error) {
	b, err := c.client.Get(ctx, c.prefix+string(token)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis price get: %w", err)
	}
	var q domain.PriceQuote
	if err := json.Unmarshal(b, &q); err != nil {
		return nil, fmt.Errorf("decode cached quote for %s: %w", token, err)
	}
	return &q, nil
}

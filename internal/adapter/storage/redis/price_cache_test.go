package redis

import (
	"context"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceCache_RoundTrip(t *testing.T) {
	s, client := newTestClient(t)
	cache := NewPriceCache(client)
	ctx := context.Background()

	got, err := cache.GetLastKnown(ctx, domain.TokenSUI)
	require.NoError(t, err)
	assert.Nil(t, got)

	q := &domain.PriceQuote{
		Token:     domain.TokenSUI,
		Price:     decimal.RequireFromString("5234.12"),
		Change24h: decimal.RequireFromString("-1.5"),
		Source:    domain.PriceSourcePrimary,
		FetchedAt: time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.SetLastKnown(ctx, q, time.Hour))

	got, err = cache.GetLastKnown(ctx, domain.TokenSUI)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, q.Price.Equal(got.Price))
	assert.Equal(t, domain.PriceSourcePrimary, got.Source)
	assert.True(t, q.FetchedAt.Equal(got.FetchedAt))

	s.FastForward(2 * time.Hour)
	got, err = cache.GetLastKnown(ctx, domain.TokenSUI)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPriceCache_CorruptEntry(t *testing.T) {
	s, client := newTestClient(t)
	require.NoError(t, s.Set("ramp:price:last:USDC", "not-json"))

	_, err := NewPriceCache(client).GetLastKnown(context.Background(), domain.TokenUSDC)
	assert.Error(t, err)
}

func TestLocker_TryLock(t *testing.T) {
	s, client := newTestClient(t)
	locker := NewLocker(client)
	ctx := context.Background()

	release, err := locker.TryLock(ctx, "treasury-monitor", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, release)

	second, err := locker.TryLock(ctx, "treasury-monitor", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, second, "lock is held")

	release()
	assert.False(t, s.Exists("ramp:lock:treasury-monitor"))

	third, err := locker.TryLock(ctx, "treasury-monitor", time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, third)
}

func TestLocker_ReleaseDoesNotStealNewHolder(t *testing.T) {
	s, client := newTestClient(t)
	locker := NewLocker(client)
	ctx := context.Background()

	release, err := locker.TryLock(ctx, "treasury-monitor", time.Second)
	require.NoError(t, err)
	s.FastForward(2 * time.Second)

	other, err := locker.TryLock(ctx, "treasury-monitor", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, other)

	release()
	assert.True(t, s.Exists("ramp:lock:treasury-monitor"), "stale release must not delete the new holder's lock")
}

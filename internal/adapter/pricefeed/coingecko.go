// Package pricefeed holds the live NGN price sources.
package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ramp-gateway/internal/adapter/upstream"
	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// coinGeckoIDs maps tokens to CoinGecko asset ids.
var coinGeckoIDs = map[domain.Token]string{
	domain.TokenSUI:  "sui",
	domain.TokenUSDC: "usd-coin",
	domain.TokenUSDT: "tether",
}

// CoinGecko is the primary feed (simple/price endpoint).
type CoinGecko struct {
	baseURL string
	client  *upstream.Client
	limiter *rate.Limiter
	now     func() time.Time
}

// NewCoinGecko rate-limits calls to perSecond requests (the public tier is strict).
func NewCoinGecko(baseURL string, client *upstream.Client, perSecond float64) *CoinGecko {
	if perSecond <= 0 {
		perSecond = 0.5
	}
	return &CoinGecko{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 2),
		now:     time.Now,
	}
}

func (c *CoinGecko) Source() domain.PriceSource { return domain.PriceSourcePrimary }

func (c *CoinGecko) GetPrice(ctx context.Context, token domain.Token) (*domain.PriceQuote, error) {
	id, ok := coinGeckoIDs[token]
	if !ok {
		return nil, fmt.Errorf("coingecko: unsupported token %s", token)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("coingecko: rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "ngn")
	q.Set("include_24hr_change", "true")

	var resp map[string]struct {
		NGN       decimal.Decimal `json:"ngn"`
		Change24h decimal.Decimal `json:"ngn_24h_change"`
	}
	if err := c.client.DoJSON(ctx, http.MethodGet, c.baseURL+"/simple/price?"+q.Encode(), nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}

	entry, ok := resp[id]
	if !ok || !entry.NGN.IsPositive() {
		return nil, fmt.Errorf("coingecko: no NGN price for %s", token)
	}
	return &domain.PriceQuote{
		Token:     token,
		Price:     entry.NGN,
		Change24h: entry.Change24h.Round(4),
		Source:    domain.PriceSourcePrimary,
		FetchedAt: c.now().UTC(),
	}, nil
}

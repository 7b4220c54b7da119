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
)

// Coinbase is the secondary feed (exchange-rates endpoint). It reports no 24h change.
type Coinbase struct {
	baseURL string
	client  *upstream.Client
	now     func() time.Time
}

func NewCoinbase(baseURL string, client *upstream.Client) *Coinbase {
	return &Coinbase{baseURL: strings.TrimRight(baseURL, "/"), client: client, now: time.Now}
}

func (c *Coinbase) Source() domain.PriceSource { return domain.PriceSourceSecondary }

func (c *Coinbase) GetPrice(ctx context.Context, token domain.Token) (*domain.PriceQuote, error) {
	var resp struct {
		Data struct {
			Currency string            `json:"currency"`
			Rates    map[string]string `json:"rates"`
		} `json:"data"`
	}
	endpoint := c.baseURL + "/exchange-rates?currency=" + url.QueryEscape(string(token))
	if err := c.client.DoJSON(ctx, http.MethodGet, endpoint, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("coinbase: %w", err)
	}

	raw, ok := resp.Data.Rates[domain.FiatNGN]
	if !ok {
		return nil, fmt.Errorf("coinbase: no NGN rate for %s", token)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || !price.IsPositive() {
		return nil, fmt.Errorf("coinbase: invalid NGN rate %q for %s", raw, token)
	}
	return &domain.PriceQuote{
		Token:     token,
		Price:     price,
		Change24h: decimal.Zero,
		Source:    domain.PriceSourceSecondary,
		FetchedAt: c.now().UTC(),
	}, nil
}

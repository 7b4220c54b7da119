package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// FallbackPriceService implements ports.PriceService with the chain
// live feeds (in order) -> last known quote -> static table.
type FallbackPriceService struct {
	feeds        []ports.PriceFeed
	cache        ports.PriceCache
	static       map[domain.Token]decimal.Decimal
	timeout      time.Duration
	lastKnownTTL time.Duration
	log          zerolog.Logger
}

func NewPriceService(
	feeds []ports.PriceFeed,
	cache ports.PriceCache,
	static map[domain.Token]decimal.Decimal,
	timeout time.Duration,
	lastKnownTTL time.Duration,
	log zerolog.Logger,
) *FallbackPriceService {
	return &FallbackPriceService{
		feeds:        feeds,
		cache:        cache,
		static:       static,
		timeout:      timeout,
		lastKnownTTL: lastKnownTTL,
		log:          log,
	}
}

// GetQuote returns an NGN quote for token. Degraded quotes are tagged by Source.
func (s *FallbackPriceService) GetQuote(ctx context.Context, token domain.Token) (*domain.PriceQuote, error) {
	if !token.IsSupported() {
		return nil, apperror.ErrUnsupportedToken(string(token))
	}

	var errs []error
	for _, feed := range s.feeds {
		q, err := s.fetch(ctx, feed, token)
		if err != nil {
			dep := "price_" + string(feed.Source())
			metrics.UpstreamFailures.WithLabelValues(dep).Inc()
			s.log.Warn().Err(err).Str("token", string(token)).Str("source", string(feed.Source())).Msg("price feed failed")
			errs = append(errs, err)
			continue
		}
		if s.cache != nil {
			if err := s.cache.SetLastKnown(ctx, q, s.lastKnownTTL); err != nil {
				s.log.Warn().Err(err).Str("token", string(token)).Msg("caching last known price failed")
			}
		}
		return q, nil
	}

	if s.cache != nil {
		last, err := s.cache.GetLastKnown(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Str("token", string(token)).Msg("reading last known price failed")
		}
		if last != nil && last.Price.IsPositive() {
			last.Source = domain.PriceSourceLastKnown
			return last, nil
		}
	}

	if price, ok := s.static[token]; ok && price.IsPositive() {
		s.log.Warn().Str("token", string(token)).Msg("serving static fallback price")
		return &domain.PriceQuote{
			Token:     token,
			Price:     price,
			Change24h: decimal.Zero,
			Source:    domain.PriceSourceFallback,
			FetchedAt: time.Now().UTC(),
		}, nil
	}

	return nil, apperror.ErrPriceUnavailable(errors.Join(errs...))
}

func (s *FallbackPriceService) fetch(ctx context.Context, feed ports.PriceFeed, token domain.Token) (*domain.PriceQuote, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	q, err := feed.GetPrice(callCtx, token)
	metrics.UpstreamDuration.WithLabelValues("price_" + string(feed.Source())).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	if q == nil || !q.Price.IsPositive() {
		return nil, fmt.Errorf("%s returned no usable price for %s", feed.Source(), token)
	}
	q.Token = token
	q.Source = feed.Source()
	return q, nil
}

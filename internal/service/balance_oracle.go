package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/metrics"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var errNegativeBalance = errors.New("rpc returned a negative balance")

// CoinTypes maps every supported token to its Move coin type.
func CoinTypes(usdcCoinType, usdtCoinType string) map[domain.Token]string {
	return map[domain.Token]string{
		domain.TokenSUI:  domain.NativeCoinType,
		domain.TokenUSDC: usdcCoinType,
		domain.TokenUSDT: usdtCoinType,
	}
}

// ChainBalanceOracle implements ports.BalanceOracle on top of a ChainClient.
type ChainBalanceOracle struct {
	chain     ports.ChainClient
	coinTypes map[domain.Token]string
	timeout   time.Duration
	log       zerolog.Logger
}

// NewBalanceOracle creates an oracle. timeout bounds every RPC call.
func NewBalanceOracle(chain ports.ChainClient, coinTypes map[domain.Token]string, timeout time.Duration, log zerolog.Logger) *ChainBalanceOracle {
	return &ChainBalanceOracle{
		chain:     chain,
		coinTypes: coinTypes,
		timeout:   timeout,
		log:       log,
	}
}

// GetBalance reads one token. Upstream errors and timeouts produce an
// unknown reading, never a zero one.
func (o *ChainBalanceOracle) GetBalance(ctx context.Context, address string, token domain.Token) domain.BalanceReading {
	coinType, ok := o.coinTypes[token]
	if !token.IsSupported() || !ok || coinType == "" {
		return domain.UnknownBalance(token, fmt.Errorf("unsupported token %q", token))
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	minor, err := o.chain.GetBalance(callCtx, address, coinType)
	if err == nil && minor.IsNegative() {
		err = errNegativeBalance
	}
	if err != nil {
		metrics.BalanceReadings.WithLabelValues(string(token), "unknown").Inc()
		o.log.Warn().Err(err).
			Str("address", address).
			Str("token", string(token)).
			Msg("balance lookup failed, reading marked unknown")
		return domain.UnknownBalance(token, err)
	}

	metrics.BalanceReadings.WithLabelValues(string(token), "known").Inc()
	return domain.KnownBalance(token, token.FromMinorUnits(minor))
}

// GetAllBalances fetches every supported token concurrently. One failing
// lookup never cancels or blocks the others.
func (o *ChainBalanceOracle) GetAllBalances(ctx context.Context, address string) domain.WalletBalances {
	readings := make([]domain.BalanceReading, len(domain.SupportedTokens))

	var g errgroup.Group
	for i, token := range domain.SupportedTokens {
		g.Go(func() error {
			readings[i] = o.GetBalance(ctx, address, token)
			return nil
		})
	}
	_ = g.Wait()

	wb := domain.WalletBalances{
		Address:   address,
		Readings:  make(map[domain.Token]domain.BalanceReading, len(readings)),
		FetchedAt: time.Now().UTC(),
	}
	for _, r := range readings {
		wb.Readings[r.Token] = r
	}

	if missing := wb.Unavailable(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, t := range missing {
			names[i] = string(t)
		}
		o.log.Warn().Str("address", address).Strs("unavailable", names).Msg("partial balance snapshot")
	}
	return wb
}

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports/mocks"
	"ramp-gateway/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	testAddress  = "0x7a1c"
	testUSDCType = "0xusdc::usdc::USDC"
	testUSDTType = "0xusdt::usdt::USDT"
)

func newTestOracle(t *testing.T, timeout time.Duration) (*ChainBalanceOracle, *mocks.MockChainClient) {
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockChainClient(ctrl)
	return NewBalanceOracle(chain, CoinTypes(testUSDCType, testUSDTType), timeout, zerolog.Nop()), chain
}

func TestBalanceOracle_GetBalance_ConvertsMinorUnits(t *testing.T) {
	oracle, chain := newTestOracle(t, time.Second)

	chain.EXPECT().GetBalance(gomock.Any(), testAddress, domain.NativeCoinType).Return(dec("2500000000"), nil)
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDCType).Return(dec("0"), nil)

	sui := oracle.GetBalance(context.Background(), testAddress, domain.TokenSUI)
	assert.Equal(t, domain.BalancePositive, sui.State)
	assert.True(t, dec("2.5").Equal(sui.Amount))

	usdc := oracle.GetBalance(context.Background(), testAddress, domain.TokenUSDC)
	assert.Equal(t, domain.BalanceZero, usdc.State)
}

func TestBalanceOracle_GetBalance_ErrorIsUnknownNotZero(t *testing.T) {
	oracle, chain := newTestOracle(t, time.Second)
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDTType).Return(decimal.Zero, errors.New("502 bad gateway"))

	r := oracle.GetBalance(context.Background(), testAddress, domain.TokenUSDT)

	assert.Equal(t, domain.BalanceUnknown, r.State)
	assert.False(t, r.Known())
	assert.Contains(t, r.Error, "502")
}

func TestBalanceOracle_GetBalance_NegativeIsUnknown(t *testing.T) {
	oracle, chain := newTestOracle(t, time.Second)
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, domain.NativeCoinType).Return(dec("-1"), nil)

	r := oracle.GetBalance(context.Background(), testAddress, domain.TokenSUI)
	assert.Equal(t, domain.BalanceUnknown, r.State)
}

func TestBalanceOracle_GetBalance_UnsupportedToken(t *testing.T) {
	oracle, _ := newTestOracle(t, time.Second)

	r := oracle.GetBalance(context.Background(), testAddress, domain.Token("DOGE"))
	assert.Equal(t, domain.BalanceUnknown, r.State)
	assert.Contains(t, r.Error, "unsupported")
}

func TestBalanceOracle_GetBalance_Timeout(t *testing.T) {
	oracle, chain := newTestOracle(t, 20*time.Millisecond)
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, domain.NativeCoinType).
		DoAndReturn(func(ctx context.Context, _, _ string) (decimal.Decimal, error) {
			<-ctx.Done()
			return decimal.Zero, ctx.Err()
		})

	r := oracle.GetBalance(context.Background(), testAddress, domain.TokenSUI)
	assert.Equal(t, domain.BalanceUnknown, r.State)
}

func TestBalanceOracle_GetAllBalances_PartialFailureDoesNotBlockOthers(t *testing.T) {
	oracle, chain := newTestOracle(t, 50*time.Millisecond)

	var inFlight, peak int32
	track := func() func() {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		return func() { atomic.AddInt32(&inFlight, -1) }
	}

	chain.EXPECT().GetBalance(gomock.Any(), testAddress, domain.NativeCoinType).
		DoAndReturn(func(ctx context.Context, _, _ string) (decimal.Decimal, error) {
			defer track()()
			time.Sleep(10 * time.Millisecond)
			return dec("10000000000"), nil
		})
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDCType).
		DoAndReturn(func(ctx context.Context, _, _ string) (decimal.Decimal, error) {
			defer track()()
			<-ctx.Done()
			return decimal.Zero, ctx.Err()
		})
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDTType).
		DoAndReturn(func(ctx context.Context, _, _ string) (decimal.Decimal, error) {
			defer track()()
			time.Sleep(10 * time.Millisecond)
			return dec("5000000"), nil
		})

	wb := oracle.GetAllBalances(context.Background(), testAddress)

	assert.Equal(t, testAddress, wb.Address)
	assert.True(t, dec("10").Equal(wb.Amount(domain.TokenSUI)))
	assert.True(t, dec("5").Equal(wb.Amount(domain.TokenUSDT)))
	assert.Equal(t, domain.BalanceUnknown, wb.Get(domain.TokenUSDC).State)
	assert.Equal(t, []domain.Token{domain.TokenUSDC}, wb.Unavailable())
	assert.Greater(t, atomic.LoadInt32(&peak), int32(1), "lookups should run concurrently")
}

func TestBalanceOracle_GetBalance_CountsReadingsNotUpstreamCalls(t *testing.T) {
	oracle, chain := newTestOracle(t, time.Second)

	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDTType).Return(dec("1000000"), nil)
	chain.EXPECT().GetBalance(gomock.Any(), testAddress, testUSDTType).Return(decimal.Zero, errors.New("rpc down"))

	known := testutil.ToFloat64(metrics.BalanceReadings.WithLabelValues("USDT", "known"))
	unknown := testutil.ToFloat64(metrics.BalanceReadings.WithLabelValues("USDT", "unknown"))
	upstreamFailures := testutil.ToFloat64(metrics.UpstreamFailures.WithLabelValues("sui_rpc"))

	oracle.GetBalance(context.Background(), testAddress, domain.TokenUSDT)
	oracle.GetBalance(context.Background(), testAddress, domain.TokenUSDT)

	assert.Equal(t, known+1, testutil.ToFloat64(metrics.BalanceReadings.WithLabelValues("USDT", "known")))
	assert.Equal(t, unknown+1, testutil.ToFloat64(metrics.BalanceReadings.WithLabelValues("USDT", "unknown")))
	// The upstream client owns transport metrics.
	assert.Equal(t, upstreamFailures, testutil.ToFloat64(metrics.UpstreamFailures.WithLabelValues("sui_rpc")))
}

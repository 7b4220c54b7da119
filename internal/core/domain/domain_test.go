package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestTransactionStatus_CanTransitionTo(t *testing.T) {
	all := []TransactionStatus{TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusCompleted, TransactionStatusFailed}
	allowed := map[[2]TransactionStatus]bool{
		{TransactionStatusPending, TransactionStatusConfirmed}:   true,
		{TransactionStatusPending, TransactionStatusFailed}:      true,
		{TransactionStatusConfirmed, TransactionStatusCompleted}: true,
		{TransactionStatusConfirmed, TransactionStatusFailed}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				assert.Equal(t, allowed[[2]TransactionStatus{from, to}], from.CanTransitionTo(to))
			})
		}
	}
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status TransactionStatus
		want   bool
	}{
		{TransactionStatusPending, false},
		{TransactionStatusConfirmed, false},
		{TransactionStatusCompleted, true},
		{TransactionStatusFailed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestTransaction_Transition(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("confirm stamps confirmed_at", func(t *testing.T) {
		tx := &Transaction{Status: TransactionStatusPending}
		require.NoError(t, tx.Transition(TransactionStatusConfirmed, now, ""))
		assert.Equal(t, TransactionStatusConfirmed, tx.Status)
		require.NotNil(t, tx.ConfirmedAt)
		assert.Equal(t, now, *tx.ConfirmedAt)
		assert.Nil(t, tx.FailureReason)
	})

	t.Run("fail records reason", func(t *testing.T) {
		tx := &Transaction{Status: TransactionStatusConfirmed}
		require.NoError(t, tx.Transition(TransactionStatusFailed, now, "insufficient treasury"))
		require.NotNil(t, tx.FailureReason)
		assert.Equal(t, "insufficient treasury", *tx.FailureReason)
		require.NotNil(t, tx.FailedAt)
	})

	t.Run("terminal rejects and leaves status", func(t *testing.T) {
		tx := &Transaction{Status: TransactionStatusCompleted}
		err := tx.Transition(TransactionStatusFailed, now, "late failure")

		var te *TransitionError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, TransactionStatusCompleted, te.From)
		assert.Equal(t, TransactionStatusFailed, te.To)
		assert.Equal(t, TransactionStatusCompleted, tx.Status)
		assert.Nil(t, tx.FailureReason)
	})

	t.Run("pending cannot skip to completed", func(t *testing.T) {
		tx := &Transaction{Status: TransactionStatusPending}
		assert.Error(t, tx.Transition(TransactionStatusCompleted, now, ""))
	})
}

func TestTransaction_Clone(t *testing.T) {
	tx := &Transaction{Status: TransactionStatusPending, Bank: &BankDetails{BankCode: "058"}}
	c := tx.Clone()
	c.Status = TransactionStatusFailed
	c.Bank.BankCode = "011"

	assert.Equal(t, TransactionStatusPending, tx.Status)
	assert.Equal(t, "058", tx.Bank.BankCode)
}

func TestAmountsConsistent(t *testing.T) {
	tests := []struct {
		name        string
		token, fiat string
		rate        string
		want        bool
	}{
		{"exact", "2", "3200", "1600", true},
		{"within 1%", "2", "3230", "1600", true},
		{"just outside", "2", "3300", "1600", false},
		{"underpaid", "2", "3000", "1600", false},
		{"zero expected zero fiat", "0", "0", "1600", true},
		{"zero expected nonzero fiat", "0", "10", "1600", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountsConsistent(d(tt.token), d(tt.fiat), d(tt.rate), d("0.01")))
		})
	}
}

func TestBankDetails_Validate(t *testing.T) {
	tests := []struct {
		name string
		bank BankDetails
		want error
	}{
		{"valid", BankDetails{AccountNumber: "0123456789", BankCode: "058", AccountName: "Ada Obi"}, nil},
		{"short account", BankDetails{AccountNumber: "12345", BankCode: "058", AccountName: "Ada"}, ErrInvalidAccountNumber},
		{"letters in account", BankDetails{AccountNumber: "01234567AB", BankCode: "058", AccountName: "Ada"}, ErrInvalidAccountNumber},
		{"missing bank code", BankDetails{AccountNumber: "0123456789", AccountName: "Ada"}, ErrMissingBankCode},
		{"missing name", BankDetails{AccountNumber: "0123456789", BankCode: "058"}, ErrMissingAccountName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bank.Validate())
		})
	}
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "******6789", MaskAccountNumber("0123456789"))
	assert.Equal(t, "***", MaskAccountNumber("123"))
}

func TestToken(t *testing.T) {
	tok, ok := ParseToken(" usdc ")
	assert.True(t, ok)
	assert.Equal(t, TokenUSDC, tok)

	_, ok = ParseToken("DOGE")
	assert.False(t, ok)

	assert.True(t, TokenSUI.IsNative())
	assert.False(t, TokenUSDT.IsNative())
	assert.Equal(t, int32(9), TokenSUI.Decimals())
	assert.Equal(t, int32(6), TokenUSDC.Decimals())

	assert.True(t, d("1.5").Equal(TokenSUI.FromMinorUnits(d("1500000000"))))
	assert.True(t, d("3").Equal(TokenUSDC.FromMinorUnits(d("3000000"))))
	assert.True(t, d("1234567").Equal(TokenUSDT.ToMinorUnits(d("1.2345679"))))

	assert.True(t, TokenSUI.FitsMinorUnits(d("2.000000001")))
	assert.True(t, TokenSUI.FitsMinorUnits(d("2.00000000000")))
	assert.False(t, TokenSUI.FitsMinorUnits(d("2.0000000009")))
	assert.True(t, TokenUSDC.FitsMinorUnits(d("3.5")))
	assert.False(t, TokenUSDC.FitsMinorUnits(d("3.0000001")))

	assert.Equal(t, FeeKindNativeTransfer, FeeKindForTransfer(TokenSUI))
	assert.Equal(t, FeeKindTokenTransfer, FeeKindForTransfer(TokenUSDC))
}

func TestWalletBalances(t *testing.T) {
	w := WalletBalances{Readings: map[Token]BalanceReading{
		TokenSUI:  KnownBalance(TokenSUI, d("10")),
		TokenUSDC: KnownBalance(TokenUSDC, decimal.Zero),
		TokenUSDT: UnknownBalance(TokenUSDT, errors.New("rpc timeout")),
	}}

	assert.Equal(t, BalancePositive, w.Get(TokenSUI).State)
	assert.Equal(t, BalanceZero, w.Get(TokenUSDC).State)
	assert.Equal(t, BalanceUnknown, w.Get(TokenUSDT).State)
	assert.Equal(t, "rpc timeout", w.Get(TokenUSDT).Error)
	assert.True(t, w.Amount(TokenUSDT).IsZero())
	assert.Equal(t, []Token{TokenUSDT}, w.Unavailable())
	assert.False(t, w.Complete())

	empty := WalletBalances{}
	assert.Equal(t, SupportedTokens, empty.Unavailable())
}

func TestBalanceState_MarshalText(t *testing.T) {
	b, err := BalanceUnknown.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "UNKNOWN", string(b))
	assert.Equal(t, "ZERO", BalanceZero.String())
}

func TestTransactionLimits_Validate(t *testing.T) {
	limits := DefaultTransactionLimits()
	require.NoError(t, limits.Validate())

	tl, ok := limits.Lookup(DirectionOffRamp, TokenSUI)
	require.True(t, ok)
	assert.True(t, d("0.1").Equal(tl.Amount.Min))
	assert.True(t, d("1000").Equal(tl.Amount.Max))

	_, ok = limits.Lookup(Direction("SIDEWAYS"), TokenSUI)
	assert.False(t, ok)

	broken := DefaultTransactionLimits()
	broken.OffRamp[TokenUSDC] = TokenLimit{Amount: LimitRange{Min: d("5"), Max: d("5")}, Fiat: broken.OffRamp[TokenUSDC].Fiat}
	assert.Error(t, broken.Validate())

	missing := DefaultTransactionLimits()
	delete(missing.OnRamp, TokenUSDT)
	assert.ErrorIs(t, missing.Validate(), ErrIncompleteLimits)
}

func TestLimitRange_Validate(t *testing.T) {
	assert.NoError(t, LimitRange{Min: d("0"), Max: d("1")}.Validate())
	assert.Error(t, LimitRange{Min: d("-1"), Max: d("1")}.Validate())
	assert.Error(t, LimitRange{Min: d("2"), Max: d("1")}.Validate())
}

func TestThresholds_Classify(t *testing.T) {
	th := Thresholds{Critical: d("50"), Low: d("100"), High: d("1000")}
	require.NoError(t, th.Validate())

	tests := []struct {
		balance  string
		breach   bool
		typ      AlertType
		severity AlertSeverity
	}{
		{"40", true, AlertTypeLowBalance, SeverityCritical},
		{"50", true, AlertTypeLowBalance, SeverityHigh},
		{"99.99", true, AlertTypeLowBalance, SeverityHigh},
		{"100", false, "", ""},
		{"1000", false, "", ""},
		{"1000.01", true, AlertTypeHighBalance, SeverityLow},
	}
	for _, tt := range tests {
		t.Run(tt.balance, func(t *testing.T) {
			b, ok := th.Classify(d(tt.balance))
			assert.Equal(t, tt.breach, ok)
			assert.Equal(t, tt.typ, b.Type)
			assert.Equal(t, tt.severity, b.Severity)
		})
	}

	assert.Error(t, Thresholds{Critical: d("100"), Low: d("50"), High: d("1000")}.Validate())
}

func TestTreasuryAlert_Acknowledge(t *testing.T) {
	a := &TreasuryAlert{Type: AlertTypeLowBalance, Currency: "SUI", Severity: SeverityCritical}
	now := time.Now()

	assert.True(t, a.Acknowledge("0xadmin", now))
	assert.False(t, a.Acknowledge("0xother", now.Add(time.Minute)))
	assert.Equal(t, "0xadmin", *a.AcknowledgedBy)
	assert.Equal(t, AlertKey{Type: AlertTypeLowBalance, Currency: "SUI", Severity: SeverityCritical}, a.Key())
}

func TestNewRefundFor(t *testing.T) {
	now := time.Now()
	on := &Transaction{ID: uuid.New(), Direction: DirectionOnRamp, Token: TokenUSDC, TokenAmount: d("3"), FiatAmount: d("4800"), FiatCurrency: FiatNGN}
	r := NewRefundFor(on, "credit failed", now)
	assert.Equal(t, "NGN", r.Asset)
	assert.True(t, d("4800").Equal(r.Amount))
	assert.Equal(t, RefundStatusPending, r.Status)

	off := &Transaction{ID: uuid.New(), Direction: DirectionOffRamp, Token: TokenSUI, TokenAmount: d("2"), FiatAmount: d("10400"), FiatCurrency: FiatNGN}
	r = NewRefundFor(off, "payout failed", now)
	assert.Equal(t, "SUI", r.Asset)
	assert.True(t, d("2").Equal(r.Amount))
	assert.Equal(t, off.ID, r.TransactionID)
}

func TestPriceQuote_Degraded(t *testing.T) {
	assert.False(t, PriceQuote{Source: PriceSourcePrimary}.Degraded())
	assert.False(t, PriceQuote{Source: PriceSourceSecondary}.Degraded())
	assert.True(t, PriceQuote{Source: PriceSourceLastKnown}.Degraded())
	assert.True(t, PriceQuote{Source: PriceSourceFallback}.Degraded())
}

func TestBuildIdempotencyKey(t *testing.T) {
	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	key := BuildIdempotencyKey(ActionConfirmPayment, id, "PSK-001")
	assert.Equal(t, "CONFIRM_PAYMENT:550e8400-e29b-41d4-a716-446655440000:PSK-001", key)
}

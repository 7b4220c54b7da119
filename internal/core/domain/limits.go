package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LimitRange is an inclusive [Min, Max] bound.
type LimitRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Validate enforces min >= 0 and max > min.
func (r LimitRange) Validate() error {
	if r.Min.IsNegative() {
		return fmt.Errorf("min %s must not be negative", r.Min)
	}
	if !r.Max.GreaterThan(r.Min) {
		return fmt.Errorf("max %s must be greater than min %s", r.Max, r.Min)
	}
	return nil
}

// TokenLimit bounds one (direction, token) pair in token units and in fiat.
type TokenLimit struct {
	Amount LimitRange `json:"amount"`
	Fiat   LimitRange `json:"fiat"`
}

// DirectionLimits holds the limits of every token for one direction.
type DirectionLimits map[Token]TokenLimit

// TransactionLimits is the versioned limits configuration. Only one version is active.
type TransactionLimits struct {
	Version   int             `json:"version"`
	IsActive  bool            `json:"is_active"`
	OnRamp    DirectionLimits `json:"on_ramp"`
	OffRamp   DirectionLimits `json:"off_ramp"`
	UpdatedBy string          `json:"updated_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// Lookup returns the limits for (direction, token).
func (l *TransactionLimits) Lookup(direction Direction, token Token) (TokenLimit, bool) {
	var dl DirectionLimits
	switch direction {
	case DirectionOnRamp:
		dl = l.OnRamp
	case DirectionOffRamp:
		dl = l.OffRamp
	default:
		return TokenLimit{}, false
	}
	tl, ok := dl[token]
	return tl, ok
}

var ErrIncompleteLimits = errors.New("limits must cover every supported token in both directions")

// Validate checks every range and that each supported token is configured for both directions.
func (l *TransactionLimits) Validate() error {
	for _, dir := range []Direction{DirectionOnRamp, DirectionOffRamp} {
		for _, token := range SupportedTokens {
			tl, ok := l.Lookup(dir, token)
			if !ok {
				return fmt.Errorf("%w: missing %s %s", ErrIncompleteLimits, dir.Label(), token)
			}
			if err := tl.Amount.Validate(); err != nil {
				return fmt.Errorf("%s %s amount: %w", dir.Label(), token, err)
			}
			if err := tl.Fiat.Validate(); err != nil {
				return fmt.Errorf("%s %s fiat: %w", dir.Label(), token, err)
			}
		}
	}
	return nil
}

func rng(min, max string) LimitRange {
	return LimitRange{Min: decimal.RequireFromString(min), Max: decimal.RequireFromString(max)}
}

// DefaultTransactionLimits is the version-1 configuration seeded on first start.
func DefaultTransactionLimits() TransactionLimits {
	fiat := rng("1000", "5000000")
	return TransactionLimits{
		Version:  1,
		IsActive: true,
		OnRamp: DirectionLimits{
			TokenSUI:  {Amount: rng("0.1", "1000"), Fiat: fiat},
			TokenUSDC: {Amount: rng("1", "3000"), Fiat: fiat},
			TokenUSDT: {Amount: rng("1", "3000"), Fiat: fiat},
		},
		OffRamp: DirectionLimits{
			TokenSUI:  {Amount: rng("0.1", "1000"), Fiat: fiat},
			TokenUSDC: {Amount: rng("1", "3000"), Fiat: fiat},
			TokenUSDT: {Amount: rng("1", "3000"), Fiat: fiat},
		},
		UpdatedBy: "system",
	}
}

// LimitCheckResult is the outcome of a limit validation. Warnings never affect IsValid.
type LimitCheckResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

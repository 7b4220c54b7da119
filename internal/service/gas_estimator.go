package service

import (
	"fmt"

	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Base network fees in SUI, before the safety buffer. Observed gas for a
// simple transfer sits well under these; they are ceilings, not medians.
var baseFees = map[domain.FeeKind]decimal.Decimal{
	domain.FeeKindNativeTransfer: decimal.RequireFromString("0.01"),
	domain.FeeKindTokenTransfer:  decimal.RequireFromString("0.01"),
	domain.FeeKindOnRampCredit:   decimal.RequireFromString("0.02"),
}

// gasSafetyBuffer is applied on top of every base fee (50%).
var gasSafetyBuffer = decimal.RequireFromString("1.5")

// FixedGasEstimator implements ports.GasEstimator from the constant table above.
type FixedGasEstimator struct{}

func NewGasEstimator() *FixedGasEstimator {
	return &FixedGasEstimator{}
}

// EstimateFee returns the buffered fee in SUI for kind.
func (FixedGasEstimator) EstimateFee(kind domain.FeeKind) (decimal.Decimal, error) {
	base, ok := baseFees[kind]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown fee kind %q", kind)
	}
	return base.Mul(gasSafetyBuffer), nil
}

package service

import (
	"fmt"

	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// nearMaxRatio is the fraction of the maximum above which a warning is raised.
var nearMaxRatio = decimal.RequireFromString("0.8")

// LimitValidatorImpl implements ports.LimitValidator. It is pure.
type LimitValidatorImpl struct{}

func NewLimitValidator() *LimitValidatorImpl {
	return &LimitValidatorImpl{}
}

// Validate checks amount (and fiatAmount when given) against the limits for
// (direction, token). Structural problems such as a non-positive amount or an
// unsupported token are errors even when limits are disabled.
func (LimitValidatorImpl) Validate(
	limits *domain.TransactionLimits,
	direction domain.Direction,
	token domain.Token,
	amount decimal.Decimal,
	fiatAmount *decimal.Decimal,
) domain.LimitCheckResult {
	res := domain.LimitCheckResult{Errors: []string{}, Warnings: []string{}}

	if !amount.IsPositive() {
		res.Errors = append(res.Errors, fmt.Sprintf("Amount must be greater than zero, got %s", amount))
	}
	if !direction.IsValid() {
		res.Errors = append(res.Errors, fmt.Sprintf("Unsupported direction: %s", direction))
	}
	if !token.IsSupported() {
		res.Errors = append(res.Errors, fmt.Sprintf("Unsupported token: %s", token))
	}
	if fiatAmount != nil && !fiatAmount.IsPositive() {
		res.Errors = append(res.Errors, fmt.Sprintf("Fiat amount must be greater than zero, got %s", *fiatAmount))
	}
	if limits == nil {
		res.Errors = append(res.Errors, "Transaction limits are not configured")
	}
	if len(res.Errors) > 0 {
		return res
	}

	if !limits.IsActive {
		res.IsValid = true
		res.Warnings = append(res.Warnings, "Transaction limits are disabled")
		return res
	}

	tl, ok := limits.Lookup(direction, token)
	if !ok {
		res.Errors = append(res.Errors, fmt.Sprintf("No %s limits configured for %s", direction.Label(), token))
		return res
	}

	label := direction.Label()
	checkRange(&res, tl.Amount, amount,
		fmt.Sprintf("%s amount for %s", label, token), string(token))
	if fiatAmount != nil {
		checkRange(&res, tl.Fiat, *fiatAmount,
			fmt.Sprintf("%s fiat amount", label), domain.FiatNGN)
	}

	res.IsValid = len(res.Errors) == 0
	return res
}

func checkRange(res *domain.LimitCheckResult, r domain.LimitRange, v decimal.Decimal, what, unit string) {
	switch {
	case v.LessThan(r.Min):
		res.Errors = append(res.Errors, fmt.Sprintf("Minimum %s is %s %s", what, r.Min, unit))
	case v.GreaterThan(r.Max):
		res.Errors = append(res.Errors, fmt.Sprintf("Maximum %s is %s %s", what, r.Max, unit))
	case v.GreaterThan(r.Max.Mul(nearMaxRatio)):
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s is close to the maximum of %s %s", capitalize(what), r.Max, unit))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
	"ramp-gateway/pkg/apperror"
	"ramp-gateway/pkg/metrics"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// WalletValidationEngine implements ports.WalletValidator. It is the only
// place balance sufficiency is decided; every caller goes through it.
type WalletValidationEngine struct {
	oracle    ports.BalanceOracle
	gas       ports.GasEstimator
	tolerance decimal.Decimal
	log       zerolog.Logger
}

// NewWalletValidator creates the engine. tolerance is the relative error
// accepted between a paid fiat amount and token × rate.
func NewWalletValidator(oracle ports.BalanceOracle, gas ports.GasEstimator, tolerance decimal.Decimal, log zerolog.Logger) *WalletValidationEngine {
	return &WalletValidationEngine{
		oracle:    oracle,
		gas:       gas,
		tolerance: tolerance,
		log:       log,
	}
}

// ValidateForOffRamp decides whether address can fund an off-ramp of amount token
// plus gas. It fails closed when a balance it needs could not be read.
func (e *WalletValidationEngine) ValidateForOffRamp(ctx context.Context, address string, token domain.Token, amount decimal.Decimal) *ports.WalletValidationResult {
	res := &ports.WalletValidationResult{
		Required: ports.RequiredFunds{Token: token, TokenAmount: amount},
	}

	switch {
	case !token.IsSupported():
		return e.fail(res, "unsupported", apperror.ErrUnsupportedToken(string(token)))
	case !amount.IsPositive():
		return e.fail(res, "invalid", apperror.ErrInvalidAmount("Amount must be greater than zero"))
	case !token.FitsMinorUnits(amount):
		return e.fail(res, "invalid", apperror.ErrInvalidAmount(fmt.Sprintf("%s amounts allow at most %d decimal places", token, token.Decimals())))
	case strings.TrimSpace(address) == "":
		return e.fail(res, "invalid", apperror.Validation("Wallet address is required"))
	}

	var (
		balances domain.WalletBalances
		gasFee   decimal.Decimal
		gasErr   error
		g        errgroup.Group
	)
	g.Go(func() error {
		balances = e.oracle.GetAllBalances(ctx, address)
		return nil
	})
	g.Go(func() error {
		gasFee, gasErr = e.gas.EstimateFee(domain.FeeKindForTransfer(token))
		return nil
	})
	_ = g.Wait()

	res.Balances = balances
	if gasErr != nil {
		return e.fail(res, "error", apperror.InternalError(fmt.Errorf("estimate gas: %w", gasErr)))
	}
	res.Required.GasFee = gasFee

	needed := []domain.Token{domain.TokenSUI}
	if !token.IsNative() {
		needed = []domain.Token{token, domain.TokenSUI}
	}
	for _, t := range needed {
		if r := balances.Get(t); !r.Known() {
			e.log.Warn().
				Str("address", address).
				Str("token", string(token)).
				Str("unavailable", string(t)).
				Str("cause", r.Error).
				Msg("balance unverifiable, failing closed")
			return e.fail(res, "unverifiable", apperror.ErrBalanceUnverifiable(fmt.Errorf("%s balance unavailable: %s", t, r.Error)))
		}
	}

	native := balances.Amount(domain.TokenSUI)
	if token.IsNative() {
		required := amount.Add(gasFee)
		res.Required.NativeTotal = required
		if native.LessThan(required) {
			return e.fail(res, "insufficient_combined", apperror.ErrInsufficientCombined(fmt.Sprintf(
				"Insufficient SUI balance for swap and gas fee. Required: %s SUI (%s + %s gas), available: %s SUI",
				required, amount, gasFee, native)))
		}
	} else {
		res.Required.NativeTotal = gasFee
		held := balances.Amount(token)
		if held.LessThan(amount) {
			return e.fail(res, "insufficient_token", apperror.ErrInsufficientToken(fmt.Sprintf(
				"Insufficient %s balance. Required: %s %s, available: %s %s",
				token, amount, token, held, token)))
		}
		if native.LessThan(gasFee) {
			return e.fail(res, "insufficient_gas", apperror.ErrInsufficientGas(fmt.Sprintf(
				"Insufficient SUI for gas fee. Required: %s SUI, available: %s SUI",
				gasFee, native)))
		}
	}

	res.CanProceed = true
	metrics.WalletValidations.WithLabelValues(string(token), "ok").Inc()
	return res
}

func (e *WalletValidationEngine) fail(res *ports.WalletValidationResult, outcome string, err *apperror.AppError) *ports.WalletValidationResult {
	res.CanProceed = false
	res.ErrorMessage = err.Message
	res.Err = err
	metrics.WalletValidations.WithLabelValues(string(res.Required.Token), outcome).Inc()
	return res
}

var errNotOnRamp = errors.New("payment confirmation applies to on-ramp transactions only")

// ValidateOnRampPayment checks that paidFiat matches tokenAmount × exchangeRate within tolerance.
func (e *WalletValidationEngine) ValidateOnRampPayment(tx *domain.Transaction, paidFiat decimal.Decimal) error {
	if tx.Direction != domain.DirectionOnRamp {
		return apperror.Validation(errNotOnRamp.Error())
	}
	if !paidFiat.IsPositive() {
		return apperror.ErrInvalidAmount("Paid amount must be greater than zero")
	}
	if !domain.AmountsConsistent(tx.TokenAmount, paidFiat, tx.ExchangeRate, e.tolerance) {
		expected := tx.TokenAmount.Mul(tx.ExchangeRate).Round(2)
		return apperror.ErrPaymentMismatch(fmt.Sprintf(
			"Paid amount %s %s does not match expected %s %s",
			paidFiat, tx.FiatCurrency, expected, tx.FiatCurrency))
	}
	return nil
}

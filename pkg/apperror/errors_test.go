package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New(KindFunds, "FUND_001", "Insufficient USDC balance", http.StatusPaymentRequired),
			expected: "[FUND_001] Insufficient USDC balance",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap(KindInternal, "SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap(KindInternal, "SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, New(KindValidation, "VAL_001", "test", http.StatusBadRequest).Unwrap())
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("lifecycle: %w", ErrInvalidTransition("COMPLETED", "FAILED"))

	assert.True(t, IsKind(wrapped, KindState))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(errors.New("plain"), KindState))
}

func TestErrorFamilies(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		kind       Kind
		httpStatus int
	}{
		{"Validation", Validation("bad"), "VAL_001", KindValidation, 400},
		{"InvalidAmount", ErrInvalidAmount("bad amount"), "VAL_002", KindValidation, 400},
		{"UnsupportedToken", ErrUnsupportedToken("DOGE"), "VAL_003", KindValidation, 400},
		{"LimitViolation", ErrLimitViolation([]string{"too big"}), "VAL_004", KindValidation, 422},
		{"MalformedBank", ErrMalformedBankDetails("bad bank"), "VAL_005", KindValidation, 400},
		{"PaymentMismatch", ErrPaymentMismatch("mismatch"), "VAL_006", KindValidation, 422},
		{"InsufficientToken", ErrInsufficientToken("x"), "FUND_001", KindFunds, 402},
		{"InsufficientGas", ErrInsufficientGas("x"), "FUND_002", KindFunds, 402},
		{"InsufficientCombined", ErrInsufficientCombined("x"), "FUND_003", KindFunds, 402},
		{"InsufficientTreasury", ErrInsufficientTreasury("x"), "FUND_004", KindFunds, 402},
		{"BalanceUnverifiable", ErrBalanceUnverifiable(nil), "UPS_001", KindUpstream, 503},
		{"GatewayUnavailable", ErrPaymentGatewayUnavailable(nil), "UPS_002", KindUpstream, 503},
		{"PriceUnavailable", ErrPriceUnavailable(nil), "UPS_003", KindUpstream, 503},
		{"TokenCreditPending", ErrTokenCreditPending(nil), "UPS_004", KindUpstream, 503},
		{"InvalidTransition", ErrInvalidTransition("FAILED", "COMPLETED"), "STATE_001", KindState, 409},
		{"ConcurrentModification", ErrConcurrentModification(), "STATE_002", KindState, 409},
		{"ReferenceUsed", ErrReferenceAlreadyUsed("ref"), "STATE_003", KindState, 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_001", KindAuthorization, 401},
		{"Forbidden", ErrForbidden("CONFIRM_PAYMENT"), "AUTH_002", KindAuthorization, 403},
		{"NotFound", ErrNotFound("Transaction"), "NF_001", KindNotFound, 404},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", KindValidation, 429},
		{"Internal", InternalError(errors.New("boom")), "SYS_001", KindInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestShortfallDetails(t *testing.T) {
	assert.Equal(t, "token", ErrInsufficientToken("x").Details["shortfall"])
	assert.Equal(t, "gas", ErrInsufficientGas("x").Details["shortfall"])
	assert.Equal(t, "token_and_gas", ErrInsufficientCombined("x").Details["shortfall"])
}

func TestErrLimitViolation_UsesFirstErrorAsMessage(t *testing.T) {
	err := ErrLimitViolation([]string{"Minimum off-ramp amount for SUI is 0.1", "Minimum off-ramp fiat amount is 1000 NGN"})

	assert.Equal(t, "Minimum off-ramp amount for SUI is 0.1", err.Message)
	assert.Len(t, err.Details["errors"], 2)
}

package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind groups error codes into the families callers branch on.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindFunds         Kind = "INSUFFICIENT_FUNDS"
	KindUpstream      Kind = "UPSTREAM_UNAVAILABLE"
	KindState         Kind = "STATE_CONFLICT"
	KindAuthorization Kind = "AUTHORIZATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindInternal      Kind = "INTERNAL"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string         `json:"error_code"`
	Kind       Kind           `json:"kind"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	HTTPStatus int            `json:"-"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns the error with an extra machine-readable detail attached.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(kind Kind, code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(kind Kind, code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Kind:       kind,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// ---- Validation (VAL) ----

// Validation returns a generic client-correctable error.
func Validation(message string) *AppError {
	return New(KindValidation, "VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidAmount(message string) *AppError {
	return New(KindValidation, "VAL_002", message, http.StatusBadRequest)
}

func ErrUnsupportedToken(token string) *AppError {
	return New(KindValidation, "VAL_003", fmt.Sprintf("Unsupported token: %s", token), http.StatusBadRequest).
		WithDetail("token", token)
}

// ErrLimitViolation carries every violated bound so the UI can render them all.
func ErrLimitViolation(errs []string) *AppError {
	msg := "Transaction limits violated"
	if len(errs) > 0 {
		msg = errs[0]
	}
	return New(KindValidation, "VAL_004", msg, http.StatusUnprocessableEntity).
		WithDetail("errors", errs)
}

func ErrMalformedBankDetails(message string) *AppError {
	return New(KindValidation, "VAL_005", message, http.StatusBadRequest)
}

func ErrPaymentMismatch(message string) *AppError {
	return New(KindValidation, "VAL_006", message, http.StatusUnprocessableEntity)
}

func ErrInvalidLimits(message string) *AppError {
	return New(KindValidation, "VAL_007", message, http.StatusBadRequest)
}

// ---- Insufficient funds (FUND) ----

func ErrInsufficientToken(message string) *AppError {
	return New(KindFunds, "FUND_001", message, http.StatusPaymentRequired).WithDetail("shortfall", "token")
}

func ErrInsufficientGas(message string) *AppError {
	return New(KindFunds, "FUND_002", message, http.StatusPaymentRequired).WithDetail("shortfall", "gas")
}

func ErrInsufficientCombined(message string) *AppError {
	return New(KindFunds, "FUND_003", message, http.StatusPaymentRequired).WithDetail("shortfall", "token_and_gas")
}

func ErrInsufficientTreasury(message string) *AppError {
	return New(KindFunds, "FUND_004", message, http.StatusPaymentRequired).WithDetail("shortfall", "treasury")
}

// ---- Upstream (UPS) ----

func ErrBalanceUnverifiable(err error) *AppError {
	return Wrap(KindUpstream, "UPS_001", "Unable to verify wallet balance. Please try again shortly.", http.StatusServiceUnavailable, err)
}

func ErrPaymentGatewayUnavailable(err error) *AppError {
	return Wrap(KindUpstream, "UPS_002", "Payment gateway is unavailable", http.StatusServiceUnavailable, err)
}

func ErrPriceUnavailable(err error) *AppError {
	return Wrap(KindUpstream, "UPS_003", "Price feed is unavailable", http.StatusServiceUnavailable, err)
}

// ErrTokenCreditPending means the signer did not report an outcome. The
// transaction stays CONFIRMED and the credit is re-issued on the next confirmation.
func ErrTokenCreditPending(err error) *AppError {
	return Wrap(KindUpstream, "UPS_004", "Token credit outcome is not yet known", http.StatusServiceUnavailable, err)
}

// ---- State (STATE) ----

func ErrInvalidTransition(from, to string) *AppError {
	return New(KindState, "STATE_001", fmt.Sprintf("Transaction cannot move from %s to %s", from, to), http.StatusConflict).
		WithDetail("from", from).
		WithDetail("to", to)
}

func ErrConcurrentModification() *AppError {
	return New(KindState, "STATE_002", "Transaction was modified by another action", http.StatusConflict)
}

func ErrReferenceAlreadyUsed(reference string) *AppError {
	return New(KindState, "STATE_003", "Payment reference has already been applied to another transaction", http.StatusConflict).
		WithDetail("reference", reference)
}

// ---- Authorization (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(KindAuthorization, "AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrForbidden(action string) *AppError {
	return New(KindAuthorization, "AUTH_002", "Caller is not authorized for this action", http.StatusForbidden).
		WithDetail("action", action)
}

func ErrInvalidWebhookSignature() *AppError {
	return New(KindAuthorization, "AUTH_003", "Invalid webhook signature", http.StatusUnauthorized)
}

// ---- Lookup / rate limiting ----

func ErrNotFound(entity string) *AppError {
	return New(KindNotFound, "NF_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrRateLimitExceeded() *AppError {
	return New(KindValidation, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(KindInternal, "SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap(KindInternal, "SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(KindInternal, "SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

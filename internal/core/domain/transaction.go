package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle state of a swap.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

var allowedTransitions = map[TransactionStatus][]TransactionStatus{
	TransactionStatusPending:   {TransactionStatusConfirmed, TransactionStatusFailed},
	TransactionStatusConfirmed: {TransactionStatusCompleted, TransactionStatusFailed},
}

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusConfirmed, TransactionStatusCompleted, TransactionStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is permitted.
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionError is returned when a status change is not allowed by the state machine.
type TransitionError struct {
	From TransactionStatus
	To   TransactionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// ErrVersionConflict is returned by repositories when an update lost an optimistic-lock race.
var ErrVersionConflict = errors.New("transaction version conflict")

// ErrDuplicateReference is returned when a payment proof or chain digest is already recorded on another transaction.
var ErrDuplicateReference = errors.New("reference already recorded on another transaction")

var (
	ErrInvalidAccountNumber = errors.New("account number must be exactly 10 digits")
	ErrMissingBankCode      = errors.New("bank code is required")
	ErrMissingAccountName   = errors.New("account name is required")
)

var (
	nubanPattern    = regexp.MustCompile(`^[0-9]{10}$`)
	bankCodePattern = regexp.MustCompile(`^[0-9A-Za-z]{3,10}$`)
)

// BankDetails is the payout destination of an off-ramp. AccountNumber only
// lives in memory; storage keeps the encrypted and masked forms.
type BankDetails struct {
	AccountNumber       string `json:"-"`
	AccountNumberMasked string `json:"account_number"`
	BankCode            string `json:"bank_code"`
	BankName            string `json:"bank_name,omitempty"`
	AccountName         string `json:"account_name"`
}

// Validate checks the NUBAN format and required fields.
func (b BankDetails) Validate() error {
	if !nubanPattern.MatchString(strings.TrimSpace(b.AccountNumber)) {
		return ErrInvalidAccountNumber
	}
	if !bankCodePattern.MatchString(strings.TrimSpace(b.BankCode)) {
		return ErrMissingBankCode
	}
	if strings.TrimSpace(b.AccountName) == "" {
		return ErrMissingAccountName
	}
	return nil
}

// MaskAccountNumber keeps the last four digits.
func MaskAccountNumber(n string) string {
	if len(n) <= 4 {
		return strings.Repeat("*", len(n))
	}
	return strings.Repeat("*", len(n)-4) + n[len(n)-4:]
}

// Transaction is one on-ramp or off-ramp attempt. Rows are never deleted, only terminalized.
type Transaction struct {
	ID           uuid.UUID         `json:"id"`
	Direction    Direction         `json:"direction"`
	Status       TransactionStatus `json:"status"`
	Token        Token             `json:"token"`
	TokenAmount  decimal.Decimal   `json:"token_amount"`
	FiatAmount   decimal.Decimal   `json:"fiat_amount"`
	FiatCurrency string            `json:"fiat_currency"`
	ExchangeRate decimal.Decimal   `json:"exchange_rate"` // fiat per token at creation
	PriceSource  PriceSource       `json:"price_source"`
	UserAddress  string            `json:"user_address"`

	Bank           *BankDetails `json:"bank,omitempty"`
	BankAccountEnc string       `json:"-"`

	PaymentReference *string `json:"payment_reference,omitempty"` // on-ramp: reference the user pays against
	PaymentProof     *string `json:"payment_proof,omitempty"`     // on-ramp: gateway reference that proved payment
	ChainDigest      *string `json:"chain_digest,omitempty"`      // deposit digest (off-ramp) or credit digest (on-ramp)
	PayoutReference  *string `json:"payout_reference,omitempty"`  // off-ramp: gateway transfer code
	FailureReason    *string `json:"failure_reason,omitempty"`

	CreatedBy   string     `json:"created_by"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	FailedAt    *time.Time `json:"failed_at,omitempty"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// Transition moves the transaction to next, stamping the matching timestamp.
// reason is recorded only when next is FAILED. The receiver is left untouched on error.
func (t *Transaction) Transition(next TransactionStatus, at time.Time, reason string) error {
	if !t.Status.CanTransitionTo(next) {
		return &TransitionError{From: t.Status, To: next}
	}

	t.Status = next
	t.UpdatedAt = at
	switch next {
	case TransactionStatusConfirmed:
		t.ConfirmedAt = &at
	case TransactionStatusCompleted:
		t.CompletedAt = &at
	case TransactionStatusFailed:
		t.FailedAt = &at
		if reason == "" {
			reason = "unspecified failure"
		}
		t.FailureReason = &reason
	}
	return nil
}

// Clone returns a copy safe to mutate without touching the original.
func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.Bank != nil {
		b := *t.Bank
		c.Bank = &b
	}
	return &c
}

// AmountsConsistent reports whether fiat ≈ token × rate within a relative tolerance.
func AmountsConsistent(tokenAmount, fiatAmount, rate, tolerance decimal.Decimal) bool {
	expected := tokenAmount.Mul(rate)
	if expected.IsZero() {
		return fiatAmount.IsZero()
	}
	diff := fiatAmount.Sub(expected).Abs()
	return diff.Div(expected.Abs()).LessThanOrEqual(tolerance)
}

// StrPtr returns a pointer to s, or nil if s is empty.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns *p or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

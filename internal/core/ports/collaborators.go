package ports

import (
	"context"
	"errors"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
)

// --- Outbound collaborators ---

// ChainClient reads balances from the blockchain RPC.
type ChainClient interface {
	// GetBalance returns the total balance of coinType held by address, in minor units.
	GetBalance(ctx context.Context, address, coinType string) (decimal.Decimal, error)
}

// TokenDisburser sends treasury tokens to a user wallet.
type TokenDisburser interface {
	Credit(ctx context.Context, req CreditRequest) (*domain.Credit, error)
}

// CreditRequest describes one treasury -> user token transfer.
type CreditRequest struct {
	Address   string
	Token     domain.Token
	Amount    decimal.Decimal
	Reference string // idempotency key on the signer side
}

// Collaborator errors the lifecycle treats as final outcomes rather than outages.
var (
	ErrRecipientRejected          = errors.New("payment gateway rejected the recipient")
	ErrGatewayInsufficientBalance = errors.New("payment gateway balance is insufficient")
	ErrCreditRejected             = errors.New("token credit rejected by signer")
)

// PaymentGateway pays NGN out to bank accounts.
type PaymentGateway interface {
	CreateRecipient(ctx context.Context, bank domain.BankDetails) (string, error)
	InitiateTransfer(ctx context.Context, req TransferRequest) (*domain.Payout, error)
	GetTransferStatus(ctx context.Context, reference string) (*domain.Payout, error)
	// GetBalance returns the NGN balance available for transfers.
	GetBalance(ctx context.Context) (decimal.Decimal, error)
}

// TransferRequest describes one bank payout.
type TransferRequest struct {
	RecipientCode string
	Amount        decimal.Decimal // NGN
	Reference     string
	Reason        string
}

// PriceFeed is one upstream price API.
type PriceFeed interface {
	Source() domain.PriceSource
	GetPrice(ctx context.Context, token domain.Token) (*domain.PriceQuote, error)
}

// PriceCache keeps the last good quote per token.
type PriceCache interface {
	SetLastKnown(ctx context.Context, quote *domain.PriceQuote, ttl time.Duration) error
	GetLastKnown(ctx context.Context, token domain.Token) (*domain.PriceQuote, error)
}

// Authorizer decides whether caller holds the capability for action.
type Authorizer interface {
	IsAuthorized(ctx context.Context, caller domain.Caller, action domain.Action) bool
}

// AlertNotifier pushes created alerts to operators. Delivery is best-effort.
type AlertNotifier interface {
	Notify(ctx context.Context, alert *domain.TreasuryAlert)
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// EventDeduplicator records webhook event ids.
type EventDeduplicator interface {
	// FirstSeen atomically records eventID. Returns false if it was already recorded.
	FirstSeen(ctx context.Context, source, eventID string, ttl time.Duration) (bool, error)
	// Forget drops the record so a redelivery is processed again.
	Forget(ctx context.Context, source, eventID string) error
}

// Locker is a distributed mutex.
type Locker interface {
	// TryLock returns a release func when the lock was acquired, nil otherwise.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

package ports

import (
	"context"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService handles HMAC-SHA512 signing and verification of webhook bodies.
type SignatureService interface {
	Sign(secretKey string, payload []byte) string
	Verify(secretKey string, payload []byte, signature string) bool
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// AuditService records admin and system actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Core components ---

// BalanceOracle reads wallet holdings. It never returns an error for an
// upstream outage; the reading is marked unknown instead.
type BalanceOracle interface {
	GetBalance(ctx context.Context, address string, token domain.Token) domain.BalanceReading
	GetAllBalances(ctx context.Context, address string) domain.WalletBalances
}

// GasEstimator returns the configured network fee for a kind of transfer.
type GasEstimator interface {
	EstimateFee(kind domain.FeeKind) (decimal.Decimal, error)
}

// LimitValidator checks an amount against a limits configuration.
type LimitValidator interface {
	Validate(limits *domain.TransactionLimits, direction domain.Direction, token domain.Token, amount decimal.Decimal, fiatAmount *decimal.Decimal) domain.LimitCheckResult
}

// WalletValidator decides whether a wallet can fund an off-ramp.
type WalletValidator interface {
	ValidateForOffRamp(ctx context.Context, address string, token domain.Token, amount decimal.Decimal) *WalletValidationResult
	ValidateOnRampPayment(tx *domain.Transaction, paidFiat decimal.Decimal) error
}

// RequiredFunds is what the wallet must hold for the swap to go through.
type RequiredFunds struct {
	Token       domain.Token    `json:"token"`
	TokenAmount decimal.Decimal `json:"token_amount"`
	GasFee      decimal.Decimal `json:"gas_fee"`
	// NativeTotal is the SUI needed: amount + gas for SUI swaps, gas alone otherwise.
	NativeTotal decimal.Decimal `json:"native_total"`
}

// WalletValidationResult is the single pass/fail decision. Err carries the
// typed error behind ErrorMessage when CanProceed is false.
type WalletValidationResult struct {
	CanProceed   bool                  `json:"can_proceed"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Balances     domain.WalletBalances `json:"balances"`
	Required     RequiredFunds         `json:"required"`
	Err          error                 `json:"-"`
}

// LifecycleService owns the transaction state machine.
type LifecycleService interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*domain.Transaction, error)
	Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error)
	ConfirmOnRampPayment(ctx context.Context, req ConfirmPaymentRequest) (*domain.Transaction, error)
	ConfirmOffRampDeposit(ctx context.Context, req ConfirmDepositRequest) (*domain.Transaction, error)
	CompleteOffRamp(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error)
	Reject(ctx context.Context, caller domain.Caller, id uuid.UUID, reason string) (*domain.Transaction, error)
	SettleOffRampPayout(ctx context.Context, caller domain.Caller, transferReference string, status domain.PayoutStatus, reason string) (*domain.Transaction, error)
	RefreshPayoutStatus(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.Transaction, error)
}

// CreateTransactionRequest holds validated input for a new swap.
type CreateTransactionRequest struct {
	Caller       domain.Caller
	Direction    domain.Direction
	Token        domain.Token
	TokenAmount  decimal.Decimal
	FiatAmount   decimal.Decimal
	ExchangeRate *decimal.Decimal // nil = quote from the price service
	UserAddress  string
	Bank         *domain.BankDetails // required for off-ramp
}

// ConfirmPaymentRequest is an on-ramp payment confirmation.
type ConfirmPaymentRequest struct {
	Caller         domain.Caller
	TransactionID  uuid.UUID
	ProofReference string
	PaidFiatAmount *decimal.Decimal // nil = trust the stored fiat amount
}

// ConfirmDepositRequest records an observed off-ramp deposit.
type ConfirmDepositRequest struct {
	Caller        domain.Caller
	TransactionID uuid.UUID
	ChainDigest   string
}

// TreasuryMonitor evaluates treasury balances and manages alerts.
type TreasuryMonitor interface {
	Run(ctx context.Context, caller domain.Caller) (*MonitorReport, error)
	AcknowledgeAlert(ctx context.Context, caller domain.Caller, id uuid.UUID) (*domain.TreasuryAlert, error)
	ListAlerts(ctx context.Context, caller domain.Caller, params AlertListParams) ([]domain.TreasuryAlert, error)
}

// MonitorReport summarizes one monitor run.
type MonitorReport struct {
	Created  []domain.TreasuryAlert `json:"created"`
	Skipped  int                    `json:"skipped"`  // breaches already covered by an unacknowledged alert
	Failures map[string]string      `json:"failures"` // currency -> error
	RanAt    time.Time              `json:"ran_at"`
}

// LimitsService administers versioned limits.
type LimitsService interface {
	GetActive(ctx context.Context) (*domain.TransactionLimits, error)
	Update(ctx context.Context, caller domain.Caller, expectedVersion int, limits domain.TransactionLimits) (*domain.TransactionLimits, error)
	Check(ctx context.Context, direction domain.Direction, token domain.Token, amount decimal.Decimal, fiatAmount *decimal.Decimal) (domain.LimitCheckResult, error)
}

// PriceService returns quotes using the fallback chain.
type PriceService interface {
	GetQuote(ctx context.Context, token domain.Token) (*domain.PriceQuote, error)
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetDashboardStats(ctx context.Context, caller domain.Caller, period string) (*TransactionStats, error)
	ListTransactions(ctx context.Context, caller domain.Caller, params TransactionListParams) ([]domain.Transaction, int64, error)
}

package ports

import (
	"context"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepository defines persistence operations for swap transactions.
// Lookups return (nil, nil) when nothing matches.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByPaymentProof(ctx context.Context, proof string) (*domain.Transaction, error)
	GetByPayoutReference(ctx context.Context, reference string) (*domain.Transaction, error)
	// UpdateState writes the mutable columns if the stored version still equals
	// transaction.Version, then bumps transaction.Version. It returns
	// domain.ErrVersionConflict when another writer got there first.
	UpdateState(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	CountByStatusSince(ctx context.Context, status domain.TransactionStatus, since time.Time) (int, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetStats(ctx context.Context, since *time.Time) (*TransactionStats, error)
}

// TransactionListParams holds filter + pagination for listing transactions.
type TransactionListParams struct {
	Status      *domain.TransactionStatus
	Direction   *domain.Direction
	Token       *domain.Token
	UserAddress string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// TransactionStats holds aggregated statistics for the admin dashboard.
type TransactionStats struct {
	TotalTransactions int64
	Pending           int64
	Confirmed         int64
	Completed         int64
	Failed            int64
	OnRampVolumeNGN   decimal.Decimal // sum of fiat over completed on-ramps
	OffRampVolumeNGN  decimal.Decimal // sum of fiat over completed off-ramps
}

// LimitsRepository stores versioned TransactionLimits.
type LimitsRepository interface {
	GetActive(ctx context.Context) (*domain.TransactionLimits, error)
	// Activate deactivates expectedVersion and inserts limits as the new active row.
	// Returns domain.ErrVersionConflict if expectedVersion is no longer active.
	Activate(ctx context.Context, tx pgx.Tx, limits *domain.TransactionLimits, expectedVersion int) error
}

// AlertRepository stores treasury alerts.
type AlertRepository interface {
	// Create inserts the alert. created is false when an unacknowledged alert
	// with the same key already exists.
	Create(ctx context.Context, alert *domain.TreasuryAlert) (created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TreasuryAlert, error)
	FindUnacknowledged(ctx context.Context, key domain.AlertKey) (*domain.TreasuryAlert, error)
	HasUnacknowledgedSince(ctx context.Context, alertType domain.AlertType, since time.Time) (bool, error)
	Acknowledge(ctx context.Context, id uuid.UUID, by string, at time.Time) (bool, error)
	List(ctx context.Context, params AlertListParams) ([]domain.TreasuryAlert, error)
}

// AlertListParams filters the alert list.
type AlertListParams struct {
	Acknowledged *bool
	Type         *domain.AlertType
	Limit        int
}

// TreasuryRepository is the treasury ledger.
type TreasuryRepository interface {
	GetBalance(ctx context.Context, currency string) (*domain.TreasuryBalance, error)
	ListBalances(ctx context.Context) ([]domain.TreasuryBalance, error)
	Adjust(ctx context.Context, tx pgx.Tx, currency string, delta decimal.Decimal, at time.Time) error
}

// RefundRepository stores refund-eligible records.
type RefundRepository interface {
	Create(ctx context.Context, tx pgx.Tx, refund *domain.Refund) error
	ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.Refund, error)
}

// IdempotencyRepository defines persistence for idempotency logs (DB backup).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

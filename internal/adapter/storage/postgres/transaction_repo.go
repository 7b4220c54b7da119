package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, direction, status, token, token_amount, fiat_amount, fiat_currency,
		exchange_rate, price_source, user_address, bank_code, bank_name, account_name,
		account_number_masked, bank_account_enc, payment_reference, payment_proof, chain_digest,
		payout_reference, failure_reason, created_by, version, created_at, updated_at,
		confirmed_at, completed_at, failed_at`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26, $27)`

	bankCode, bankName, accountName, masked := bankColumns(t.Bank)
	_, err := tx.Exec(ctx, query,
		t.ID, t.Direction, t.Status, t.Token, t.TokenAmount, t.FiatAmount, t.FiatCurrency,
		t.ExchangeRate, t.PriceSource, t.UserAddress, bankCode, bankName, accountName,
		masked, domain.StrPtr(t.BankAccountEnc), t.PaymentReference, t.PaymentProof, t.ChainDigest,
		t.PayoutReference, t.FailureReason, t.CreatedBy, t.Version, t.CreatedAt, t.UpdatedAt,
		t.ConfirmedAt, t.CompletedAt, t.FailedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByPaymentProof fetches the transaction a gateway payment reference was applied to.
func (r *TransactionRepo) GetByPaymentProof(ctx context.Context, proof string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payment_proof = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, proof))
}

// GetByPayoutReference fetches the off-ramp a transfer reference belongs to.
func (r *TransactionRepo) GetByPayoutReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payout_reference = $1`
	return scanTransaction(r.pool.QueryRow(ctx, query, reference))
}

// UpdateState writes the mutable columns guarded by the version the caller read.
func (r *TransactionRepo) UpdateState(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `UPDATE transactions SET status = $1, payment_proof = $2, chain_digest = $3,
		payout_reference = $4, failure_reason = $5, updated_at = $6, confirmed_at = $7,
		completed_at = $8, failed_at = $9, version = version + 1
		WHERE id = $10 AND version = $11`

	tag, err := tx.Exec(ctx, query,
		t.Status, t.PaymentProof, t.ChainDigest, t.PayoutReference, t.FailureReason,
		t.UpdatedAt, t.ConfirmedAt, t.CompletedAt, t.FailedAt, t.ID, t.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateReference
		}
		return fmt.Errorf("update transaction state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	t.Version++
	return nil
}

// CountByStatusSince counts transactions in status updated at or after since.
func (r *TransactionRepo) CountByStatusSince(ctx context.Context, status domain.TransactionStatus, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE status = $1 AND updated_at >= $2`

	var n int
	if err := r.pool.QueryRow(ctx, query, status, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions by status: %w", err)
	}
	return n, nil
}

// List fetches transactions with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	add := func(cond string, v any) {
		conditions = append(conditions, fmt.Sprintf(cond, argIdx))
		args = append(args, v)
		argIdx++
	}
	if params.Status != nil {
		add("status = $%d", *params.Status)
	}
	if params.Direction != nil {
		add("direction = $%d", *params.Direction)
	}
	if params.Token != nil {
		add("token = $%d", *params.Token)
	}
	if params.UserAddress != "" {
		add("lower(user_address) = lower($%d)", params.UserAddress)
	}
	if params.From != nil {
		add("created_at >= $%d", *params.From)
	}
	if params.To != nil {
		add("created_at <= $%d", *params.To)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// GetStats aggregates counts and completed NGN volume, optionally since a point in time.
func (r *TransactionRepo) GetStats(ctx context.Context, since *time.Time) (*ports.TransactionStats, error) {
	var args []any
	where := ""
	if since != nil {
		where = "WHERE created_at >= $1"
		args = append(args, *since)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'CONFIRMED') AS confirmed,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
		COUNT(*) FILTER (WHERE status = 'FAILED') AS failed,
		COALESCE(SUM(fiat_amount) FILTER (WHERE direction = 'ON_RAMP' AND status = 'COMPLETED'), 0) AS on_ramp_volume,
		COALESCE(SUM(fiat_amount) FILTER (WHERE direction = 'OFF_RAMP' AND status = 'COMPLETED'), 0) AS off_ramp_volume
		FROM transactions %s`, where)

	stats := &ports.TransactionStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalTransactions, &stats.Pending, &stats.Confirmed, &stats.Completed, &stats.Failed,
		&stats.OnRampVolumeNGN, &stats.OffRampVolumeNGN,
	)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	return stats, nil
}

func bankColumns(b *domain.BankDetails) (code, name, accountName, masked *string) {
	if b == nil {
		return nil, nil, nil, nil
	}
	return domain.StrPtr(b.BankCode), domain.StrPtr(b.BankName), domain.StrPtr(b.AccountName), domain.StrPtr(b.AccountNumberMasked)
}

// scanTransaction scans a single row into a Transaction. pgx.ErrNoRows maps to (nil, nil).
func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var bankCode, bankName, accountName, masked, accountEnc *string
	err := row.Scan(
		&t.ID, &t.Direction, &t.Status, &t.Token, &t.TokenAmount, &t.FiatAmount, &t.FiatCurrency,
		&t.ExchangeRate, &t.PriceSource, &t.UserAddress, &bankCode, &bankName, &accountName,
		&masked, &accountEnc, &t.PaymentReference, &t.PaymentProof, &t.ChainDigest,
		&t.PayoutReference, &t.FailureReason, &t.CreatedBy, &t.Version, &t.CreatedAt, &t.UpdatedAt,
		&t.ConfirmedAt, &t.CompletedAt, &t.FailedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	if bankCode != nil {
		t.Bank = &domain.BankDetails{
			BankCode:            *bankCode,
			BankName:            domain.Deref(bankName),
			AccountName:         domain.Deref(accountName),
			AccountNumberMasked: domain.Deref(masked),
		}
	}
	t.BankAccountEnc = domain.Deref(accountEnc)
	return t, nil
}

package postgres

import (
	"context"
	"fmt"

	"ramp-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RefundRepo implements ports.RefundRepository.
type RefundRepo struct {
	pool Pool
}

func NewRefundRepo(pool Pool) *RefundRepo {
	return &RefundRepo{pool: pool}
}

func (r *RefundRepo) Create(ctx context.Context, tx pgx.Tx, rf *domain.Refund) error {
	query := `INSERT INTO refunds (id, transaction_id, direction, asset, amount, user_address, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		rf.ID, rf.TransactionID, rf.Direction, rf.Asset, rf.Amount, rf.UserAddress, rf.Reason, rf.Status, rf.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert refund: %w", err)
	}
	return nil
}

func (r *RefundRepo) ListByTransaction(ctx context.Context, transactionID uuid.UUID) ([]domain.Refund, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, transaction_id, direction, asset, amount, user_address, reason, status, created_at
		FROM refunds WHERE transaction_id = $1 ORDER BY created_at`, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	defer rows.Close()

	var out []domain.Refund
	for rows.Next() {
		var rf domain.Refund
		if err := rows.Scan(&rf.ID, &rf.TransactionID, &rf.Direction, &rf.Asset, &rf.Amount,
			&rf.UserAddress, &rf.Reason, &rf.Status, &rf.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan refund: %w", err)
		}
		out = append(out, rf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refunds: %w", err)
	}
	return out, nil
}

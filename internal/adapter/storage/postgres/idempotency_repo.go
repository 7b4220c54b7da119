package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo implements ports.IdempotencyRepository over idempotency_logs.
// It is the durable half of replay; the Redis cache is the fast half.
type IdempotencyRepo struct {
	pool Pool
}

func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

// Create records the outcome inside the caller's transaction so it commits
// with the state change it describes. The first outcome for a key wins.
func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.IdempotencyLog) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO idempotency_logs (key, transaction_id, response_json, created_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT (key) DO NOTHING`,
		entry.Key, entry.TransactionID, entry.ResponseJSON, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert idempotency log %s: %w", entry.Key, err)
	}
	return nil
}

func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	entry := &domain.IdempotencyLog{}
	err := r.pool.QueryRow(ctx,
		`SELECT key, transaction_id, response_json, created_at FROM idempotency_logs WHERE key = $1`, key,
	).Scan(&entry.Key, &entry.TransactionID, &entry.ResponseJSON, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency log: %w", err)
	}
	return entry, nil
}

// PurgeBefore deletes logs created before cutoff. Replays of older actions
// fall back to the proof and digest stored on the transaction row.
func (r *IdempotencyRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM idempotency_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge idempotency logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ramp-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LimitsRepo implements ports.LimitsRepository. Per-direction tables are stored as JSONB.
type LimitsRepo struct {
	pool Pool
}

func NewLimitsRepo(pool Pool) *LimitsRepo {
	return &LimitsRepo{pool: pool}
}

// GetActive returns the active limits row, or nil when none was ever stored.
func (r *LimitsRepo) GetActive(ctx context.Context) (*domain.TransactionLimits, error) {
	query := `SELECT version, is_active, on_ramp, off_ramp, updated_by, created_at
		FROM transaction_limits WHERE is_active ORDER BY version DESC LIMIT 1`

	l := &domain.TransactionLimits{}
	var onRamp, offRamp []byte
	err := r.pool.QueryRow(ctx, query).Scan(&l.Version, &l.IsActive, &onRamp, &offRamp, &l.UpdatedBy, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active limits: %w", err)
	}
	if err := json.Unmarshal(onRamp, &l.OnRamp); err != nil {
		return nil, fmt.Errorf("decode on-ramp limits v%d: %w", l.Version, err)
	}
	if err := json.Unmarshal(offRamp, &l.OffRamp); err != nil {
		return nil, fmt.Errorf("decode off-ramp limits v%d: %w", l.Version, err)
	}
	return l, nil
}

// Activate retires expectedVersion and inserts limits as the active row.
// expectedVersion 0 means no row was active before.
func (r *LimitsRepo) Activate(ctx context.Context, tx pgx.Tx, limits *domain.TransactionLimits, expectedVersion int) error {
	if expectedVersion > 0 {
		tag, err := tx.Exec(ctx, `UPDATE transaction_limits SET is_active = FALSE WHERE version = $1 AND is_active`, expectedVersion)
		if err != nil {
			return fmt.Errorf("deactivate limits v%d: %w", expectedVersion, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrVersionConflict
		}
	}

	onRamp, err := json.Marshal(limits.OnRamp)
	if err != nil {
		return fmt.Errorf("encode on-ramp limits: %w", err)
	}
	offRamp, err := json.Marshal(limits.OffRamp)
	if err != nil {
		return fmt.Errorf("encode off-ramp limits: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO transaction_limits (version, is_active, on_ramp, off_ramp, updated_by, created_at)
		VALUES ($1, TRUE, $2, $3, $4, $5)`,
		limits.Version, onRamp, offRamp, limits.UpdatedBy, limits.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("insert limits v%d: %w", limits.Version, err)
	}
	limits.IsActive = true
	return nil
}

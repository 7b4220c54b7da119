package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TreasuryRepo implements ports.TreasuryRepository over the treasury_balances ledger.
type TreasuryRepo struct {
	pool Pool
}

func NewTreasuryRepo(pool Pool) *TreasuryRepo {
	return &TreasuryRepo{pool: pool}
}

func (r *TreasuryRepo) GetBalance(ctx context.Context, currency string) (*domain.TreasuryBalance, error) {
	b := &domain.TreasuryBalance{}
	err := r.pool.QueryRow(ctx,
		`SELECT currency, available, updated_at FROM treasury_balances WHERE currency = $1`, currency,
	).Scan(&b.Currency, &b.Available, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get treasury balance %s: %w", currency, err)
	}
	return b, nil
}

func (r *TreasuryRepo) ListBalances(ctx context.Context) ([]domain.TreasuryBalance, error) {
	rows, err := r.pool.Query(ctx, `SELECT currency, available, updated_at FROM treasury_balances ORDER BY currency`)
	if err != nil {
		return nil, fmt.Errorf("list treasury balances: %w", err)
	}
	defer rows.Close()

	var out []domain.TreasuryBalance
	for rows.Next() {
		var b domain.TreasuryBalance
		if err := rows.Scan(&b.Currency, &b.Available, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan treasury balance: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate treasury balances: %w", err)
	}
	return out, nil
}

// Adjust adds delta to currency's balance, creating the row on first use.
// The ledger may go negative; the monitor reports that as a critical low balance.
func (r *TreasuryRepo) Adjust(ctx context.Context, tx pgx.Tx, currency string, delta decimal.Decimal, at time.Time) error {
	query := `INSERT INTO treasury_balances (currency, available, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (currency) DO UPDATE SET available = treasury_balances.available + EXCLUDED.available,
		updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, query, currency, delta, at); err != nil {
		return fmt.Errorf("adjust treasury %s by %s: %w", currency, delta, err)
	}
	return nil
}

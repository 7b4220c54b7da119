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

const alertColumns = `id, type, severity, currency, amount, threshold, message,
		acknowledged, acknowledged_by, acknowledged_at, created_at`

// AlertRepo implements ports.AlertRepository.
type AlertRepo struct {
	pool Pool
}

func NewAlertRepo(pool Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

// Create relies on the partial unique index over unacknowledged (type, currency, severity).
func (r *AlertRepo) Create(ctx context.Context, a *domain.TreasuryAlert) (bool, error) {
	query := `INSERT INTO treasury_alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		a.ID, a.Type, a.Severity, a.Currency, a.Amount, a.Threshold, a.Message,
		a.Acknowledged, a.AcknowledgedBy, a.AcknowledgedAt, a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert treasury alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TreasuryAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM treasury_alerts WHERE id = $1`
	return scanAlert(r.pool.QueryRow(ctx, query, id))
}

func (r *AlertRepo) FindUnacknowledged(ctx context.Context, key domain.AlertKey) (*domain.TreasuryAlert, error) {
	query := `SELECT ` + alertColumns + ` FROM treasury_alerts
		WHERE type = $1 AND currency = $2 AND severity = $3 AND NOT acknowledged
		ORDER BY created_at DESC LIMIT 1`
	return scanAlert(r.pool.QueryRow(ctx, query, key.Type, key.Currency, key.Severity))
}

func (r *AlertRepo) HasUnacknowledgedSince(ctx context.Context, alertType domain.AlertType, since time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM treasury_alerts WHERE type = $1 AND NOT acknowledged AND created_at >= $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, alertType, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("check recent alerts: %w", err)
	}
	return exists, nil
}

// Acknowledge reports false when the alert was missing or already acknowledged.
func (r *AlertRepo) Acknowledge(ctx context.Context, id uuid.UUID, by string, at time.Time) (bool, error) {
	query := `UPDATE treasury_alerts SET acknowledged = TRUE, acknowledged_by = $1, acknowledged_at = $2
		WHERE id = $3 AND NOT acknowledged`

	tag, err := r.pool.Exec(ctx, query, by, at, id)
	if err != nil {
		return false, fmt.Errorf("acknowledge alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns the newest alerts first.
func (r *AlertRepo) List(ctx context.Context, params ports.AlertListParams) ([]domain.TreasuryAlert, error) {
	var conditions []string
	var args []any
	if params.Acknowledged != nil {
		args = append(args, *params.Acknowledged)
		conditions = append(conditions, fmt.Sprintf("acknowledged = $%d", len(args)))
	}
	if params.Type != nil {
		args = append(args, *params.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, params.Limit)
	query := fmt.Sprintf(`SELECT %s FROM treasury_alerts %s ORDER BY created_at DESC LIMIT $%d`, alertColumns, where, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.TreasuryAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert rows: %w", err)
	}
	return alerts, nil
}

func scanAlert(row pgx.Row) (*domain.TreasuryAlert, error) {
	a := &domain.TreasuryAlert{}
	err := row.Scan(
		&a.ID, &a.Type, &a.Severity, &a.Currency, &a.Amount, &a.Threshold, &a.Message,
		&a.Acknowledged, &a.AcknowledgedBy, &a.AcknowledgedAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan alert: %w", err)
	}
	return a, nil
}

package postgres

import (
	"context"
	"fmt"
)

// HealthCheck pings PostgreSQL and confirms the schema has been migrated.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping fails when the database is unreachable or the transactions table is missing.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, "SELECT 1 FROM transactions LIMIT 1"); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string { return "postgresql" }

package postgres

import (
	"context"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAlert() *domain.TreasuryAlert {
	return &domain.TreasuryAlert{
		ID:        uuid.New(),
		Type:      domain.AlertTypeLowBalance,
		Severity:  domain.SeverityCritical,
		Currency:  "SUI",
		Amount:    decimal.RequireFromString("40"),
		Threshold: decimal.RequireFromString("50"),
		Message:   "SUI treasury balance 40 is below the critical threshold 50",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func alertColumnNames() []string {
	return []string{"id", "type", "severity", "currency", "amount", "threshold", "message",
		"acknowledged", "acknowledged_by", "acknowledged_at", "created_at"}
}

func alertRow(rows *pgxmock.Rows, a *domain.TreasuryAlert) *pgxmock.Rows {
	return rows.AddRow(a.ID, a.Type, a.Severity, a.Currency, a.Amount, a.Threshold, a.Message,
		a.Acknowledged, a.AcknowledgedBy, a.AcknowledgedAt, a.CreatedAt)
}

func TestAlertRepo_Create(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		created  bool
	}{
		{"new alert", 1, true},
		{"unacknowledged duplicate", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			a := newTestAlert()
			mock.ExpectExec("INSERT INTO treasury_alerts .+ ON CONFLICT DO NOTHING").
				WithArgs(a.ID, a.Type, a.Severity, a.Currency, a.Amount, a.Threshold, a.Message,
					false, a.AcknowledgedBy, a.AcknowledgedAt, a.CreatedAt).
				WillReturnResult(pgxmock.NewResult("INSERT", tt.affected))

			created, err := NewAlertRepo(mock).Create(context.Background(), a)
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
		})
	}
}

func TestAlertRepo_FindUnacknowledged(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	a := newTestAlert()
	mock.ExpectQuery("SELECT .+ FROM treasury_alerts .+ NOT acknowledged").
		WithArgs(a.Type, a.Currency, a.Severity).
		WillReturnRows(alertRow(pgxmock.NewRows(alertColumnNames()), a))

	got, err := NewAlertRepo(mock).FindUnacknowledged(context.Background(), a.Key())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, a.ID, got.ID)
	assert.True(t, got.Amount.Equal(a.Amount))
}

func TestAlertRepo_HasUnacknowledgedSince(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	since := time.Now().Add(-time.Hour)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(domain.AlertTypeFailedTransactionRate, since).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewAlertRepo(mock).HasUnacknowledgedSince(context.Background(), domain.AlertTypeFailedTransactionRate, since)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAlertRepo_Acknowledge(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	at := time.Now().UTC()
	mock.ExpectExec("UPDATE treasury_alerts SET acknowledged = TRUE").
		WithArgs("0xadmin", at, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE treasury_alerts SET acknowledged = TRUE").
		WithArgs("0xadmin", at, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewAlertRepo(mock)
	ok, err := repo.Acknowledge(context.Background(), id, "0xadmin", at)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Acknowledge(context.Background(), id, "0xadmin", at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlertRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	unacked := false
	a := newTestAlert()
	mock.ExpectQuery("SELECT .+ FROM treasury_alerts WHERE acknowledged = \\$1 ORDER BY created_at DESC LIMIT \\$2").
		WithArgs(false, 50).
		WillReturnRows(alertRow(pgxmock.NewRows(alertColumnNames()), a))

	alerts, err := NewAlertRepo(mock).List(context.Background(), ports.AlertListParams{Acknowledged: &unacked, Limit: 50})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

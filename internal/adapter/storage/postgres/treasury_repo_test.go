package postgres

import (
	"context"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreasuryRepo_GetBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	mock.ExpectQuery("SELECT currency, available, updated_at FROM treasury_balances WHERE currency").
		WithArgs("NGN").
		WillReturnRows(pgxmock.NewRows([]string{"currency", "available", "updated_at"}).
			AddRow("NGN", decimal.RequireFromString("1000000.50"), now))
	mock.ExpectQuery("SELECT currency, available, updated_at FROM treasury_balances WHERE currency").
		WithArgs("USDT").
		WillReturnRows(pgxmock.NewRows([]string{"currency", "available", "updated_at"}))

	repo := NewTreasuryRepo(mock)
	b, err := repo.GetBalance(context.Background(), "NGN")
	require.NoError(t, err)
	assert.Equal(t, "1000000.5", b.Available.String())

	missing, err := repo.GetBalance(context.Background(), "USDT")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTreasuryRepo_ListBalances(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT currency, available, updated_at FROM treasury_balances ORDER BY currency").
		WillReturnRows(pgxmock.NewRows([]string{"currency", "available", "updated_at"}).
			AddRow("NGN", decimal.RequireFromString("10"), now).
			AddRow("SUI", decimal.RequireFromString("20"), now))

	balances, err := NewTreasuryRepo(mock).ListBalances(context.Background())
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, "SUI", balances[1].Currency)
}

func TestTreasuryRepo_Adjust(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	at := time.Now().UTC()
	delta := decimal.RequireFromString("-2.5")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO treasury_balances .+ ON CONFLICT \\(currency\\) DO UPDATE").
		WithArgs("SUI", delta, at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	assert.NoError(t, NewTreasuryRepo(mock).Adjust(context.Background(), tx, "SUI", delta, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepo_CreateAndList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	txn := newTestOffRamp()
	rf := domain.NewRefundFor(txn, "Payout failed: account closed", time.Now().UTC().Truncate(time.Microsecond))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO refunds").
		WithArgs(rf.ID, rf.TransactionID, rf.Direction, "SUI", rf.Amount, rf.UserAddress, rf.Reason, domain.RefundStatusPending, rf.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT .+ FROM refunds WHERE transaction_id").
		WithArgs(txn.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_id", "direction", "asset", "amount", "user_address", "reason", "status", "created_at"}).
			AddRow(rf.ID, rf.TransactionID, rf.Direction, rf.Asset, rf.Amount, rf.UserAddress, rf.Reason, rf.Status, rf.CreatedAt))

	repo := NewRefundRepo(mock)
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), tx, rf))

	refunds, err := repo.ListByTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	require.Len(t, refunds, 1)
	assert.True(t, refunds[0].Amount.Equal(decimal.RequireFromString("2")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_UpdateLimits(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	entry := &domain.AuditLog{
		ID:           uuid.New(),
		Actor:        "0xadmin",
		Action:       domain.ActionUpdateLimits,
		ResourceType: "transaction_limits",
		ResourceID:   "2",
		Details:      `{"previous_version":1}`,
		IPAddress:    "10.0.0.1",
		CreatedAt:    time.Now().UTC(),
	}
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(entry.ID, entry.Actor, "UPDATE_LIMITS", entry.ResourceType, entry.ResourceID, entry.Details, entry.IPAddress, entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, NewAuditRepo(mock).Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

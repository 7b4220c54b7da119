package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ramp-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitsColumns() []string {
	return []string{"version", "is_active", "on_ramp", "off_ramp", "updated_by", "created_at"}
}

func TestLimitsRepo_GetActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewLimitsRepo(mock)
	def := domain.DefaultTransactionLimits()
	onRamp, _ := json.Marshal(def.OnRamp)
	offRamp, _ := json.Marshal(def.OffRamp)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM transaction_limits WHERE is_active").
		WillReturnRows(pgxmock.NewRows(limitsColumns()).AddRow(3, true, onRamp, offRamp, "0xadmin", now))

	got, err := repo.GetActive(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Version)
	want, _ := def.Lookup(domain.DirectionOffRamp, domain.TokenSUI)
	have, ok := got.Lookup(domain.DirectionOffRamp, domain.TokenSUI)
	require.True(t, ok)
	assert.True(t, want.Amount.Min.Equal(have.Amount.Min))
	assert.True(t, want.Fiat.Max.Equal(have.Fiat.Max))
}

func TestLimitsRepo_GetActive_None(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT .+ FROM transaction_limits").WillReturnRows(pgxmock.NewRows(limitsColumns()))

	got, err := NewLimitsRepo(mock).GetActive(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestLimitsRepo_Activate(t *testing.T) {
	limits := domain.DefaultTransactionLimits()
	limits.Version = 4
	limits.UpdatedBy = "0xadmin"

	t.Run("retires the expected version", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE transaction_limits SET is_active = FALSE").
			WithArgs(3).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectExec("INSERT INTO transaction_limits").
			WithArgs(4, pgxmock.AnyArg(), pgxmock.AnyArg(), "0xadmin", limits.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		tx, err := mock.Begin(context.Background())
		require.NoError(t, err)
		l := limits
		require.NoError(t, NewLimitsRepo(mock).Activate(context.Background(), tx, &l, 3))
		assert.True(t, l.IsActive)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale expected version conflicts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE transaction_limits").WithArgs(3).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		tx, err := mock.Begin(context.Background())
		require.NoError(t, err)
		l := limits
		err = NewLimitsRepo(mock).Activate(context.Background(), tx, &l, 3)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	t.Run("first version racing another writer conflicts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO transaction_limits").WillReturnError(&pgconn.PgError{Code: "23505"})

		tx, err := mock.Begin(context.Background())
		require.NoError(t, err)
		l := limits
		l.Version = 1
		err = NewLimitsRepo(mock).Activate(context.Background(), tx, &l, 0)
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})
}

package service

import (
	"testing"

	"ramp-gateway/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGasEstimator_EstimateFee(t *testing.T) {
	tests := []struct {
		kind domain.FeeKind
		want string
	}{
		{domain.FeeKindNativeTransfer, "0.015"},
		{domain.FeeKindTokenTransfer, "0.015"},
		{domain.FeeKindOnRampCredit, "0.03"},
	}

	est := NewGasEstimator()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			fee, err := est.EstimateFee(tt.kind)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(fee), "got %s", fee)

			again, _ := est.EstimateFee(tt.kind)
			assert.True(t, fee.Equal(again), "estimate must be deterministic")
		})
	}
}

func TestGasEstimator_UnknownKind(t *testing.T) {
	_, err := NewGasEstimator().EstimateFee(domain.FeeKind("BRIDGE"))
	assert.Error(t, err)
}

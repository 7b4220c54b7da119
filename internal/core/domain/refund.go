package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusProcessed RefundStatus = "PROCESSED"
)

// Refund is a refund-eligible record emitted when a transaction fails after
// the user's funds were already received.
type Refund struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Direction     Direction       `json:"direction"`
	Asset         string          `json:"asset"` // NGN for on-ramp, the token for off-ramp
	Amount        decimal.Decimal `json:"amount"`
	UserAddress   string          `json:"user_address"`
	Reason        string          `json:"reason"`
	Status        RefundStatus    `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewRefundFor returns what the user is owed for tx.
func NewRefundFor(tx *Transaction, reason string, at time.Time) *Refund {
	r := &Refund{
		ID:            uuid.New(),
		TransactionID: tx.ID,
		Direction:     tx.Direction,
		UserAddress:   tx.UserAddress,
		Reason:        reason,
		Status:        RefundStatusPending,
		CreatedAt:     at,
	}
	if tx.Direction == DirectionOnRamp {
		r.Asset = tx.FiatCurrency
		r.Amount = tx.FiatAmount
	} else {
		r.Asset = string(tx.Token)
		r.Amount = tx.TokenAmount
	}
	return r
}

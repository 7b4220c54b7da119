package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSource tags where a quote came from.
type PriceSource string

const (
	PriceSourcePrimary   PriceSource = "primary"
	PriceSourceSecondary PriceSource = "secondary"
	PriceSourceLastKnown PriceSource = "last_known"
	PriceSourceFallback  PriceSource = "fallback"
	PriceSourceClient    PriceSource = "client"
)

// PriceQuote is an NGN price for one token.
type PriceQuote struct {
	Token     Token           `json:"token"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"`
	Source    PriceSource     `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Degraded is true when the quote did not come from a live feed.
func (q PriceQuote) Degraded() bool {
	return q.Source == PriceSourceLastKnown || q.Source == PriceSourceFallback
}

// PayoutStatus is the payment gateway's view of a transfer.
type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "pending"
	PayoutSuccess  PayoutStatus = "success"
	PayoutFailed   PayoutStatus = "failed"
	PayoutReversed PayoutStatus = "reversed"
)

// IsFinal reports whether the gateway will not change the status again.
func (s PayoutStatus) IsFinal() bool {
	return s == PayoutSuccess || s == PayoutFailed || s == PayoutReversed
}

// Payout is the result of initiating or polling a bank transfer.
type Payout struct {
	Reference    string       `json:"reference"`
	TransferCode string       `json:"transfer_code"`
	Status       PayoutStatus `json:"status"`
	Reason       string       `json:"reason,omitempty"`
}

// Credit is the result of sending tokens to a user wallet.
type Credit struct {
	Digest string `json:"digest"`
}

package dto

import (
	"time"

	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
)

// BankDetailsRequest is the payout destination of an off-ramp.
type BankDetailsRequest struct {
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
	BankCode      string `json:"bank_code" binding:"required,max=10,safe_id"`
	BankName      string `json:"bank_name" binding:"max=100"`
	AccountName   string `json:"account_name" binding:"required,max=100"`
}

// CreateTransactionRequest opens an on-ramp or off-ramp. Amounts are decimal strings.
type CreateTransactionRequest struct {
	Direction    string              `json:"direction" binding:"required,oneof=ON_RAMP OFF_RAMP"`
	Token        string              `json:"token" binding:"required,max=10"`
	TokenAmount  string              `json:"token_amount" binding:"required,numeric"`
	FiatAmount   string              `json:"fiat_amount" binding:"omitempty,numeric"`
	ExchangeRate *string             `json:"exchange_rate,omitempty" binding:"omitempty,numeric"`
	UserAddress  string              `json:"user_address" binding:"required,sui_address"`
	Bank         *BankDetailsRequest `json:"bank,omitempty"`
}

// ConfirmPaymentRequest confirms an on-ramp fiat payment.
type ConfirmPaymentRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required,max=100,safe_id"`
	PaidAmount       string `json:"paid_amount" binding:"omitempty,numeric"`
}

// ConfirmDepositRequest records the chain digest of an off-ramp deposit.
type ConfirmDepositRequest struct {
	ChainDigest string `json:"chain_digest" binding:"required,max=128,safe_id"`
}

// RejectRequest terminalizes a transaction.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// OffRampValidationRequest previews the wallet check of an off-ramp.
type OffRampValidationRequest struct {
	Address string `json:"address" binding:"required,sui_address"`
	Token   string `json:"token" binding:"required,max=10"`
	Amount  string `json:"amount" binding:"required,numeric"`
}

// LimitValidationRequest previews a limit check.
type LimitValidationRequest struct {
	Direction  string `json:"direction" binding:"required,oneof=ON_RAMP OFF_RAMP"`
	Token      string `json:"token" binding:"required,max=10"`
	Amount     string `json:"amount" binding:"required,numeric"`
	FiatAmount string `json:"fiat_amount" binding:"omitempty,numeric"`
}

// UpdateLimitsRequest activates a new limits version. ExpectedVersion is the
// version the admin edited; 0 only when no limits exist yet.
type UpdateLimitsRequest struct {
	ExpectedVersion int                    `json:"expected_version" binding:"gte=0"`
	OnRamp          domain.DirectionLimits `json:"on_ramp" binding:"required"`
	OffRamp         domain.DirectionLimits `json:"off_ramp" binding:"required"`
}

// TransactionListQuery holds the admin list filters.
type TransactionListQuery struct {
	Status      string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED COMPLETED FAILED"`
	Direction   string `form:"direction" binding:"omitempty,oneof=ON_RAMP OFF_RAMP"`
	Token       string `form:"token" binding:"omitempty,max=10"`
	UserAddress string `form:"user_address" binding:"omitempty,sui_address"`
	From        string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To          string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Page        int    `form:"page" binding:"omitempty,gte=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,gte=1,lte=100"`
}

// AlertListQuery filters the alert list.
type AlertListQuery struct {
	Acknowledged *bool  `form:"acknowledged"`
	Type         string `form:"type" binding:"omitempty,oneof=LOW_BALANCE HIGH_BALANCE FAILED_TRANSACTION_RATE SYSTEM_ERROR"`
	Limit        int    `form:"limit" binding:"omitempty,gte=1,lte=500"`
}

// TransactionResponse is the public view of a transaction. Decimal amounts
// render as strings.
type TransactionResponse struct {
	ID               string              `json:"id"`
	Direction        string              `json:"direction"`
	Status           string              `json:"status"`
	Token            string              `json:"token"`
	TokenAmount      string              `json:"token_amount"`
	FiatAmount       string              `json:"fiat_amount"`
	FiatCurrency     string              `json:"fiat_currency"`
	ExchangeRate     string              `json:"exchange_rate"`
	PriceSource      string              `json:"price_source"`
	UserAddress      string              `json:"user_address"`
	Bank             *domain.BankDetails `json:"bank,omitempty"`
	PaymentReference *string             `json:"payment_reference,omitempty"`
	PaymentProof     *string             `json:"payment_proof,omitempty"`
	ChainDigest      *string             `json:"chain_digest,omitempty"`
	PayoutReference  *string             `json:"payout_reference,omitempty"`
	FailureReason    *string             `json:"failure_reason,omitempty"`
	Version          int                 `json:"version"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
	ConfirmedAt      *string             `json:"confirmed_at,omitempty"`
	CompletedAt      *string             `json:"completed_at,omitempty"`
	FailedAt         *string             `json:"failed_at,omitempty"`
}

// NewTransactionResponse converts a domain transaction.
func NewTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID.String(),
		Direction:        string(t.Direction),
		Status:           string(t.Status),
		Token:            string(t.Token),
		TokenAmount:      t.TokenAmount.String(),
		FiatAmount:       t.FiatAmount.StringFixed(2),
		FiatCurrency:     t.FiatCurrency,
		ExchangeRate:     t.ExchangeRate.String(),
		PriceSource:      string(t.PriceSource),
		UserAddress:      t.UserAddress,
		Bank:             t.Bank,
		PaymentReference: t.PaymentReference,
		PaymentProof:     t.PaymentProof,
		ChainDigest:      t.ChainDigest,
		PayoutReference:  t.PayoutReference,
		FailureReason:    t.FailureReason,
		Version:          t.Version,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        t.UpdatedAt.Format(time.RFC3339),
		ConfirmedAt:      formatTime(t.ConfirmedAt),
		CompletedAt:      formatTime(t.CompletedAt),
		FailedAt:         formatTime(t.FailedAt),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// TransactionListResponse wraps paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// PriceQuoteResponse is an NGN quote. Degraded is set when the price did not
// come from a live feed.
type PriceQuoteResponse struct {
	Token     string `json:"token"`
	Price     string `json:"price"`
	Change24h string `json:"change_24h"`
	Source    string `json:"source"`
	Degraded  bool   `json:"degraded"`
	FetchedAt string `json:"fetched_at"`
}

func NewPriceQuoteResponse(q *domain.PriceQuote) PriceQuoteResponse {
	return PriceQuoteResponse{
		Token:     string(q.Token),
		Price:     q.Price.String(),
		Change24h: q.Change24h.String(),
		Source:    string(q.Source),
		Degraded:  q.Degraded(),
		FetchedAt: q.FetchedAt.Format(time.RFC3339),
	}
}

// DashboardStatsResponse is the response for dashboard statistics.
type DashboardStatsResponse struct {
	Period            string `json:"period"`
	TotalTransactions int64  `json:"total_transactions"`
	Pending           int64  `json:"pending"`
	Confirmed         int64  `json:"confirmed"`
	Completed         int64  `json:"completed"`
	Failed            int64  `json:"failed"`
	OnRampVolumeNGN   string `json:"on_ramp_volume_ngn"`
	OffRampVolumeNGN  string `json:"off_ramp_volume_ngn"`
}

func NewDashboardStatsResponse(period string, s *ports.TransactionStats) DashboardStatsResponse {
	if period == "" {
		period = "all"
	}
	return DashboardStatsResponse{
		Period:            period,
		TotalTransactions: s.TotalTransactions,
		Pending:           s.Pending,
		Confirmed:         s.Confirmed,
		Completed:         s.Completed,
		Failed:            s.Failed,
		OnRampVolumeNGN:   s.OnRampVolumeNGN.StringFixed(2),
		OffRampVolumeNGN:  s.OffRampVolumeNGN.StringFixed(2),
	}
}

// AlertListResponse wraps the alert list.
type AlertListResponse struct {
	Items []domain.TreasuryAlert `json:"items"`
	Count int                    `json:"count"`
}

// WebhookAck is returned to the payment gateway for every accepted delivery.
type WebhookAck struct {
	Received  bool   `json:"received"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Ignored   bool   `json:"ignored,omitempty"`
	Event     string `json:"event"`
}

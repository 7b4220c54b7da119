// Package paystack implements ports.PaymentGateway against the Paystack transfers API.
package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ramp-gateway/internal/adapter/upstream"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"

	"github.com/shopspring/decimal"
)

// koboPerNaira converts NGN amounts to the integer minor units Paystack expects.
var koboPerNaira = decimal.NewFromInt(100)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type recipientData struct {
	RecipientCode string `json:"recipient_code"`
}

type transferData struct {
	Reference    string `json:"reference"`
	TransferCode string `json:"transfer_code"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
	Failures     any    `json:"failures"`
}

type balanceData struct {
	Currency string `json:"currency"`
	Balance  int64  `json:"balance"`
}

// Client is a Paystack API client.
type Client struct {
	baseURL   string
	secretKey string
	http      *upstream.Client
}

func NewClient(baseURL, secretKey string, httpClient *upstream.Client) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      httpClient,
	}
}

// CreateRecipient registers a NUBAN recipient. Paystack refusing the account
// (unknown bank, unresolvable account) is returned as ports.ErrRecipientRejected.
func (c *Client) CreateRecipient(ctx context.Context, bank domain.BankDetails) (string, error) {
	body := map[string]string{
		"type":           "nuban",
		"name":           bank.AccountName,
		"account_number": bank.AccountNumber,
		"bank_code":      bank.BankCode,
		"currency":       domain.FiatNGN,
	}

	var data recipientData
	if err := c.call(ctx, http.MethodPost, "/transferrecipient", body, &data); err != nil {
		if isClientError(err) {
			return "", fmt.Errorf("%w: %s", ports.ErrRecipientRejected, apiMessage(err))
		}
		return "", fmt.Errorf("create transfer recipient: %w", err)
	}
	if data.RecipientCode == "" {
		return "", errors.New("create transfer recipient: empty recipient_code")
	}
	return data.RecipientCode, nil
}

// InitiateTransfer pays req.Amount NGN from the Paystack balance.
func (c *Client) InitiateTransfer(ctx context.Context, req ports.TransferRequest) (*domain.Payout, error) {
	kobo := req.Amount.Mul(koboPerNaira).Round(0)
	if !kobo.IsPositive() {
		return nil, fmt.Errorf("initiate transfer: amount %s NGN is below one kobo", req.Amount)
	}

	body := map[string]any{
		"source":    "balance",
		"amount":    kobo.IntPart(),
		"recipient": req.RecipientCode,
		"reference": req.Reference,
		"reason":    req.Reason,
		"currency":  domain.FiatNGN,
	}

	var data transferData
	if err := c.call(ctx, http.MethodPost, "/transfer", body, &data); err != nil {
		if isClientError(err) && strings.Contains(strings.ToLower(apiMessage(err)), "balance") {
			return nil, fmt.Errorf("%w: %s", ports.ErrGatewayInsufficientBalance, apiMessage(err))
		}
		return nil, fmt.Errorf("initiate transfer %s: %w", req.Reference, err)
	}
	return toPayout(data, req.Reference), nil
}

// GetTransferStatus verifies a transfer by the reference it was initiated with.
func (c *Client) GetTransferStatus(ctx context.Context, reference string) (*domain.Payout, error) {
	var data transferData
	if err := c.call(ctx, http.MethodGet, "/transfer/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, fmt.Errorf("verify transfer %s: %w", reference, err)
	}
	return toPayout(data, reference), nil
}

// GetBalance returns the NGN balance available for transfers.
func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	var data []balanceData
	if err := c.call(ctx, http.MethodGet, "/balance", nil, &data); err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}
	for _, b := range data {
		if b.Currency == domain.FiatNGN {
			return decimal.NewFromInt(b.Balance).Div(koboPerNaira), nil
		}
	}
	return decimal.Zero, errors.New("get balance: no NGN balance returned")
}

func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.secretKey)

	var env envelope
	if err := c.http.DoJSON(ctx, method, c.baseURL+path, header, in, &env); err != nil {
		return err
	}
	if !env.Status {
		return fmt.Errorf("paystack: %s", env.Message)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("paystack: decode data: %w", err)
		}
	}
	return nil
}

// MapTransferStatus folds Paystack's transfer statuses into the payout outcomes the lifecycle knows.
func MapTransferStatus(s string) domain.PayoutStatus {
	switch strings.ToLower(s) {
	case "success":
		return domain.PayoutSuccess
	case "failed", "abandoned", "blocked", "rejected":
		return domain.PayoutFailed
	case "reversed":
		return domain.PayoutReversed
	default: // pending, otp, queued, processing, received
		return domain.PayoutPending
	}
}

func toPayout(d transferData, fallbackRef string) *domain.Payout {
	ref := d.Reference
	if ref == "" {
		ref = fallbackRef
	}
	return &domain.Payout{
		Reference:    ref,
		TransferCode: d.TransferCode,
		Status:       MapTransferStatus(d.Status),
		Reason:       d.Reason,
	}
}

func isClientError(err error) bool {
	var se *upstream.StatusError
	return errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500
}

// apiMessage extracts Paystack's "message" from an error response body.
func apiMessage(err error) string {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		var env envelope
		if json.Unmarshal(se.Body, &env) == nil && env.Message != "" {
			return env.Message
		}
		return string(se.Body)
	}
	return err.Error()
}

package chain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ramp-gateway/internal/adapter/upstream"
	"ramp-gateway/internal/core/domain"
	"ramp-gateway/internal/core/ports"
)

type transferRequest struct {
	Recipient string `json:"recipient"`
	CoinType  string `json:"coin_type"`
	Amount    string `json:"amount"` // minor units
	Reference string `json:"reference"`
}

type transferResponse struct {
	Digest string `json:"digest"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CustodyDisburser implements ports.TokenDisburser against the treasury signer service.
// The signer de-duplicates on Reference, so a retried credit never pays twice.
type CustodyDisburser struct {
	baseURL   string
	apiKey    string
	coinTypes map[domain.Token]string
	client    *upstream.Client
}

func NewCustodyDisburser(baseURL, apiKey string, coinTypes map[domain.Token]string, client *upstream.Client) *CustodyDisburser {
	return &CustodyDisburser{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		coinTypes: coinTypes,
		client:    client,
	}
}

func (d *CustodyDisburser) Credit(ctx context.Context, req ports.CreditRequest) (*domain.Credit, error) {
	coinType, ok := d.coinTypes[req.Token]
	if !ok {
		return nil, fmt.Errorf("%w: no coin type for %s", ports.ErrCreditRejected, req.Token)
	}
	minor := req.Token.ToMinorUnits(req.Amount)
	if !minor.IsPositive() {
		return nil, fmt.Errorf("%w: amount %s %s is below one minor unit", ports.ErrCreditRejected, req.Amount, req.Token)
	}

	header := http.Header{}
	header.Set("X-API-Key", d.apiKey)
	header.Set("Idempotency-Key", req.Reference)

	var resp transferResponse
	err := d.client.DoJSON(ctx, http.MethodPost, d.baseURL+"/v1/transfers", header, transferRequest{
		Recipient: req.Address,
		CoinType:  coinType,
		Amount:    minor.String(),
		Reference: req.Reference,
	}, &resp)
	if err != nil {
		if isRejection(err) {
			return nil, fmt.Errorf("%w: %w", ports.ErrCreditRejected, err)
		}
		return nil, fmt.Errorf("custody transfer: %w", err)
	}
	if resp.Status == "failed" {
		return nil, fmt.Errorf("%w: transfer %s not executed: %s", ports.ErrCreditRejected, req.Reference, resp.Error)
	}
	if resp.Digest == "" {
		return nil, fmt.Errorf("custody transfer %s returned no digest (status %q)", req.Reference, resp.Status)
	}
	return &domain.Credit{Digest: resp.Digest}, nil
}

// isRejection reports a 4xx answer from the signer. Timeouts and throttling
// say nothing about whether the transfer ran.
func isRejection(err error) bool {
	var se *upstream.StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500
}

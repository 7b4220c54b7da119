// Package chain talks to the Sui network: balance reads over JSON-RPC and
// treasury disbursements through the custody signer.
package chain

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"ramp-gateway/internal/adapter/upstream"

	"github.com/shopspring/decimal"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type balanceResult struct {
	CoinType        string `json:"coinType"`
	CoinObjectCount int    `json:"coinObjectCount"`
	TotalBalance    string `json:"totalBalance"`
}

type balanceResponse struct {
	Result *balanceResult `json:"result"`
	Error  *rpcError      `json:"error"`
}

// SuiClient implements ports.ChainClient over a full node's JSON-RPC endpoint.
type SuiClient struct {
	url    string
	client *upstream.Client
	nextID atomic.Uint64
}

func NewSuiClient(rpcURL string, client *upstream.Client) *SuiClient {
	return &SuiClient{url: rpcURL, client: client}
}

// GetBalance calls suix_getBalance and returns totalBalance in minor units.
func (c *SuiClient) GetBalance(ctx context.Context, address, coinType string) (decimal.Decimal, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  "suix_getBalance",
		Params:  []any{address, coinType},
	}

	var resp balanceResponse
	if err := c.client.DoJSON(ctx, http.MethodPost, c.url, nil, req, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("suix_getBalance: %w", err)
	}
	if resp.Error != nil {
		return decimal.Zero, fmt.Errorf("suix_getBalance: %w", resp.Error)
	}
	if resp.Result == nil {
		return decimal.Zero, fmt.Errorf("suix_getBalance: empty result")
	}

	total, err := decimal.NewFromString(resp.Result.TotalBalance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("suix_getBalance: parse totalBalance %q: %w", resp.Result.TotalBalance, err)
	}
	if total.IsNegative() {
		return decimal.Zero, fmt.Errorf("suix_getBalance: negative totalBalance %s", total)
	}
	return total, nil
}

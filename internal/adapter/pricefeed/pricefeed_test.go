package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ramp-gateway/internal/adapter/upstream"
	"ramp-gateway/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func newUpstream() *upstream.Client {
	return upstream.New("test", upstream.Settings{}, zerolog.Nop())
}

func TestCoinGecko_GetPrice(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "usd-coin", r.URL.Query().Get("ids"))
		assert.Equal(t, "ngn", r.URL.Query().Get("vs_currencies"))
		w.Write([]byte(`{"usd-coin":{"ngn":1602.35,"ngn_24h_change":-0.123456}}`))
	})

	q, err := NewCoinGecko(base, newUpstream(), 100).GetPrice(context.Background(), domain.TokenUSDC)
	require.NoError(t, err)
	assert.Equal(t, "1602.35", q.Price.String())
	assert.Equal(t, "-0.1235", q.Change24h.String())
	assert.Equal(t, domain.PriceSourcePrimary, q.Source)
	assert.False(t, q.Degraded())
}

func TestCoinGecko_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{"missing asset", `{}`, http.StatusOK},
		{"zero price", `{"sui":{"ngn":0}}`, http.StatusOK},
		{"rate limited", `{"status":{"error_code":429}}`, http.StatusTooManyRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			})
			_, err := NewCoinGecko(base, newUpstream(), 100).GetPrice(context.Background(), domain.TokenSUI)
			assert.Error(t, err)
		})
	}
}

func TestCoinGecko_UnsupportedToken(t *testing.T) {
	_, err := NewCoinGecko("http://unused", newUpstream(), 100).GetPrice(context.Background(), domain.Token("DOGE"))
	assert.Error(t, err)
}

func TestCoinbase_GetPrice(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/exchange-rates", r.URL.Path)
		assert.Equal(t, "SUI", r.URL.Query().Get("currency"))
		w.Write([]byte(`{"data":{"currency":"SUI","rates":{"USD":"3.2","NGN":"5198.4410"}}}`))
	})

	q, err := NewCoinbase(base, newUpstream()).GetPrice(context.Background(), domain.TokenSUI)
	require.NoError(t, err)
	assert.Equal(t, "5198.441", q.Price.String())
	assert.True(t, q.Change24h.IsZero())
	assert.Equal(t, domain.PriceSourceSecondary, q.Source)
}

func TestCoinbase_MissingRate(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"currency":"SUI","rates":{"USD":"3.2"}}}`))
	})

	_, err := NewCoinbase(base, newUpstream()).GetPrice(context.Background(), domain.TokenSUI)
	assert.Error(t, err)
}

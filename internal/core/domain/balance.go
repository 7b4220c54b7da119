package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceState separates "the chain said zero" from "we could not ask the chain".
type BalanceState int

const (
	BalanceUnknown BalanceState = iota
	BalanceZero
	BalancePositive
)

func (s BalanceState) String() string {
	switch s {
	case BalanceZero:
		return "ZERO"
	case BalancePositive:
		return "POSITIVE"
	default:
		return "UNKNOWN"
	}
}

func (s BalanceState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// BalanceReading is one token's balance as observed by the oracle.
// Amount is zero whenever State is BalanceUnknown.
type BalanceReading struct {
	Token  Token           `json:"token"`
	Amount decimal.Decimal `json:"amount"`
	State  BalanceState    `json:"state"`
	Error  string          `json:"error,omitempty"`
}

// KnownBalance builds a reading from a successful upstream response.
func KnownBalance(token Token, amount decimal.Decimal) BalanceReading {
	state := BalancePositive
	if !amount.IsPositive() {
		state = BalanceZero
		amount = decimal.Zero
	}
	return BalanceReading{Token: token, Amount: amount, State: state}
}

// UnknownBalance builds a reading for a failed or timed out lookup.
func UnknownBalance(token Token, err error) BalanceReading {
	r := BalanceReading{Token: token, Amount: decimal.Zero, State: BalanceUnknown}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func (r BalanceReading) Known() bool {
	return r.State != BalanceUnknown
}

// WalletBalances is an ephemeral snapshot of every supported token for one address.
type WalletBalances struct {
	Address   string                   `json:"address"`
	Readings  map[Token]BalanceReading `json:"readings"`
	FetchedAt time.Time                `json:"fetched_at"`
}

// Get returns the reading for token. Tokens that were never fetched read as unknown.
func (w WalletBalances) Get(token Token) BalanceReading {
	if r, ok := w.Readings[token]; ok {
		return r
	}
	return UnknownBalance(token, nil)
}

// Amount returns the balance of token, zero when unknown.
func (w WalletBalances) Amount(token Token) decimal.Decimal {
	return w.Get(token).Amount
}

// Unavailable lists the tokens whose balance could not be determined, in SupportedTokens order.
func (w WalletBalances) Unavailable() []Token {
	var out []Token
	for _, t := range SupportedTokens {
		if !w.Get(t).Known() {
			out = append(out, t)
		}
	}
	return out
}

// Complete reports whether every supported token has a known balance.
func (w WalletBalances) Complete() bool {
	return len(w.Unavailable()) == 0
}

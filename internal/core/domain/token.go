package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Token is a supported on-chain asset symbol.
type Token string

const (
	TokenSUI  Token = "SUI"
	TokenUSDC Token = "USDC"
	TokenUSDT Token = "USDT"
)

// FiatNGN is the only settlement currency.
const FiatNGN = "NGN"

// NativeCoinType is the Move type of the Sui gas coin.
const NativeCoinType = "0x2::sui::SUI"

// SupportedTokens lists every token in a stable order. The native token comes first.
var SupportedTokens = []Token{TokenSUI, TokenUSDC, TokenUSDT}

// ParseToken normalizes s and reports whether it names a supported token.
func ParseToken(s string) (Token, bool) {
	t := Token(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.IsSupported()
}

func (t Token) IsSupported() bool {
	switch t {
	case TokenSUI, TokenUSDC, TokenUSDT:
		return true
	}
	return false
}

// IsNative reports whether t is the chain's gas token.
func (t Token) IsNative() bool {
	return t == TokenSUI
}

// Decimals is the number of minor-unit digits the chain uses for t.
func (t Token) Decimals() int32 {
	switch t {
	case TokenSUI:
		return 9
	case TokenUSDC, TokenUSDT:
		return 6
	}
	return 0
}

// FromMinorUnits converts an on-chain integer balance into token units.
func (t Token) FromMinorUnits(minor decimal.Decimal) decimal.Decimal {
	return minor.Shift(-t.Decimals())
}

// ToMinorUnits converts token units into the chain's integer representation, truncating dust.
func (t Token) ToMinorUnits(amount decimal.Decimal) decimal.Decimal {
	return amount.Shift(t.Decimals()).Truncate(0)
}

// FitsMinorUnits reports whether amount is a whole number of minor units.
// Trailing zeros beyond the token's decimals are accepted.
func (t Token) FitsMinorUnits(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(t.Decimals()))
}

func (t Token) String() string { return string(t) }

// Direction is the conversion direction of a swap.
type Direction string

const (
	DirectionOnRamp  Direction = "ON_RAMP"  // fiat -> token
	DirectionOffRamp Direction = "OFF_RAMP" // token -> fiat
)

func (d Direction) IsValid() bool {
	return d == DirectionOnRamp || d == DirectionOffRamp
}

// Label is the lower-case form used in user-facing messages.
func (d Direction) Label() string {
	if d == DirectionOnRamp {
		return "on-ramp"
	}
	return "off-ramp"
}

// FeeKind identifies the on-chain operation a gas estimate is for.
type FeeKind string

const (
	FeeKindNativeTransfer FeeKind = "NATIVE_TRANSFER"
	FeeKindTokenTransfer  FeeKind = "TOKEN_TRANSFER"
	FeeKindOnRampCredit   FeeKind = "ON_RAMP_CREDIT"
)

// FeeKindForTransfer picks the fee kind for moving token on chain.
func FeeKindForTransfer(token Token) FeeKind {
	if token.IsNative() {
		return FeeKindNativeTransfer
	}
	return FeeKindTokenTransfer
}

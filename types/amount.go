package types

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/michaelpento.lv/dexroute/utils/math"
)

// CurrencyAmount is a raw integer quantity of a currency. The raw value
// always fits a Solidity uint256.
type CurrencyAmount struct {
	currency Currency
	raw      *big.Int
}

func NewCurrencyAmount(currency Currency, raw *big.Int) (*CurrencyAmount, error) {
	if err := math.ValidateSolidityType(raw, math.Uint256); err != nil {
		return nil, err
	}
	return &CurrencyAmount{currency: currency, raw: new(big.Int).Set(raw)}, nil
}

// NewNativeAmount is a shorthand for an amount of chainID's native currency.
func NewNativeAmount(chainID ChainID, raw *big.Int) (*CurrencyAmount, error) {
	native, ok := NativeCurrencyOf(chainID)
	if !ok {
		return nil, fmt.Errorf("no native currency on %s: %w", chainID, ErrChainID)
	}
	return NewCurrencyAmount(native, raw)
}

// ParseCurrencyAmount parses a human readable quantity such as "1.5" into
// raw units of currency. More fractional digits than the currency's
// decimals fail with ErrDecimals.
func ParseCurrencyAmount(currency Currency, s string) (*CurrencyAmount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	raw := d.Shift(int32(currency.Decimals()))
	if !raw.IsInteger() {
		return nil, fmt.Errorf("%q has more than %d decimals: %w", s, currency.Decimals(), ErrDecimals)
	}
	return NewCurrencyAmount(currency, raw.BigInt())
}

func (a *CurrencyAmount) Currency() Currency {
	return a.currency
}

// Raw returns a copy of the integer quantity.
func (a *CurrencyAmount) Raw() *big.Int {
	return new(big.Int).Set(a.raw)
}

// Fraction returns the amount in whole units, raw / 10^decimals.
func (a *CurrencyAmount) Fraction() *math.Fraction {
	return math.NewFraction(a.raw, math.Pow10(uint(a.currency.Decimals())))
}

func (a *CurrencyAmount) Add(other *CurrencyAmount) (*CurrencyAmount, error) {
	if !a.currency.Equal(other.currency) {
		return nil, ErrCurrency
	}
	return NewCurrencyAmount(a.currency, new(big.Int).Add(a.raw, other.raw))
}

func (a *CurrencyAmount) Subtract(other *CurrencyAmount) (*CurrencyAmount, error) {
	if !a.currency.Equal(other.currency) {
		return nil, ErrCurrency
	}
	return NewCurrencyAmount(a.currency, new(big.Int).Sub(a.raw, other.raw))
}

// Multiply scales the raw amount by f, truncating.
func (a *CurrencyAmount) Multiply(f *math.Fraction) (*CurrencyAmount, error) {
	return NewCurrencyAmount(a.currency, math.NewFractionFromInt(a.raw).Multiply(f).Quotient())
}

// Divide scales the raw amount by 1/f, truncating.
func (a *CurrencyAmount) Divide(f *math.Fraction) (*CurrencyAmount, error) {
	return NewCurrencyAmount(a.currency, math.NewFractionFromInt(a.raw).Divide(f).Quotient())
}

// Cmp compares two amounts of the same currency.
func (a *CurrencyAmount) Cmp(other *CurrencyAmount) (int, error) {
	if !a.currency.Equal(other.currency) {
		return 0, ErrCurrency
	}
	return a.raw.Cmp(other.raw), nil
}

// EqualTo reports whether both amounts have the same currency and quantity.
func (a *CurrencyAmount) EqualTo(other *CurrencyAmount) bool {
	c, err := a.Cmp(other)
	return err == nil && c == 0
}

func (a *CurrencyAmount) LessThan(other *CurrencyAmount) (bool, error) {
	c, err := a.Cmp(other)
	return c < 0, err
}

func (a *CurrencyAmount) GreaterThan(other *CurrencyAmount) (bool, error) {
	c, err := a.Cmp(other)
	return c > 0, err
}

func (a *CurrencyAmount) ToSignificant(significantDigits int, rounding math.Rounding) string {
	return a.Fraction().ToSignificant(significantDigits, rounding)
}

// ToFixed fails with ErrDecimals when more places than the currency's
// decimals are requested.
func (a *CurrencyAmount) ToFixed(decimalPlaces int, rounding math.Rounding) (string, error) {
	if decimalPlaces > int(a.currency.Decimals()) {
		return "", ErrDecimals
	}
	return a.Fraction().ToFixed(decimalPlaces, rounding), nil
}

// ToExact renders the full precision amount without trailing zeros.
func (a *CurrencyAmount) ToExact() string {
	return decimal.NewFromBigInt(a.raw, -int32(a.currency.Decimals())).String()
}

func (a *CurrencyAmount) String() string {
	return a.ToExact() + " " + a.currency.Symbol()
}

// TokenAmount is a CurrencyAmount of an ERC20 token.
type TokenAmount struct {
	*CurrencyAmount
	token *Token
}

func NewTokenAmount(token *Token, raw *big.Int) (*TokenAmount, error) {
	amount, err := NewCurrencyAmount(token, raw)
	if err != nil {
		return nil, err
	}
	return &TokenAmount{CurrencyAmount: amount, token: token}, nil
}

func (a *TokenAmount) Token() *Token {
	return a.token
}

func (a *TokenAmount) Add(other *TokenAmount) (*TokenAmount, error) {
	if !a.token.Equal(other.token) {
		return nil, ErrToken
	}
	return NewTokenAmount(a.token, new(big.Int).Add(a.raw, other.raw))
}

func (a *TokenAmount) Subtract(other *TokenAmount) (*TokenAmount, error) {
	if !a.token.Equal(other.token) {
		return nil, ErrToken
	}
	return NewTokenAmount(a.token, new(big.Int).Sub(a.raw, other.raw))
}

// WrappedAmount returns amount as a token amount, mapping the native
// currency to chainID's wrapped-native token.
func WrappedAmount(amount *CurrencyAmount, chainID ChainID) (*TokenAmount, error) {
	token, err := WrappedCurrency(amount.currency, chainID)
	if err != nil {
		return nil, err
	}
	return NewTokenAmount(token, amount.raw)
}

// UnwrappedAmount reports amount in target, which is either the amount's
// own token or the native currency the token wraps.
func UnwrappedAmount(amount *TokenAmount, target Currency) (*CurrencyAmount, error) {
	if target.Equal(amount.token) {
		return amount.CurrencyAmount, nil
	}
	if target.IsNative() && target.ChainID() == amount.token.ChainID() && IsWrappedNative(amount.token) {
		return NewCurrencyAmount(target, amount.raw)
	}
	return nil, fmt.Errorf("%s is not %s: %w", amount.token, target.Symbol(), ErrCurrency)
}

package types

import (
	"math/big"

	"github.com/michaelpento.lv/dexroute/utils/math"
)

// Price is the exchange rate between two currencies, stored in raw units:
// numerator quote units per denominator base units. The scalar
// 10^baseDecimals / 10^quoteDecimals converts it to whole units.
type Price struct {
	baseCurrency  Currency
	quoteCurrency Currency
	raw           *math.Fraction
	scalar        *math.Fraction
}

// NewPrice creates the price of denominator base units in numerator quote
// units. denominator must not be zero.
func NewPrice(base, quote Currency, denominator, numerator *big.Int) *Price {
	return &Price{
		baseCurrency:  base,
		quoteCurrency: quote,
		raw:           math.NewFraction(numerator, denominator),
		scalar: math.NewFraction(
			math.Pow10(uint(base.Decimals())),
			math.Pow10(uint(quote.Decimals())),
		),
	}
}

func (p *Price) BaseCurrency() Currency  { return p.baseCurrency }
func (p *Price) QuoteCurrency() Currency { return p.quoteCurrency }

// Raw returns the price in raw units.
func (p *Price) Raw() *math.Fraction {
	return p.raw
}

// Adjusted returns the price in whole units.
func (p *Price) Adjusted() *math.Fraction {
	return p.raw.Multiply(p.scalar)
}

func (p *Price) Invert() *Price {
	return NewPrice(p.quoteCurrency, p.baseCurrency, p.raw.Numerator(), p.raw.Denominator())
}

// Multiply chains p (A in B) with other (B in C) into a price of A in C.
func (p *Price) Multiply(other *Price) (*Price, error) {
	if !p.quoteCurrency.Equal(other.baseCurrency) {
		return nil, ErrToken
	}
	f := p.raw.Multiply(other.raw)
	return NewPrice(p.baseCurrency, other.quoteCurrency, f.Denominator(), f.Numerator()), nil
}

// Quote converts an amount of the base currency into the quote currency,
// truncating.
func (p *Price) Quote(amount *CurrencyAmount) (*CurrencyAmount, error) {
	if !amount.currency.Equal(p.baseCurrency) {
		return nil, ErrToken
	}
	return NewCurrencyAmount(p.quoteCurrency, p.raw.Multiply(math.NewFractionFromInt(amount.raw)).Quotient())
}

func (p *Price) ToSignificant(significantDigits int, rounding math.Rounding) string {
	return p.Adjusted().ToSignificant(significantDigits, rounding)
}

func (p *Price) ToFixed(decimalPlaces int, rounding math.Rounding) string {
	return p.Adjusted().ToFixed(decimalPlaces, rounding)
}

func (p *Price) String() string {
	return p.ToSignificant(6, math.RoundHalfUp) + " " + p.quoteCurrency.Symbol() + "/" + p.baseCurrency.Symbol()
}

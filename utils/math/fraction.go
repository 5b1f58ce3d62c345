package math

import (
	"fmt"
	"math/big"
)

// Fraction is an exact rational number. It is never reduced, so chained
// operations stay exact, and it is immutable: every operation returns a new
// Fraction and accessors hand out copies.
type Fraction struct {
	numerator   *big.Int
	denominator *big.Int
}

// NewFraction creates numerator/denominator. Like big.Int division it panics
// when the denominator is zero.
func NewFraction(numerator, denominator *big.Int) *Fraction {
	if denominator == nil || denominator.Sign() == 0 {
		panic("math: fraction with zero denominator")
	}
	return &Fraction{
		numerator:   Clone(numerator),
		denominator: new(big.Int).Set(denominator),
	}
}

// NewFractionFromInt creates the fraction x/1.
func NewFractionFromInt(x *big.Int) *Fraction {
	return NewFraction(x, One)
}

// NewFractionFromInt64 is a shorthand for small literal fractions.
func NewFractionFromInt64(numerator, denominator int64) *Fraction {
	return NewFraction(big.NewInt(numerator), big.NewInt(denominator))
}

// Numerator returns a copy of the numerator.
func (f *Fraction) Numerator() *big.Int {
	return new(big.Int).Set(f.numerator)
}

// Denominator returns a copy of the denominator.
func (f *Fraction) Denominator() *big.Int {
	return new(big.Int).Set(f.denominator)
}

// Quotient performs floor division toward zero.
func (f *Fraction) Quotient() *big.Int {
	return DivTrunc(f.numerator, f.denominator)
}

// Remainder returns (numerator - quotient*denominator) / denominator.
func (f *Fraction) Remainder() *Fraction {
	return NewFraction(new(big.Int).Rem(f.numerator, f.denominator), f.denominator)
}

// Invert swaps numerator and denominator.
func (f *Fraction) Invert() *Fraction {
	return NewFraction(f.denominator, f.numerator)
}

func (f *Fraction) Add(other *Fraction) *Fraction {
	if f.denominator.Cmp(other.denominator) == 0 {
		return NewFraction(new(big.Int).Add(f.numerator, other.numerator), f.denominator)
	}
	return NewFraction(
		new(big.Int).Add(
			new(big.Int).Mul(f.numerator, other.denominator),
			new(big.Int).Mul(other.numerator, f.denominator),
		),
		new(big.Int).Mul(f.denominator, other.denominator),
	)
}

func (f *Fraction) Subtract(other *Fraction) *Fraction {
	if f.denominator.Cmp(other.denominator) == 0 {
		return NewFraction(new(big.Int).Sub(f.numerator, other.numerator), f.denominator)
	}
	return NewFraction(
		new(big.Int).Sub(
			new(big.Int).Mul(f.numerator, other.denominator),
			new(big.Int).Mul(other.numerator, f.denominator),
		),
		new(big.Int).Mul(f.denominator, other.denominator),
	)
}

func (f *Fraction) Multiply(other *Fraction) *Fraction {
	return NewFraction(
		new(big.Int).Mul(f.numerator, other.numerator),
		new(big.Int).Mul(f.denominator, other.denominator),
	)
}

// Divide panics when other is zero.
func (f *Fraction) Divide(other *Fraction) *Fraction {
	return NewFraction(
		new(big.Int).Mul(f.numerator, other.denominator),
		new(big.Int).Mul(f.denominator, other.numerator),
	)
}

// Cmp compares f and other and returns -1, 0 or +1.
func (f *Fraction) Cmp(other *Fraction) int {
	left := new(big.Int).Mul(f.numerator, other.denominator)
	right := new(big.Int).Mul(other.numerator, f.denominator)
	// cross multiplication flips the order when exactly one denominator is negative
	if (f.denominator.Sign() < 0) != (other.denominator.Sign() < 0) {
		return right.Cmp(left)
	}
	return left.Cmp(right)
}

func (f *Fraction) LessThan(other *Fraction) bool {
	return f.Cmp(other) < 0
}

func (f *Fraction) EqualTo(other *Fraction) bool {
	return f.Cmp(other) == 0
}

func (f *Fraction) GreaterThan(other *Fraction) bool {
	return f.Cmp(other) > 0
}

// ToSignificant renders f with the given number of significant digits.
// Trailing zeros after the decimal point are dropped.
func (f *Fraction) ToSignificant(significantDigits int, rounding Rounding) string {
	if significantDigits <= 0 {
		panic(fmt.Sprintf("math: %d is not a positive number of significant digits", significantDigits))
	}
	return formatSignificant(f.numerator, f.denominator, significantDigits, rounding)
}

// ToFixed renders f with exactly decimalPlaces digits after the decimal point.
func (f *Fraction) ToFixed(decimalPlaces int, rounding Rounding) string {
	if decimalPlaces < 0 {
		panic(fmt.Sprintf("math: %d is not a valid number of decimal places", decimalPlaces))
	}
	return formatFixed(f.numerator, f.denominator, decimalPlaces, rounding)
}

// String returns the raw "numerator/denominator" form.
func (f *Fraction) String() string {
	return f.numerator.String() + "/" + f.denominator.String()
}

package math

import (
	"math/big"
)

var hundredPercent = NewFractionFromInt(Hundred)

// Percent is a Fraction stored as an exact ratio (3% is 3/100). Only the
// textual forms are scaled by 100.
type Percent struct {
	*Fraction
}

func NewPercent(numerator, denominator *big.Int) *Percent {
	return &Percent{Fraction: NewFraction(numerator, denominator)}
}

// NewPercentFromFraction views an existing fraction as a percentage.
func NewPercentFromFraction(f *Fraction) *Percent {
	return &Percent{Fraction: f}
}

// NewPercentFromBasisPoints returns bps/10000.
func NewPercentFromBasisPoints(bps uint32) *Percent {
	return NewPercent(new(big.Int).SetUint64(uint64(bps)), BasisPointDivisor)
}

func (p *Percent) ToSignificant(significantDigits int, rounding Rounding) string {
	return p.Fraction.Multiply(hundredPercent).ToSignificant(significantDigits, rounding)
}

func (p *Percent) ToFixed(decimalPlaces int, rounding Rounding) string {
	return p.Fraction.Multiply(hundredPercent).ToFixed(decimalPlaces, rounding)
}

func (p *Percent) String() string {
	return p.ToFixed(2, RoundHalfUp) + "%"
}

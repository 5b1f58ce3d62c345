package math

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// Rounding selects how a quotient is rounded for display.
type Rounding int

const (
	// RoundDown truncates toward zero.
	RoundDown Rounding = iota
	// RoundHalfUp rounds to nearest, ties away from zero. Default for display.
	RoundHalfUp
	// RoundUp rounds away from zero.
	RoundUp
)

func (r Rounding) String() string {
	switch r {
	case RoundDown:
		return "ROUND_DOWN"
	case RoundHalfUp:
		return "ROUND_HALF_UP"
	case RoundUp:
		return "ROUND_UP"
	default:
		return "ROUND_UNKNOWN"
	}
}

// roundedQuo returns n/d rounded according to rounding. Rounding is applied
// to the magnitude; the sign follows n/d.
func roundedQuo(n, d *big.Int, rounding Rounding) *big.Int {
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if r.Sign() == 0 {
		return q
	}

	awayFromZero := false
	switch rounding {
	case RoundUp:
		awayFromZero = true
	case RoundHalfUp:
		twice := new(big.Int).Abs(r)
		twice.Lsh(twice, 1)
		awayFromZero = twice.Cmp(new(big.Int).Abs(d)) >= 0
	}

	if awayFromZero {
		if (n.Sign() < 0) != (d.Sign() < 0) {
			q.Sub(q, One)
		} else {
			q.Add(q, One)
		}
	}
	return q
}

func formatFixed(n, d *big.Int, decimalPlaces int, rounding Rounding) string {
	scaled := new(big.Int).Mul(n, Pow10(uint(decimalPlaces)))
	q := roundedQuo(scaled, d, rounding)
	return decimal.NewFromBigInt(q, -int32(decimalPlaces)).StringFixed(int32(decimalPlaces))
}

func formatSignificant(n, d *big.Int, significantDigits int, rounding Rounding) string {
	if n.Sign() == 0 {
		return "0"
	}

	absN := new(big.Int).Abs(n)
	absD := new(big.Int).Abs(d)

	// pick e so that |n/d| * 10^e has exactly significantDigits integer digits
	var e int
	if q := new(big.Int).Quo(absN, absD); q.Sign() > 0 {
		e = significantDigits - len(q.String())
	} else {
		k := 0
		t := new(big.Int).Set(absN)
		for t.Cmp(absD) < 0 {
			t.Mul(t, Ten)
			k++
		}
		e = k + significantDigits - 1
	}

	num, den := new(big.Int).Set(n), new(big.Int).Set(d)
	if e >= 0 {
		num.Mul(num, Pow10(uint(e)))
	} else {
		den.Mul(den, Pow10(uint(-e)))
	}

	return decimal.NewFromBigInt(roundedQuo(num, den, rounding), -int32(e)).String()
}

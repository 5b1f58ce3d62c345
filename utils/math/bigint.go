package math

import (
	"math/big"
)

// Shared integer constants. They are read-only: never use one of them as the
// receiver of a big.Int operation.
var (
	Zero    = big.NewInt(0)
	One     = big.NewInt(1)
	Two     = big.NewInt(2)
	Three   = big.NewInt(3)
	Ten     = big.NewInt(10)
	Hundred = big.NewInt(100)

	// BasisPointDivisor represents 100% in basis points.
	BasisPointDivisor = big.NewInt(10000)

	// MaxUint8 is the largest value of a Solidity uint8.
	MaxUint8 = big.NewInt(255)

	// MaxUint256 is the largest value of a Solidity uint256 (2^256 - 1).
	MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	// precomputed 10^n for typical ERC20 decimals (0..18)
	precomputedPow10 [19]*big.Int
)

func init() {
	precomputedPow10[0] = big.NewInt(1)
	for i := 1; i < len(precomputedPow10); i++ {
		precomputedPow10[i] = new(big.Int).Mul(precomputedPow10[i-1], Ten)
	}
}

// Pow10 returns a fresh 10^n that the caller may modify.
func Pow10(n uint) *big.Int {
	if n < uint(len(precomputedPow10)) {
		return new(big.Int).Set(precomputedPow10[n])
	}
	return new(big.Int).Exp(Ten, new(big.Int).SetUint64(uint64(n)), nil)
}

// Clone returns a copy of x. A nil x clones to zero.
func Clone(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x)
}

// DivTrunc returns a / b rounded toward zero, which is what the EVM DIV
// opcode does for unsigned operands.
func DivTrunc(a, b *big.Int) *big.Int {
	return new(big.Int).Quo(a, b)
}

// DivCeil returns a / b rounded toward positive infinity.
func DivCeil(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() > 0) == (b.Sign() > 0) {
		q.Add(q, One)
	}
	return q
}

// Sqrt returns floor(sqrt(y)), matching the Babylonian method used by the
// V2 pair contract. y must not be negative.
func Sqrt(y *big.Int) *big.Int {
	if y.Sign() < 0 {
		panic("math: square root of negative number")
	}
	return new(big.Int).Sqrt(y)
}

// Min returns a copy of the smaller of a and b.
func Min(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}
	return new(big.Int).Set(b)
}

package dex

import (
	"slices"
)

// CompareTrades orders two trades of the same type, best first. Exact-input
// trades rank by output descending then input ascending; exact-output trades
// by input ascending then output descending.
func CompareTrades(a, b Trade) int {
	in := a.InputAmount().Raw().Cmp(b.InputAmount().Raw())
	out := a.OutputAmount().Raw().Cmp(b.OutputAmount().Raw())

	if a.TradeType() == ExactOutput {
		if in != 0 {
			return in
		}
		return -out
	}

	if out != 0 {
		return -out
	}
	return in
}

// SortTrades sorts trades best first. Ties keep their relative order.
func SortTrades[T Trade](trades []T) {
	slices.SortStableFunc(trades, func(a, b T) int {
		return CompareTrades(a, b)
	})
}

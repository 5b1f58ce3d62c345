package uniswap

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

// DefaultMaxHops bounds route length when no HopOptions are given.
const DefaultMaxHops = 3

// HopOptions limits the search. MaxHops must be at least 1; a MaxNumResults
// of zero keeps every trade found.
type HopOptions struct {
	MaxHops       int
	MaxNumResults int
}

type ComputeTradesExactInParams struct {
	Pairs            []*Pair
	CurrencyAmountIn *types.CurrencyAmount
	CurrencyOut      types.Currency
	MaxHops          *HopOptions
	MaximumSlippage  *math.Percent
}

type ComputeTradesExactOutParams struct {
	Pairs             []*Pair
	CurrencyIn        types.Currency
	CurrencyAmountOut *types.CurrencyAmount
	MaxHops           *HopOptions
	MaximumSlippage   *math.Percent
}

// searchFrame is one level of the depth-first walk. next is the index of the
// next pair to try from this frame, so the walk visits pairs in exactly the
// order a recursive search would.
type searchFrame struct {
	amount *types.TokenAmount
	path   []*Pair
	used   []bool
	next   int
}

func (f *searchFrame) child(amount *types.TokenAmount, pairIndex int, path []*Pair) searchFrame {
	used := slices.Clone(f.used)
	used[pairIndex] = true
	return searchFrame{amount: amount, path: path, used: used}
}

func resolveHopOptions(opts *HopOptions) (HopOptions, error) {
	if opts == nil {
		return HopOptions{MaxHops: DefaultMaxHops}, nil
	}
	if opts.MaxHops < 1 {
		return HopOptions{}, fmt.Errorf("max hops %d: %w", opts.MaxHops, ErrMaxHops)
	}
	if opts.MaxNumResults < 0 {
		return HopOptions{}, fmt.Errorf("max results %d: %w", opts.MaxNumResults, ErrMaxHops)
	}
	return *opts, nil
}

// skippable reports hop failures that prune a branch instead of failing the
// whole search.
func skippable(err error) bool {
	return errors.Is(err, ErrInsufficientReserves) || errors.Is(err, ErrInsufficientInputAmount)
}

// ComputeTradesExactIn finds every route of at most MaxHops pairs from the
// input amount to CurrencyOut and returns the resulting trades, best first.
// No pair is used twice within one route.
func ComputeTradesExactIn(params ComputeTradesExactInParams) ([]*Trade, error) {
	if len(params.Pairs) == 0 {
		return nil, ErrPairs
	}
	opts, err := resolveHopOptions(params.MaxHops)
	if err != nil {
		return nil, err
	}
	slippage, err := dex.ValidateSlippage(params.MaximumSlippage)
	if err != nil {
		return nil, err
	}

	chainID := params.CurrencyAmountIn.Currency().ChainID()
	amountIn, err := types.WrappedAmount(params.CurrencyAmountIn, chainID)
	if err != nil {
		return nil, err
	}
	tokenOut, err := types.WrappedCurrency(params.CurrencyOut, chainID)
	if err != nil {
		return nil, err
	}
	if amountIn.Token().Equal(tokenOut) {
		return nil, fmt.Errorf("input and output are both %s: %w", tokenOut, types.ErrCurrency)
	}

	pairs := params.Pairs
	var trades []*Trade
	stack := []searchFrame{{amount: amountIn, used: make([]bool, len(pairs))}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(pairs) {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.next
		top.next++

		pair := pairs[i]
		if top.used[i] || !pair.InvolvesToken(top.amount.Token()) || !pair.hasLiquidity() {
			continue
		}

		amountOut, _, err := pair.GetOutputAmount(top.amount)
		if err != nil {
			if skippable(err) {
				continue
			}
			return nil, err
		}

		path := append(slices.Clone(top.path), pair)
		if amountOut.Token().Equal(tokenOut) {
			route, err := NewRoute(path, params.CurrencyAmountIn.Currency(), params.CurrencyOut)
			if err != nil {
				return nil, err
			}
			trade, err := NewTrade(route, params.CurrencyAmountIn, dex.ExactInput, slippage)
			if err != nil {
				if skippable(err) {
					continue
				}
				return nil, err
			}
			trades = append(trades, trade)
		} else if len(path) < opts.MaxHops {
			stack = append(stack, top.child(amountOut, i, path))
		}
	}

	return rankTrades(trades, opts.MaxNumResults), nil
}

// ComputeTradesExactOut is the dual of ComputeTradesExactIn: it walks
// backward from the output amount to CurrencyIn and ranks trades by the
// smallest required input.
func ComputeTradesExactOut(params ComputeTradesExactOutParams) ([]*Trade, error) {
	if len(params.Pairs) == 0 {
		return nil, ErrPairs
	}
	opts, err := resolveHopOptions(params.MaxHops)
	if err != nil {
		return nil, err
	}
	slippage, err := dex.ValidateSlippage(params.MaximumSlippage)
	if err != nil {
		return nil, err
	}

	chainID := params.CurrencyAmountOut.Currency().ChainID()
	amountOut, err := types.WrappedAmount(params.CurrencyAmountOut, chainID)
	if err != nil {
		return nil, err
	}
	tokenIn, err := types.WrappedCurrency(params.CurrencyIn, chainID)
	if err != nil {
		return nil, err
	}
	if amountOut.Token().Equal(tokenIn) {
		return nil, fmt.Errorf("input and output are both %s: %w", tokenIn, types.ErrCurrency)
	}

	pairs := params.Pairs
	var trades []*Trade
	stack := []searchFrame{{amount: amountOut, used: make([]bool, len(pairs))}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(pairs) {
			stack = stack[:len(stack)-1]
			continue
		}
		i := top.next
		top.next++

		pair := pairs[i]
		if top.used[i] || !pair.InvolvesToken(top.amount.Token()) || !pair.hasLiquidity() {
			continue
		}

		amountIn, _, err := pair.GetInputAmount(top.amount)
		if err != nil {
			if skippable(err) {
				continue
			}
			return nil, err
		}

		path := append([]*Pair{pair}, top.path...)
		if amountIn.Token().Equal(tokenIn) {
			route, err := NewRoute(path, params.CurrencyIn, params.CurrencyAmountOut.Currency())
			if err != nil {
				return nil, err
			}
			trade, err := NewTrade(route, params.CurrencyAmountOut, dex.ExactOutput, slippage)
			if err != nil {
				if skippable(err) {
					continue
				}
				return nil, err
			}
			trades = append(trades, trade)
		} else if len(path) < opts.MaxHops {
			stack = append(stack, top.child(amountIn, i, path))
		}
	}

	return rankTrades(trades, opts.MaxNumResults), nil
}

// rankTrades sorts best first. Equal amounts go to the route with fewer hops,
// then to the lexicographically smaller sequence of pair addresses, then to
// the first discovered.
func rankTrades(trades []*Trade, maxResults int) []*Trade {
	slices.SortStableFunc(trades, func(a, b *Trade) int {
		if c := dex.CompareTrades(a, b); c != 0 {
			return c
		}
		if c := cmp.Compare(a.route.Hops(), b.route.Hops()); c != 0 {
			return c
		}
		return compareRoutePairs(a.route, b.route)
	})

	if trades == nil {
		trades = []*Trade{}
	}
	if maxResults > 0 && len(trades) > maxResults {
		trades = trades[:maxResults]
	}
	return trades
}

func compareRoutePairs(a, b *Route) int {
	for i := 0; i < len(a.pairs) && i < len(b.pairs); i++ {
		if c := bytes.Compare(a.pairs[i].liquidityToken.Address().Bytes(), b.pairs[i].liquidityToken.Address().Bytes()); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.pairs), len(b.pairs))
}

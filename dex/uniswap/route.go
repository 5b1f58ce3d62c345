package uniswap

import (
	"fmt"
	"strings"

	"github.com/michaelpento.lv/dexroute/types"
)

// Route is a chain of pairs leading from an input currency to an output
// currency. Native endpoints are kept as given; the path holds their
// wrapped tokens.
type Route struct {
	pairs  []*Pair
	path   []*types.Token
	input  types.Currency
	output types.Currency
}

// NewRoute validates that pairs connect input to output. A nil output is
// inferred from the last pair.
func NewRoute(pairs []*Pair, input, output types.Currency) (*Route, error) {
	if len(pairs) == 0 {
		return nil, ErrPairs
	}

	chainID := pairs[0].ChainID()
	for _, pair := range pairs[1:] {
		if pair.ChainID() != chainID {
			return nil, types.ErrChainID
		}
	}

	wrappedInput, err := types.WrappedCurrency(input, chainID)
	if err != nil {
		return nil, err
	}
	if !pairs[0].InvolvesToken(wrappedInput) {
		return nil, fmt.Errorf("input %s not in first pair: %w", wrappedInput, types.ErrToken)
	}

	path := make([]*types.Token, 0, len(pairs)+1)
	path = append(path, wrappedInput)
	for i, pair := range pairs {
		current := path[i]
		if !pair.InvolvesToken(current) {
			return nil, fmt.Errorf("pair %d does not continue from %s: %w", i, current, types.ErrToken)
		}
		if current.Equal(pair.Token0()) {
			path = append(path, pair.Token1())
		} else {
			path = append(path, pair.Token0())
		}
	}

	last := path[len(path)-1]
	if output == nil {
		output = last
	} else {
		wrappedOutput, err := types.WrappedCurrency(output, chainID)
		if err != nil {
			return nil, err
		}
		if !wrappedOutput.Equal(last) {
			return nil, fmt.Errorf("output %s not at end of path: %w", wrappedOutput, types.ErrToken)
		}
	}

	return &Route{
		pairs:  append([]*Pair(nil), pairs...),
		path:   path,
		input:  input,
		output: output,
	}, nil
}

func (r *Route) Pairs() []*Pair {
	return append([]*Pair(nil), r.pairs...)
}

func (r *Route) Path() []*types.Token {
	return append([]*types.Token(nil), r.path...)
}

func (r *Route) Input() types.Currency  { return r.input }
func (r *Route) Output() types.Currency { return r.output }
func (r *Route) ChainID() types.ChainID { return r.pairs[0].ChainID() }
func (r *Route) Hops() int              { return len(r.pairs) }

// MidPrice is the marginal price of the output in the input currency,
// multiplied across every hop.
func (r *Route) MidPrice() (*types.Price, error) {
	var price *types.Price
	for i, pair := range r.pairs {
		hop, err := pair.PriceOf(r.path[i])
		if err != nil {
			return nil, err
		}
		if price == nil {
			price = hop
			continue
		}
		if price, err = price.Multiply(hop); err != nil {
			return nil, err
		}
	}
	raw := price.Raw()
	return types.NewPrice(r.input, r.output, raw.Denominator(), raw.Numerator()), nil
}

func (r *Route) String() string {
	symbols := make([]string, len(r.path))
	for i, t := range r.path {
		symbols[i] = t.Symbol()
	}
	return strings.Join(symbols, " -> ")
}

package uniswap

import (
	"fmt"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

// Trade is a swap along a single Route. All amounts are computed at
// construction.
type Trade struct {
	route          *Route
	tradeType      dex.TradeType
	inputAmount    *types.CurrencyAmount
	outputAmount   *types.CurrencyAmount
	executionPrice *types.Price
	nextMidPrice   *types.Price
	priceImpact    *math.Percent

	maximumSlippage  *math.Percent
	minimumAmountOut *types.CurrencyAmount
	maximumAmountIn  *types.CurrencyAmount
}

var _ dex.Trade = (*Trade)(nil)

// NewTrade quotes amount through route. For ExactInput amount is the input,
// for ExactOutput it is the output. A nil maximumSlippage uses the default.
func NewTrade(route *Route, amount *types.CurrencyAmount, tradeType dex.TradeType, maximumSlippage *math.Percent) (*Trade, error) {
	slippage, err := dex.ValidateSlippage(maximumSlippage)
	if err != nil {
		return nil, err
	}

	chainID := route.ChainID()
	path := route.path
	amounts := make([]*types.TokenAmount, len(path))
	nextPairs := make([]*Pair, len(route.pairs))

	switch tradeType {
	case dex.ExactInput:
		if !amount.Currency().Equal(route.input) {
			return nil, fmt.Errorf("amount in %s, route input %s: %w", amount.Currency().Symbol(), route.input.Symbol(), types.ErrCurrency)
		}
		if amounts[0], err = types.WrappedAmount(amount, chainID); err != nil {
			return nil, err
		}
		for i, pair := range route.pairs {
			if amounts[i+1], nextPairs[i], err = pair.GetOutputAmount(amounts[i]); err != nil {
				return nil, err
			}
		}
	case dex.ExactOutput:
		if !amount.Currency().Equal(route.output) {
			return nil, fmt.Errorf("amount in %s, route output %s: %w", amount.Currency().Symbol(), route.output.Symbol(), types.ErrCurrency)
		}
		if amounts[len(amounts)-1], err = types.WrappedAmount(amount, chainID); err != nil {
			return nil, err
		}
		for i := len(path) - 1; i > 0; i-- {
			if amounts[i-1], nextPairs[i-1], err = route.pairs[i-1].GetInputAmount(amounts[i]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("unknown trade type %d", int(tradeType))
	}

	t := &Trade{
		route:           route,
		tradeType:       tradeType,
		maximumSlippage: slippage,
	}

	if tradeType == dex.ExactInput {
		t.inputAmount = amount
	} else if t.inputAmount, err = types.UnwrappedAmount(amounts[0], route.input); err != nil {
		return nil, err
	}
	if tradeType == dex.ExactOutput {
		t.outputAmount = amount
	} else if t.outputAmount, err = types.UnwrappedAmount(amounts[len(amounts)-1], route.output); err != nil {
		return nil, err
	}

	if t.inputAmount.Currency().Equal(t.outputAmount.Currency()) {
		return nil, fmt.Errorf("input and output are both %s: %w", t.inputAmount.Currency().Symbol(), types.ErrCurrency)
	}
	if t.inputAmount.Raw().Sign() == 0 || t.outputAmount.Raw().Sign() == 0 {
		return nil, ErrInsufficientInputAmount
	}

	t.executionPrice = types.NewPrice(
		t.inputAmount.Currency(),
		t.outputAmount.Currency(),
		t.inputAmount.Raw(),
		t.outputAmount.Raw(),
	)

	nextRoute, err := NewRoute(nextPairs, route.input, route.output)
	if err != nil {
		return nil, err
	}
	if t.nextMidPrice, err = nextRoute.MidPrice(); err != nil {
		return nil, err
	}

	midPrice, err := route.MidPrice()
	if err != nil {
		return nil, err
	}
	t.priceImpact = computePriceImpact(midPrice, t.inputAmount, t.outputAmount)

	if err := t.applySlippage(); err != nil {
		return nil, err
	}
	return t, nil
}

// applySlippage widens the non-exact side of the trade. Exact-input trades
// accept out / (1 + slippage), exact-output trades pay up to
// in * (1 + slippage); both truncated.
func (t *Trade) applySlippage() error {
	factor := math.NewFractionFromInt(math.One).Add(t.maximumSlippage.Fraction)

	t.minimumAmountOut = t.outputAmount
	t.maximumAmountIn = t.inputAmount

	var err error
	if t.tradeType == dex.ExactInput {
		t.minimumAmountOut, err = t.outputAmount.Multiply(factor.Invert())
	} else {
		t.maximumAmountIn, err = t.inputAmount.Multiply(factor)
	}
	return err
}

// computePriceImpact returns (midPrice*in - out) / (midPrice*in).
func computePriceImpact(midPrice *types.Price, inputAmount, outputAmount *types.CurrencyAmount) *math.Percent {
	exactQuote := midPrice.Raw().Multiply(math.NewFractionFromInt(inputAmount.Raw()))
	impact := exactQuote.Subtract(math.NewFractionFromInt(outputAmount.Raw())).Divide(exactQuote)
	return math.NewPercentFromFraction(impact)
}

func (t *Trade) Route() *Route                       { return t.route }
func (t *Trade) TradeType() dex.TradeType            { return t.tradeType }
func (t *Trade) Platform() dex.Platform              { return t.route.pairs[0].platform }
func (t *Trade) ChainID() types.ChainID              { return t.route.ChainID() }
func (t *Trade) InputAmount() *types.CurrencyAmount  { return t.inputAmount }
func (t *Trade) OutputAmount() *types.CurrencyAmount { return t.outputAmount }
func (t *Trade) ExecutionPrice() *types.Price        { return t.executionPrice }
func (t *Trade) PriceImpact() *math.Percent          { return t.priceImpact }
func (t *Trade) MaximumSlippage() *math.Percent      { return t.maximumSlippage }

// NextMidPrice is the route's mid price after the trade executes.
func (t *Trade) NextMidPrice() *types.Price {
	return t.nextMidPrice
}

func (t *Trade) MinimumAmountOut() *types.CurrencyAmount { return t.minimumAmountOut }
func (t *Trade) MaximumAmountIn() *types.CurrencyAmount  { return t.maximumAmountIn }

func (t *Trade) String() string {
	return fmt.Sprintf("%s %s: %s -> %s via %s", t.route.pairs[0].platform, t.tradeType, t.inputAmount, t.outputAmount, t.route)
}

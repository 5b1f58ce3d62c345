package dex

import (
	"errors"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

// ErrSlippageTolerance is returned for a negative maximum slippage.
var ErrSlippageTolerance = errors.New("SLIPPAGE_TOLERANCE")

// DefaultMaximumSlippage is applied when a caller passes no slippage (0.5%).
var DefaultMaximumSlippage = math.NewPercentFromBasisPoints(50)

// TradeType tells which side of a trade is fixed.
type TradeType int

const (
	// ExactInput fixes the input amount and solves for the output.
	ExactInput TradeType = iota
	// ExactOutput fixes the output amount and solves for the input.
	ExactOutput
)

func (t TradeType) String() string {
	switch t {
	case ExactInput:
		return "EXACT_INPUT"
	case ExactOutput:
		return "EXACT_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

// Trade is a quoted swap from any venue. Implementations are immutable.
type Trade interface {
	// TradeType returns which side of the trade is exact
	TradeType() TradeType

	// Platform returns the venue that executes the trade
	Platform() Platform

	ChainID() types.ChainID

	InputAmount() *types.CurrencyAmount
	OutputAmount() *types.CurrencyAmount

	// ExecutionPrice is the average price of the trade, output per input
	ExecutionPrice() *types.Price

	// PriceImpact is the relative difference between mid price and execution price
	PriceImpact() *math.Percent

	MaximumSlippage() *math.Percent

	// MinimumAmountOut is the worst output accepted at the maximum slippage
	MinimumAmountOut() *types.CurrencyAmount

	// MaximumAmountIn is the worst input accepted at the maximum slippage
	MaximumAmountIn() *types.CurrencyAmount

	// SwapTransaction builds the unsigned call that executes the trade
	SwapTransaction(opts SwapOptions) (*ethereum.CallMsg, error)
}

// SwapOptions controls calldata generation. Exactly one of Deadline or TTL
// should be set; Deadline wins when both are.
type SwapOptions struct {
	Recipient common.Address

	// Deadline is the absolute time after which the swap reverts
	Deadline time.Time

	// TTL is relative to the moment the transaction is built
	TTL time.Duration

	// FeeOnTransfer selects the router methods that support tokens taking
	// a fee on transfer. Exact-input trades only.
	FeeOnTransfer bool
}

// DeadlineAt resolves the swap deadline relative to now.
func (o SwapOptions) DeadlineAt(now time.Time) time.Time {
	if !o.Deadline.IsZero() {
		return o.Deadline
	}
	return now.Add(o.TTL)
}

// ValidateSlippage rejects negative slippage and substitutes the default
// for nil.
func ValidateSlippage(slippage *math.Percent) (*math.Percent, error) {
	if slippage == nil {
		return DefaultMaximumSlippage, nil
	}
	if slippage.LessThan(math.NewFractionFromInt(math.Zero)) {
		return nil, ErrSlippageTolerance
	}
	return slippage, nil
}

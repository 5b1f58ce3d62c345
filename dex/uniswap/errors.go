package uniswap

import "errors"

var (
	// ErrInsufficientReserves means a pair cannot serve the requested swap.
	ErrInsufficientReserves = errors.New("insufficient reserves")
	// ErrInsufficientInputAmount means the input is too small to produce output.
	ErrInsufficientInputAmount = errors.New("insufficient input amount")

	ErrPairs     = errors.New("PAIRS")
	ErrMaxHops   = errors.New("MAX_HOPS")
	ErrLiquidity = errors.New("LIQUIDITY")
	ErrSwapFee   = errors.New("SWAP_FEE")

	ErrEtherInOut            = errors.New("ETHER_IN_OUT")
	ErrTTL                   = errors.New("TTL")
	ErrExactOutFeeOnTransfer = errors.New("EXACT_OUT_FOT")
	ErrMixedPlatforms        = errors.New("route mixes platforms")
	ErrUnsupportedPlatform   = errors.New("platform not deployed on chain")
)

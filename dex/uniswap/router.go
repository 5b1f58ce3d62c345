package uniswap

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/michaelpento.lv/dexroute/dex"
)

// RouterABI covers the swap methods of UniswapV2Router02 and its forks.
const RouterABI = `[
{"inputs":[{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactTokensForTokens","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountOut","type":"uint256"},{"internalType":"uint256","name":"amountInMax","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapTokensForExactTokens","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactETHForTokens","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"payable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountOut","type":"uint256"},{"internalType":"uint256","name":"amountInMax","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapTokensForExactETH","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactTokensForETH","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountOut","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapETHForExactTokens","outputs":[{"internalType":"uint256[]","name":"amounts","type":"uint256[]"}],"stateMutability":"payable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactTokensForTokensSupportingFeeOnTransferTokens","outputs":[],"stateMutability":"nonpayable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactETHForTokensSupportingFeeOnTransferTokens","outputs":[],"stateMutability":"payable","type":"function"},
{"inputs":[{"internalType":"uint256","name":"amountIn","type":"uint256"},{"internalType":"uint256","name":"amountOutMin","type":"uint256"},{"internalType":"address[]","name":"path","type":"address[]"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"deadline","type":"uint256"}],"name":"swapExactTokensForETHSupportingFeeOnTransferTokens","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var routerABI abi.ABI

func init() {
	var err error
	routerABI, err = abi.JSON(strings.NewReader(RouterABI))
	if err != nil {
		panic(fmt.Sprintf("failed to parse router ABI: %v", err))
	}
}

// now is replaced in tests
var now = time.Now

// SwapParameters is a decoded router call.
type SwapParameters struct {
	MethodName string
	Args       []interface{}
	Value      *big.Int
}

// SwapCallParameters picks the router method and arguments that execute t.
func (t *Trade) SwapCallParameters(opts dex.SwapOptions) (*SwapParameters, error) {
	etherIn := t.inputAmount.Currency().IsNative()
	etherOut := t.outputAmount.Currency().IsNative()
	if etherIn && etherOut {
		return nil, ErrEtherInOut
	}
	if opts.Deadline.IsZero() && opts.TTL <= 0 {
		return nil, ErrTTL
	}

	to := opts.Recipient
	amountIn := t.MaximumAmountIn().Raw()
	amountOut := t.MinimumAmountOut().Raw()
	deadline := big.NewInt(opts.DeadlineAt(now()).Unix())

	path := make([]common.Address, len(t.route.path))
	for i, token := range t.route.path {
		path[i] = token.Address()
	}

	params := &SwapParameters{Value: new(big.Int)}
	switch t.tradeType {
	case dex.ExactInput:
		suffix := ""
		if opts.FeeOnTransfer {
			suffix = "SupportingFeeOnTransferTokens"
		}
		switch {
		case etherIn:
			params.MethodName = "swapExactETHForTokens" + suffix
			params.Args = []interface{}{amountOut, path, to, deadline}
			params.Value = amountIn
		case etherOut:
			params.MethodName = "swapExactTokensForETH" + suffix
			params.Args = []interface{}{amountIn, amountOut, path, to, deadline}
		default:
			params.MethodName = "swapExactTokensForTokens" + suffix
			params.Args = []interface{}{amountIn, amountOut, path, to, deadline}
		}
	case dex.ExactOutput:
		if opts.FeeOnTransfer {
			return nil, ErrExactOutFeeOnTransfer
		}
		switch {
		case etherIn:
			params.MethodName = "swapETHForExactTokens"
			params.Args = []interface{}{amountOut, path, to, deadline}
			params.Value = amountIn
		case etherOut:
			params.MethodName = "swapTokensForExactETH"
			params.Args = []interface{}{amountOut, amountIn, path, to, deadline}
		default:
			params.MethodName = "swapTokensForExactTokens"
			params.Args = []interface{}{amountOut, amountIn, path, to, deadline}
		}
	}
	return params, nil
}

// SwapTransaction returns the unsigned router call that executes t.
func (t *Trade) SwapTransaction(opts dex.SwapOptions) (*ethereum.CallMsg, error) {
	platform := t.Platform()
	for _, pair := range t.route.pairs[1:] {
		if pair.platform != platform {
			return nil, ErrMixedPlatforms
		}
	}
	cfg, ok := platform.Config(t.ChainID())
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", platform, t.ChainID(), ErrUnsupportedPlatform)
	}

	params, err := t.SwapCallParameters(opts)
	if err != nil {
		return nil, err
	}
	data, err := routerABI.Pack(params.MethodName, params.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", params.MethodName, err)
	}

	router := cfg.Router
	return &ethereum.CallMsg{
		To:    &router,
		Data:  data,
		Value: params.Value,
	}, nil
}

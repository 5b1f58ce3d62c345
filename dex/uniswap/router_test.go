package uniswap

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	tu "github.com/michaelpento.lv/dexroute/utils/testutils"
)

var (
	testRecipient = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	testNow       = time.Unix(1700000000, 0)
)

func fixNow(t *testing.T) {
	orig := now
	now = func() time.Time { return testNow }
	t.Cleanup(func() { now = orig })
}

func newRouterTrade(t *testing.T, route *Route, amount *types.CurrencyAmount, tradeType dex.TradeType) *Trade {
	t.Helper()
	trade, err := NewTrade(route, amount, tradeType, bps(0))
	require.NoError(t, err)
	return trade
}

// decodeCall unpacks router calldata back into its method name and arguments.
func decodeCall(t *testing.T, data []byte) (string, []interface{}) {
	t.Helper()
	method, err := routerABI.MethodById(data[:4])
	require.NoError(t, err)
	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return method.Name, args
}

func TestSwapCallParameters(t *testing.T) {
	fixNow(t)

	weth := tu.WETH()
	pair02 := newTestPair(t, tu.Token0, 1000, tu.Token2, 1100)
	pairW0 := newTestPair(t, weth, 1000, tu.Token0, 1000)

	tokenRoute, err := NewRoute([]*Pair{pair02}, tu.Token0, tu.Token2)
	require.NoError(t, err)
	ethInRoute, err := NewRoute([]*Pair{pairW0}, tu.ETH(), tu.Token0)
	require.NoError(t, err)
	ethOutRoute, err := NewRoute([]*Pair{pairW0}, tu.Token0, tu.ETH())
	require.NoError(t, err)

	tests := []struct {
		name          string
		trade         *Trade
		feeOnTransfer bool
		wantMethod    string
		wantArgs      int
		wantValue     int64
	}{
		{
			name:       "exact tokens for tokens",
			trade:      newRouterTrade(t, tokenRoute, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput),
			wantMethod: "swapExactTokensForTokens",
			wantArgs:   5,
		},
		{
			name:          "exact tokens for tokens fee on transfer",
			trade:         newRouterTrade(t, tokenRoute, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput),
			feeOnTransfer: true,
			wantMethod:    "swapExactTokensForTokensSupportingFeeOnTransferTokens",
			wantArgs:      5,
		},
		{
			name:       "tokens for exact tokens",
			trade:      newRouterTrade(t, tokenRoute, tu.Amount(t, tu.Token2, 100).CurrencyAmount, dex.ExactOutput),
			wantMethod: "swapTokensForExactTokens",
			wantArgs:   5,
		},
		{
			name:       "exact eth for tokens",
			trade:      newRouterTrade(t, ethInRoute, tu.NativeAmount(t, 100), dex.ExactInput),
			wantMethod: "swapExactETHForTokens",
			wantArgs:   4,
			wantValue:  100,
		},
		{
			name:          "exact eth for tokens fee on transfer",
			trade:         newRouterTrade(t, ethInRoute, tu.NativeAmount(t, 100), dex.ExactInput),
			feeOnTransfer: true,
			wantMethod:    "swapExactETHForTokensSupportingFeeOnTransferTokens",
			wantArgs:      4,
			wantValue:     100,
		},
		{
			name:       "eth for exact tokens",
			trade:      newRouterTrade(t, ethInRoute, tu.Amount(t, tu.Token0, 90).CurrencyAmount, dex.ExactOutput),
			wantMethod: "swapETHForExactTokens",
			wantArgs:   4,
			wantValue:  100,
		},
		{
			name:       "exact tokens for eth",
			trade:      newRouterTrade(t, ethOutRoute, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput),
			wantMethod: "swapExactTokensForETH",
			wantArgs:   5,
		},
		{
			name:          "exact tokens for eth fee on transfer",
			trade:         newRouterTrade(t, ethOutRoute, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput),
			feeOnTransfer: true,
			wantMethod:    "swapExactTokensForETHSupportingFeeOnTransferTokens",
			wantArgs:      5,
		},
		{
			name:       "tokens for exact eth",
			trade:      newRouterTrade(t, ethOutRoute, tu.NativeAmount(t, 90), dex.ExactOutput),
			wantMethod: "swapTokensForExactETH",
			wantArgs:   5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := dex.SwapOptions{Recipient: testRecipient, TTL: 20 * time.Minute, FeeOnTransfer: tt.feeOnTransfer}

			params, err := tt.trade.SwapCallParameters(opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, params.MethodName)
			assert.Len(t, params.Args, tt.wantArgs)
			assert.Equal(t, tt.wantValue, params.Value.Int64())

			deadline := params.Args[len(params.Args)-1].(*big.Int)
			assert.Equal(t, testNow.Add(20*time.Minute).Unix(), deadline.Int64())
			assert.Equal(t, testRecipient, params.Args[len(params.Args)-2])

			msg, err := tt.trade.SwapTransaction(opts)
			require.NoError(t, err)
			cfg, _ := dex.Uniswap.Config(types.Mainnet)
			require.NotNil(t, msg.To)
			assert.Equal(t, cfg.Router, *msg.To)
			assert.Equal(t, tt.wantValue, msg.Value.Int64())

			name, args := decodeCall(t, msg.Data)
			assert.Equal(t, tt.wantMethod, name)
			assert.Len(t, args, tt.wantArgs)
		})
	}
}

func TestSwapCallParametersAmounts(t *testing.T) {
	fixNow(t)

	pair01 := newTestPair(t, tu.Token0, 1000, tu.Token1, 1000)
	pair12 := newTestPair(t, tu.Token1, 1200, tu.Token2, 1000)
	route, err := NewRoute([]*Pair{pair01, pair12}, tu.Token0, tu.Token2)
	require.NoError(t, err)

	trade, err := NewTrade(route, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput, bps(500))
	require.NoError(t, err)

	deadline := testNow.Add(time.Hour)
	msg, err := trade.SwapTransaction(dex.SwapOptions{Recipient: testRecipient, Deadline: deadline})
	require.NoError(t, err)

	name, args := decodeCall(t, msg.Data)
	assert.Equal(t, "swapExactTokensForTokens", name)
	assert.Equal(t, int64(100), args[0].(*big.Int).Int64())
	assert.Equal(t, int64(65), args[1].(*big.Int).Int64())
	assert.Equal(t, []common.Address{tu.Token0.Address(), tu.Token1.Address(), tu.Token2.Address()}, args[2])
	assert.Equal(t, testRecipient, args[3])
	assert.Equal(t, deadline.Unix(), args[4].(*big.Int).Int64())

	trade, err = NewTrade(route, tu.Amount(t, tu.Token2, 100).CurrencyAmount, dex.ExactOutput, bps(500))
	require.NoError(t, err)
	msg, err = trade.SwapTransaction(dex.SwapOptions{Recipient: testRecipient, Deadline: deadline})
	require.NoError(t, err)

	name, args = decodeCall(t, msg.Data)
	assert.Equal(t, "swapTokensForExactTokens", name)
	assert.Equal(t, int64(100), args[0].(*big.Int).Int64())
	assert.Equal(t, int64(163), args[1].(*big.Int).Int64())
}

func TestSwapCallParametersErrors(t *testing.T) {
	fixNow(t)

	pair02 := newTestPair(t, tu.Token0, 1000, tu.Token2, 1100)
	route, err := NewRoute([]*Pair{pair02}, tu.Token0, tu.Token2)
	require.NoError(t, err)

	exactIn := newRouterTrade(t, route, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput)
	exactOut := newRouterTrade(t, route, tu.Amount(t, tu.Token2, 100).CurrencyAmount, dex.ExactOutput)

	_, err = exactIn.SwapCallParameters(dex.SwapOptions{Recipient: testRecipient})
	assert.ErrorIs(t, err, ErrTTL)

	_, err = exactOut.SwapCallParameters(dex.SwapOptions{Recipient: testRecipient, TTL: time.Minute, FeeOnTransfer: true})
	assert.ErrorIs(t, err, ErrExactOutFeeOnTransfer)

	sushi12, err := NewPair(tu.Amount(t, tu.Token1, 1200), tu.Amount(t, tu.Token2, 1000), DefaultSwapFee, dex.Sushiswap)
	require.NoError(t, err)
	pair01 := newTestPair(t, tu.Token0, 1000, tu.Token1, 1000)
	mixed, err := NewRoute([]*Pair{pair01, sushi12}, tu.Token0, tu.Token2)
	require.NoError(t, err)
	mixedTrade := newRouterTrade(t, mixed, tu.Amount(t, tu.Token0, 100).CurrencyAmount, dex.ExactInput)

	_, err = mixedTrade.SwapTransaction(dex.SwapOptions{Recipient: testRecipient, TTL: time.Minute})
	assert.ErrorIs(t, err, ErrMixedPlatforms)
}

func TestSwapCallParametersEtherInOut(t *testing.T) {
	weth := tu.WETH()
	pairW0 := newTestPair(t, weth, 1000, tu.Token0, 1000)
	pair0W := newTestPair(t, tu.Token0, 500, weth, 500)

	// ETH -> T0 -> ETH through two different pairs
	route, err := NewRoute([]*Pair{pairW0, pair0W}, tu.ETH(), tu.ETH())
	require.NoError(t, err)

	trade := &Trade{
		route:        route,
		tradeType:    dex.ExactInput,
		inputAmount:  tu.NativeAmount(t, 100),
		outputAmount: tu.NativeAmount(t, 40),
	}
	_, err = trade.SwapCallParameters(dex.SwapOptions{Recipient: testRecipient, TTL: time.Minute})
	assert.ErrorIs(t, err, ErrEtherInOut)
}

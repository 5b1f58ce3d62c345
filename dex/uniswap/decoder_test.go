package uniswap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelpento.lv/dexroute/dex"
	tu "github.com/michaelpento.lv/dexroute/utils/testutils"
)

func TestDecodeSwapCall(t *testing.T) {
	fixNow(t)

	pair01 := newTestPair(t, tu.Token0, 1000, tu.Token1, 1000)
	pair12 := newTestPair(t, tu.Token1, 1200, tu.Token2, 1000)
	route, err := NewRoute([]*Pair{pair01, pair12}, tu.Token0, tu.Token2)
	require.NoError(t, err)

	trade, err := NewTrade(route, tu.Amount(t, tu.Token2, 100).CurrencyAmount, dex.ExactOutput, bps(500))
	require.NoError(t, err)
	msg, err := trade.SwapTransaction(dex.SwapOptions{Recipient: testRecipient, TTL: time.Minute})
	require.NoError(t, err)

	call, err := DecodeSwapCall(msg.Data)
	require.NoError(t, err)
	assert.Equal(t, "swapTokensForExactTokens", call.Method)
	assert.Equal(t, tu.Token0.Address(), call.TokenIn)
	assert.Equal(t, tu.Token2.Address(), call.TokenOut)
	assert.Len(t, call.Path, 3)
	assert.Equal(t, int64(163), call.AmountIn.Int64())
	assert.Equal(t, int64(100), call.AmountOut.Int64())
	assert.Equal(t, testRecipient, call.To)
	assert.Equal(t, testNow.Add(time.Minute).Unix(), call.Deadline.Int64())
}

func TestDecodeSwapCallEtherIn(t *testing.T) {
	fixNow(t)

	pairW0 := newTestPair(t, tu.WETH(), 1000, tu.Token0, 1000)
	route, err := NewRoute([]*Pair{pairW0}, tu.ETH(), tu.Token0)
	require.NoError(t, err)
	trade, err := NewTrade(route, tu.NativeAmount(t, 100), dex.ExactInput, bps(0))
	require.NoError(t, err)

	msg, err := trade.SwapTransaction(dex.SwapOptions{Recipient: testRecipient, TTL: time.Minute})
	require.NoError(t, err)

	call, err := DecodeSwapCall(msg.Data)
	require.NoError(t, err)
	assert.Equal(t, "swapExactETHForTokens", call.Method)
	assert.Nil(t, call.AmountIn)
	assert.Equal(t, int64(90), call.AmountOut.Int64())
	assert.Equal(t, tu.WETH().Address(), call.TokenIn)
}

func TestDecodeSwapCallErrors(t *testing.T) {
	_, err := DecodeSwapCall([]byte{0x01})
	assert.ErrorIs(t, err, ErrNotSwapCall)

	_, err = DecodeSwapCall([]byte{0xde, 0xad, 0xbe, 0xef, 0x00})
	assert.ErrorIs(t, err, ErrNotSwapCall)

	selector := routerABI.Methods["swapExactTokensForTokens"].ID
	_, err = DecodeSwapCall(append(append([]byte{}, selector...), 0x01))
	assert.Error(t, err)
}

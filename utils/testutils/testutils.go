package testutils

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/michaelpento.lv/dexroute/types"
)

// Mainnet fixture tokens. Their addresses sort in index order and all sort
// before WETH.
var (
	Token0 = NewTestToken(types.Mainnet, 1, "T0")
	Token1 = NewTestToken(types.Mainnet, 2, "T1")
	Token2 = NewTestToken(types.Mainnet, 3, "T2")
	Token3 = NewTestToken(types.Mainnet, 4, "T3")
)

// NewTestToken creates an 18 decimal token whose address is the given number.
func NewTestToken(chainID types.ChainID, n int64, symbol string) *types.Token {
	addr := common.BigToAddress(big.NewInt(n))
	return types.NewToken(chainID, addr, 18, symbol, "Test "+symbol)
}

// WETH returns the mainnet wrapped-native token.
func WETH() *types.Token {
	weth, _ := types.WrappedNative(types.Mainnet)
	return weth
}

// ETH returns the mainnet native currency.
func ETH() *types.NativeCurrency {
	eth, _ := types.NativeCurrencyOf(types.Mainnet)
	return eth
}

// Amount creates a token amount and fails the test on error.
func Amount(t testing.TB, token *types.Token, raw int64) *types.TokenAmount {
	t.Helper()
	amount, err := types.NewTokenAmount(token, big.NewInt(raw))
	require.NoError(t, err)
	return amount
}

// NativeAmount creates a mainnet ETH amount and fails the test on error.
func NativeAmount(t testing.TB, raw int64) *types.CurrencyAmount {
	t.Helper()
	amount, err := types.NewCurrencyAmount(ETH(), big.NewInt(raw))
	require.NoError(t, err)
	return amount
}

// NewLogger returns a logger that writes through t.
func NewLogger(t testing.TB) *zap.Logger {
	return zaptest.NewLogger(t)
}

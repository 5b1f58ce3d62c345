package uniswap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
	tu "github.com/michaelpento.lv/dexroute/utils/testutils"
)

func newTestPair(t *testing.T, a *types.Token, reserveA int64, b *types.Token, reserveB int64) *Pair {
	t.Helper()
	pair, err := NewPair(tu.Amount(t, a, reserveA), tu.Amount(t, b, reserveB), DefaultSwapFee, dex.Uniswap)
	require.NoError(t, err)
	return pair
}

func TestNewPairSortsTokens(t *testing.T) {
	pair := newTestPair(t, tu.Token1, 200, tu.Token0, 100)

	assert.True(t, pair.Token0().Equal(tu.Token0))
	assert.True(t, pair.Token1().Equal(tu.Token1))
	assert.Equal(t, int64(100), pair.Reserve0().Raw().Int64())
	assert.Equal(t, int64(200), pair.Reserve1().Raw().Int64())
	assert.Equal(t, types.Mainnet, pair.ChainID())
	assert.Equal(t, DefaultSwapFee, pair.SwapFee())
	assert.Equal(t, dex.Uniswap, pair.Platform())

	lp := pair.LiquidityToken()
	assert.Equal(t, uint8(18), lp.Decimals())
	assert.Equal(t, "UNI-V2", lp.Symbol())
	cfg, _ := dex.Uniswap.Config(types.Mainnet)
	assert.Equal(t, ComputePairAddress(cfg.Factory, cfg.InitCodeHash, tu.Token0.Address(), tu.Token1.Address()), lp.Address())
}

func TestNewPairErrors(t *testing.T) {
	xdaiToken := tu.NewTestToken(types.XDai, 1, "X")

	_, err := NewPair(tu.Amount(t, tu.Token0, 1), tu.Amount(t, xdaiToken, 1), DefaultSwapFee, dex.Uniswap)
	assert.ErrorIs(t, err, types.ErrChainID)

	_, err = NewPair(tu.Amount(t, tu.Token0, 1), tu.Amount(t, tu.Token0, 1), DefaultSwapFee, dex.Uniswap)
	assert.ErrorIs(t, err, types.ErrAddresses)

	_, err = NewPair(tu.Amount(t, tu.Token0, 1), tu.Amount(t, tu.Token1, 1), 10000, dex.Uniswap)
	assert.ErrorIs(t, err, ErrSwapFee)

	_, err = NewPair(tu.Amount(t, tu.Token0, 1), tu.Amount(t, tu.Token1, 1), DefaultSwapFee, dex.Honeyswap)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
}

func TestNewPairWithDefaultFee(t *testing.T) {
	pair, err := NewPairWithDefaultFee(tu.Amount(t, tu.Token0, 1), tu.Amount(t, tu.Token1, 1), dex.Swapr)
	require.NoError(t, err)
	assert.Equal(t, uint32(25), pair.SwapFee())
	assert.Equal(t, "DXS", pair.LiquidityToken().Symbol())
}

func TestPairReserveAndPrice(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 100, tu.Token1, 101)

	reserve, err := pair.ReserveOf(tu.Token1)
	require.NoError(t, err)
	assert.Equal(t, int64(101), reserve.Raw().Int64())

	_, err = pair.ReserveOf(tu.Token2)
	assert.ErrorIs(t, err, types.ErrToken)

	_, err = pair.ReserveOf(tu.NewTestToken(types.XDai, 1, "X"))
	assert.ErrorIs(t, err, types.ErrChainID)

	p0, err := pair.Token0Price()
	require.NoError(t, err)
	assert.True(t, p0.Raw().EqualTo(math.NewFractionFromInt64(101, 100)))

	p1, err := pair.PriceOf(tu.Token1)
	require.NoError(t, err)
	assert.True(t, p1.Raw().EqualTo(math.NewFractionFromInt64(100, 101)))
	assert.True(t, p1.BaseCurrency().Equal(tu.Token1))

	_, err = pair.PriceOf(tu.Token3)
	assert.ErrorIs(t, err, types.ErrToken)

	empty := newTestPair(t, tu.Token0, 0, tu.Token1, 0)
	_, err = empty.Token0Price()
	assert.ErrorIs(t, err, ErrInsufficientReserves)
}

func TestGetOutputAmount(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 1000, tu.Token2, 1100)

	out, next, err := pair.GetOutputAmount(tu.Amount(t, tu.Token0, 100))
	require.NoError(t, err)
	assert.True(t, out.Token().Equal(tu.Token2))
	assert.Equal(t, int64(99), out.Raw().Int64())

	assert.Equal(t, int64(1100), next.Reserve0().Raw().Int64())
	assert.Equal(t, int64(1001), next.Reserve1().Raw().Int64())
	assert.Equal(t, pair.LiquidityToken(), next.LiquidityToken())

	// receiver untouched
	assert.Equal(t, int64(1000), pair.Reserve0().Raw().Int64())
	assert.Equal(t, int64(1100), pair.Reserve1().Raw().Int64())
}

func TestGetOutputAmountErrors(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 1000, tu.Token1, 1000)

	_, _, err := pair.GetOutputAmount(tu.Amount(t, tu.Token0, 0))
	assert.ErrorIs(t, err, ErrInsufficientInputAmount)

	// output truncates to zero
	_, _, err = pair.GetOutputAmount(tu.Amount(t, tu.Token0, 1))
	assert.ErrorIs(t, err, ErrInsufficientInputAmount)

	_, _, err = pair.GetOutputAmount(tu.Amount(t, tu.Token2, 10))
	assert.ErrorIs(t, err, types.ErrToken)

	empty := newTestPair(t, tu.Token0, 0, tu.Token1, 1000)
	_, _, err = empty.GetOutputAmount(tu.Amount(t, tu.Token0, 10))
	assert.ErrorIs(t, err, ErrInsufficientReserves)
}

func TestGetInputAmount(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 1000, tu.Token2, 1100)

	in, next, err := pair.GetInputAmount(tu.Amount(t, tu.Token2, 100))
	require.NoError(t, err)
	assert.True(t, in.Token().Equal(tu.Token0))
	assert.Equal(t, int64(101), in.Raw().Int64())
	assert.Equal(t, int64(1101), next.Reserve0().Raw().Int64())
	assert.Equal(t, int64(1000), next.Reserve1().Raw().Int64())

	_, _, err = pair.GetInputAmount(tu.Amount(t, tu.Token2, 1100))
	assert.ErrorIs(t, err, ErrInsufficientReserves)

	_, _, err = pair.GetInputAmount(tu.Amount(t, tu.Token2, 5000))
	assert.ErrorIs(t, err, ErrInsufficientReserves)

	empty := newTestPair(t, tu.Token0, 1000, tu.Token2, 0)
	_, _, err = empty.GetInputAmount(tu.Amount(t, tu.Token2, 0))
	assert.ErrorIs(t, err, ErrInsufficientReserves)
}

func TestGetOutputAmountHonorsFee(t *testing.T) {
	noFee, err := NewPair(tu.Amount(t, tu.Token0, 1000000), tu.Amount(t, tu.Token1, 1000000), 0, dex.Uniswap)
	require.NoError(t, err)
	withFee, err := NewPair(tu.Amount(t, tu.Token0, 1000000), tu.Amount(t, tu.Token1, 1000000), 100, dex.Uniswap)
	require.NoError(t, err)

	in := tu.Amount(t, tu.Token0, 10000)
	a, _, err := noFee.GetOutputAmount(in)
	require.NoError(t, err)
	b, _, err := withFee.GetOutputAmount(in)
	require.NoError(t, err)

	// 10000*1e6/(1e6+10000) = 9900.99 and 9900*1e6/(1e6+9900) = 9802.95
	assert.Equal(t, int64(9900), a.Raw().Int64())
	assert.Equal(t, int64(9802), b.Raw().Int64())
}

func constantProduct(p *Pair) *big.Int {
	return new(big.Int).Mul(p.Reserve0().Raw(), p.Reserve1().Raw())
}

func TestSwapNeverDecreasesConstantProduct(t *testing.T) {
	reserves := [][2]int64{{1000, 1000}, {1000, 1100}, {7, 1000000}, {123456789, 987654321}}
	fees := []uint32{0, 25, 30, 100, 9999}
	amounts := []int64{1, 2, 17, 100, 999, 100000}

	for _, r := range reserves {
		for _, fee := range fees {
			pair, err := NewPair(tu.Amount(t, tu.Token0, r[0]), tu.Amount(t, tu.Token1, r[1]), fee, dex.Uniswap)
			require.NoError(t, err)
			k := constantProduct(pair)

			for _, x := range amounts {
				if _, next, err := pair.GetOutputAmount(tu.Amount(t, tu.Token0, x)); err == nil {
					assert.True(t, constantProduct(next).Cmp(k) >= 0, "out: reserves %v fee %d amount %d", r, fee, x)
				}
				if x < r[1] {
					_, next, err := pair.GetInputAmount(tu.Amount(t, tu.Token1, x))
					require.NoError(t, err)
					assert.True(t, constantProduct(next).Cmp(k) >= 0, "in: reserves %v fee %d amount %d", r, fee, x)
				}
			}
		}
	}
}

func TestInputOutputRoundTrip(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 123457, tu.Token1, 765431)

	for _, y := range []int64{1, 10, 99, 1000, 54321, 700000} {
		in, _, err := pair.GetInputAmount(tu.Amount(t, tu.Token1, y))
		require.NoError(t, err)
		out, _, err := pair.GetOutputAmount(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, out.Raw().Int64(), y, "input %s must buy at least %d", in.Raw(), y)
	}

	for _, x := range []int64{1, 10, 99, 1000, 54321, 700000} {
		out, _, err := pair.GetOutputAmount(tu.Amount(t, tu.Token0, x))
		if err != nil {
			require.ErrorIs(t, err, ErrInsufficientInputAmount)
			continue
		}
		in, _, err := pair.GetInputAmount(out)
		require.NoError(t, err)
		assert.LessOrEqual(t, in.Raw().Int64(), x, "output %s must not cost more than %d", out.Raw(), x)
	}
}

func TestGetLiquidityMinted(t *testing.T) {
	empty := newTestPair(t, tu.Token0, 0, tu.Token1, 0)
	lp := empty.LiquidityToken()

	_, err := empty.GetLiquidityMinted(tu.Amount(t, lp, 0), tu.Amount(t, tu.Token0, 1000), tu.Amount(t, tu.Token1, 1000))
	assert.ErrorIs(t, err, ErrInsufficientInputAmount)

	minted, err := empty.GetLiquidityMinted(tu.Amount(t, lp, 0), tu.Amount(t, tu.Token0, 1000000), tu.Amount(t, tu.Token1, 1000000))
	require.NoError(t, err)
	assert.Equal(t, int64(999000), minted.Raw().Int64())

	minted, err = empty.GetLiquidityMinted(tu.Amount(t, lp, 0), tu.Amount(t, tu.Token1, 1001), tu.Amount(t, tu.Token0, 1001))
	require.NoError(t, err)
	assert.Equal(t, int64(1), minted.Raw().Int64())

	pair := newTestPair(t, tu.Token0, 10000, tu.Token1, 10000)
	minted, err = pair.GetLiquidityMinted(tu.Amount(t, pair.LiquidityToken(), 10000), tu.Amount(t, tu.Token0, 2000), tu.Amount(t, tu.Token1, 2000))
	require.NoError(t, err)
	assert.Equal(t, int64(2000), minted.Raw().Int64())

	_, err = pair.GetLiquidityMinted(tu.Amount(t, tu.Token2, 10000), tu.Amount(t, tu.Token0, 2000), tu.Amount(t, tu.Token1, 2000))
	assert.ErrorIs(t, err, ErrLiquidity)
}

func TestGetLiquidityValue(t *testing.T) {
	pair := newTestPair(t, tu.Token0, 1000, tu.Token1, 1000)
	lp := pair.LiquidityToken()

	tests := []struct {
		name      string
		token     *types.Token
		supply    int64
		liquidity int64
		feeOn     bool
		kLast     *big.Int
		want      int64
	}{
		{"whole supply", tu.Token0, 1000, 1000, false, nil, 1000},
		{"half supply", tu.Token0, 1000, 500, false, nil, 500},
		{"other token", tu.Token1, 1000, 1000, false, nil, 1000},
		{"protocol fee dilutes", tu.Token0, 500, 500, true, big.NewInt(250000), 917},
		{"zero kLast", tu.Token0, 500, 500, true, big.NewInt(0), 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := pair.GetLiquidityValue(tt.token, tu.Amount(t, lp, tt.supply), tu.Amount(t, lp, tt.liquidity), tt.feeOn, tt.kLast)
			require.NoError(t, err)
			assert.Equal(t, tt.want, value.Raw().Int64())
		})
	}

	_, err := pair.GetLiquidityValue(tu.Token0, tu.Amount(t, lp, 10), tu.Amount(t, lp, 11), false, nil)
	assert.ErrorIs(t, err, ErrLiquidity)

	_, err = pair.GetLiquidityValue(tu.Token0, tu.Amount(t, lp, 10), tu.Amount(t, lp, 5), true, nil)
	assert.ErrorIs(t, err, ErrLiquidity)
}

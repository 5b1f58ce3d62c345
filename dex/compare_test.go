package dex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelpento.lv/dexroute/types"
	tu "github.com/michaelpento.lv/dexroute/utils/testutils"
)

type stubTrade struct {
	Trade
	tradeType TradeType
	in, out   *types.CurrencyAmount
	label     string
}

func (s *stubTrade) TradeType() TradeType                { return s.tradeType }
func (s *stubTrade) InputAmount() *types.CurrencyAmount  { return s.in }
func (s *stubTrade) OutputAmount() *types.CurrencyAmount { return s.out }

func newStubTrade(t *testing.T, tradeType TradeType, in, out int64, label string) *stubTrade {
	t.Helper()
	amountIn, err := types.NewCurrencyAmount(tu.Token0, big.NewInt(in))
	require.NoError(t, err)
	amountOut, err := types.NewCurrencyAmount(tu.Token1, big.NewInt(out))
	require.NoError(t, err)
	return &stubTrade{tradeType: tradeType, in: amountIn, out: amountOut, label: label}
}

func labels(trades []*stubTrade) []string {
	out := make([]string, len(trades))
	for i, trade := range trades {
		out[i] = trade.label
	}
	return out
}

func TestCompareTrades(t *testing.T) {
	tests := []struct {
		name      string
		tradeType TradeType
		a, b      [2]int64
		want      int
	}{
		{"exact in more output wins", ExactInput, [2]int64{100, 60}, [2]int64{100, 50}, -1},
		{"exact in less input breaks tie", ExactInput, [2]int64{90, 50}, [2]int64{100, 50}, -1},
		{"exact in equal", ExactInput, [2]int64{100, 50}, [2]int64{100, 50}, 0},
		{"exact out less input wins", ExactOutput, [2]int64{100, 50}, [2]int64{90, 50}, 1},
		{"exact out more output breaks tie", ExactOutput, [2]int64{100, 60}, [2]int64{100, 50}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newStubTrade(t, tt.tradeType, tt.a[0], tt.a[1], "a")
			b := newStubTrade(t, tt.tradeType, tt.b[0], tt.b[1], "b")
			assert.Equal(t, tt.want, CompareTrades(a, b))
			assert.Equal(t, -tt.want, CompareTrades(b, a))
		})
	}
}

func TestSortTradesIsStable(t *testing.T) {
	trades := []*stubTrade{
		newStubTrade(t, ExactInput, 100, 50, "first"),
		newStubTrade(t, ExactInput, 100, 70, "best"),
		newStubTrade(t, ExactInput, 100, 50, "second"),
		newStubTrade(t, ExactInput, 100, 10, "worst"),
	}
	SortTrades(trades)
	assert.Equal(t, []string{"best", "first", "second", "worst"}, labels(trades))
}

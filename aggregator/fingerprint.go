package aggregator

import (
	"encoding/binary"
	"math/big"

	"github.com/cespare/xxhash/v2"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/dex/uniswap"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

// request is everything a quote depends on. Two requests with the same
// fingerprint produce the same trades.
type request struct {
	tradeType dex.TradeType
	amount    *types.CurrencyAmount
	other     types.Currency
	slippage  *math.Percent
	hops      uniswap.HopOptions
	pairs     []*uniswap.Pair
}

func (r *request) fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeBytes := func(b []byte) {
		writeUint(uint64(len(b)))
		_, _ = d.Write(b)
	}
	writeInt := func(x *big.Int) {
		writeUint(uint64(x.Sign() + 1))
		writeBytes(x.Bytes())
	}
	writeCurrency := func(c types.Currency) {
		writeUint(uint64(c.ChainID()))
		if token, ok := c.(*types.Token); ok {
			writeBytes(token.Address().Bytes())
			return
		}
		writeBytes([]byte(c.Symbol()))
	}

	writeUint(uint64(r.tradeType))
	writeCurrency(r.amount.Currency())
	writeBytes(r.amount.Raw().Bytes())
	writeCurrency(r.other)
	writeInt(r.slippage.Numerator())
	writeInt(r.slippage.Denominator())
	writeUint(uint64(r.hops.MaxHops))
	writeUint(uint64(r.hops.MaxNumResults))

	writeUint(uint64(len(r.pairs)))
	for _, pair := range r.pairs {
		writeUint(uint64(pair.Platform()))
		writeUint(uint64(pair.SwapFee()))
		writeBytes(pair.LiquidityToken().Address().Bytes())
		writeBytes(pair.Reserve0().Raw().Bytes())
		writeBytes(pair.Reserve1().Raw().Bytes())
	}

	return d.Sum64()
}

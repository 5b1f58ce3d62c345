package dex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelpento.lv/dexroute/types"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name    string
		want    Platform
		wantErr bool
	}{
		{"swapr", Swapr, false},
		{"Uniswap", Uniswap, false},
		{"SUSHISWAP", Sushiswap, false},
		{"honeyswap", Honeyswap, false},
		{"pancakeswap", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlatform(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlatformConfig(t *testing.T) {
	for _, p := range Platforms() {
		assert.NotEqual(t, "", p.String())
		symbol, name := p.LiquidityTokenMetadata()
		assert.NotEmpty(t, symbol)
		assert.NotEmpty(t, name)
	}

	cfg, ok := Swapr.Config(types.XDai)
	require.True(t, ok)
	assert.Equal(t, uint32(25), cfg.DefaultSwapFee)

	cfg, ok = Uniswap.Config(types.Mainnet)
	require.True(t, ok)
	assert.Equal(t, uint32(30), cfg.DefaultSwapFee)
	assert.Equal(t, "0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f", cfg.Factory.Hex())

	assert.True(t, Honeyswap.SupportsChain(types.XDai))
	assert.False(t, Honeyswap.SupportsChain(types.Mainnet))
	assert.False(t, Uniswap.SupportsChain(types.ArbitrumOne))
	assert.Equal(t, "Platform(9)", Platform(9).String())
}

func TestValidateSlippage(t *testing.T) {
	got, err := ValidateSlippage(nil)
	require.NoError(t, err)
	assert.Same(t, DefaultMaximumSlippage, got)
	assert.Equal(t, "0.50%", got.String())
}

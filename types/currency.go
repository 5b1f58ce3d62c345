package types

import (
	"fmt"
)

// Currency is any fungible asset with a fixed number of decimals: either a
// chain's native asset or an ERC20 token.
type Currency interface {
	Decimals() uint8
	Symbol() string
	Name() string
	ChainID() ChainID
	IsNative() bool
	Equal(other Currency) bool
}

// NativeCurrency is the gas asset of a chain (ETH, XDAI).
type NativeCurrency struct {
	chainID  ChainID
	decimals uint8
	symbol   string
	name     string
}

var nativeCurrencies = map[ChainID]*NativeCurrency{
	Mainnet:     {chainID: Mainnet, decimals: 18, symbol: "ETH", name: "Ether"},
	Rinkeby:     {chainID: Rinkeby, decimals: 18, symbol: "ETH", name: "Ether"},
	XDai:        {chainID: XDai, decimals: 18, symbol: "XDAI", name: "xDAI"},
	ArbitrumOne: {chainID: ArbitrumOne, decimals: 18, symbol: "ETH", name: "Ether"},
}

// NativeCurrencyOf returns the native currency of chainID.
func NativeCurrencyOf(chainID ChainID) (*NativeCurrency, bool) {
	c, ok := nativeCurrencies[chainID]
	return c, ok
}

func (c *NativeCurrency) Decimals() uint8  { return c.decimals }
func (c *NativeCurrency) Symbol() string   { return c.symbol }
func (c *NativeCurrency) Name() string     { return c.name }
func (c *NativeCurrency) ChainID() ChainID { return c.chainID }
func (c *NativeCurrency) IsNative() bool   { return true }

func (c *NativeCurrency) Equal(other Currency) bool {
	o, ok := other.(*NativeCurrency)
	if !ok || o == nil {
		return false
	}
	return c.chainID == o.chainID && c.symbol == o.symbol
}

func (c *NativeCurrency) String() string {
	return fmt.Sprintf("%s(%s)", c.symbol, c.chainID)
}

// wrapped native tokens per chain, keyed to the canonical WETH9-style contract
var wrappedNatives = map[ChainID]*Token{
	Mainnet:     hexToken(Mainnet, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", 18, "WETH", "Wrapped Ether"),
	Rinkeby:     hexToken(Rinkeby, "0xc778417E063141139Fce010982780140Aa0cD5Ab", 18, "WETH", "Wrapped Ether"),
	XDai:        hexToken(XDai, "0xe91D153E0b41518A2Ce8Dd3D7944Fa863463a97d", 18, "WXDAI", "Wrapped xDAI"),
	ArbitrumOne: hexToken(ArbitrumOne, "0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", 18, "WETH", "Wrapped Ether"),
}

// WrappedNative returns the canonical wrapped-native token of chainID.
func WrappedNative(chainID ChainID) (*Token, bool) {
	t, ok := wrappedNatives[chainID]
	return t, ok
}

// WrappedCurrency maps a native currency to its wrapped token on chainID and
// returns tokens unchanged.
func WrappedCurrency(c Currency, chainID ChainID) (*Token, error) {
	if c.ChainID() != chainID {
		return nil, fmt.Errorf("%s on %s: %w", c.Symbol(), chainID, ErrChainID)
	}
	switch cur := c.(type) {
	case *Token:
		return cur, nil
	case *NativeCurrency:
		if t, ok := WrappedNative(chainID); ok {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no wrapped token for %s: %w", c.Symbol(), ErrCurrency)
}

// IsWrappedNative reports whether t is the wrapped-native token of its chain.
func IsWrappedNative(t *Token) bool {
	w, ok := WrappedNative(t.ChainID())
	return ok && w.Equal(t)
}

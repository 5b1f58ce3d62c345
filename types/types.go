package types

import (
	"errors"
	"fmt"
)

// Coded errors shared by the currency, amount and price model. The messages
// are the contract codes callers match on.
var (
	ErrChainID   = errors.New("CHAIN_ID")
	ErrAddresses = errors.New("ADDRESSES")
	ErrAddress   = errors.New("ADDRESS")
	ErrCurrency  = errors.New("CURRENCY")
	ErrToken     = errors.New("TOKEN")
	ErrDecimals  = errors.New("DECIMALS")
)

// ChainID identifies an EVM chain.
type ChainID uint64

const (
	Mainnet     ChainID = 1
	Rinkeby     ChainID = 4
	XDai        ChainID = 100
	ArbitrumOne ChainID = 42161
)

var chainNames = map[ChainID]string{
	Mainnet:     "mainnet",
	Rinkeby:     "rinkeby",
	XDai:        "xdai",
	ArbitrumOne: "arbitrum-one",
}

func (c ChainID) String() string {
	if name, ok := chainNames[c]; ok {
		return name
	}
	return fmt.Sprintf("chain-%d", uint64(c))
}

// ChainIDs returns every chain with a known native currency.
func ChainIDs() []ChainID {
	return []ChainID{Mainnet, Rinkeby, XDai, ArbitrumOne}
}

package uniswap

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultSwapFee is the Uniswap V2 fee in basis points (0.3%).
	DefaultSwapFee uint32 = 30

	// MinimumLiquidity is burned on the first mint of every pair.
	MinimumLiquidity = 1000

	pairAddressCacheSize = 4096
)

type pairAddressKey struct {
	factory      common.Address
	initCodeHash common.Hash
	token0       common.Address
	token1       common.Address
}

var pairAddresses *lru.Cache

func init() {
	var err error
	pairAddresses, err = lru.New(pairAddressCacheSize)
	if err != nil {
		panic(err)
	}
}

// ComputePairAddress returns the CREATE2 address of the pair of tokenA and
// tokenB deployed by factory. Argument order does not matter.
func ComputePairAddress(factory common.Address, initCodeHash common.Hash, tokenA, tokenB common.Address) common.Address {
	token0, token1 := tokenA, tokenB
	if bytes.Compare(token0.Bytes(), token1.Bytes()) > 0 {
		token0, token1 = token1, token0
	}

	key := pairAddressKey{factory: factory, initCodeHash: initCodeHash, token0: token0, token1: token1}
	if cached, ok := pairAddresses.Get(key); ok {
		return cached.(common.Address)
	}

	salt := crypto.Keccak256Hash(token0.Bytes(), token1.Bytes())
	addr := crypto.CreateAddress2(factory, salt, initCodeHash.Bytes())
	pairAddresses.Add(key, addr)
	return addr
}

package types

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Token is an ERC20 token on a specific chain. Two tokens are equal when
// chain and address match; symbol, name and decimals are metadata.
type Token struct {
	chainID  ChainID
	address  common.Address
	decimals uint8
	symbol   string
	name     string
}

func NewToken(chainID ChainID, address common.Address, decimals uint8, symbol, name string) *Token {
	return &Token{
		chainID:  chainID,
		address:  address,
		decimals: decimals,
		symbol:   symbol,
		name:     name,
	}
}

// ParseToken creates a token from a hex address. Mixed-case input must carry
// a valid EIP-55 checksum.
func ParseToken(chainID ChainID, address string, decimals uint8, symbol, name string) (*Token, error) {
	addr, err := parseAddress(address)
	if err != nil {
		return nil, err
	}
	return NewToken(chainID, addr, decimals, symbol, name), nil
}

func hexToken(chainID ChainID, address string, decimals uint8, symbol, name string) *Token {
	return NewToken(chainID, common.HexToAddress(address), decimals, symbol, name)
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%q is not a hex address: %w", s, ErrAddress)
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}

	hex := s[2:]
	if hex != strings.ToLower(hex) && hex != strings.ToUpper(hex) {
		mixed, err := common.NewMixedcaseAddressFromString("0x" + hex)
		if err != nil {
			return common.Address{}, fmt.Errorf("%q: %v: %w", s, err, ErrAddress)
		}
		if !mixed.ValidChecksum() {
			return common.Address{}, fmt.Errorf("%q has an invalid checksum: %w", s, ErrAddress)
		}
		return mixed.Address(), nil
	}
	return common.HexToAddress(s), nil
}

func (t *Token) Decimals() uint8         { return t.decimals }
func (t *Token) Symbol() string          { return t.symbol }
func (t *Token) Name() string            { return t.name }
func (t *Token) ChainID() ChainID        { return t.chainID }
func (t *Token) IsNative() bool          { return false }
func (t *Token) Address() common.Address { return t.address }

func (t *Token) Equal(other Currency) bool {
	o, ok := other.(*Token)
	if !ok || o == nil {
		return false
	}
	return t == o || (t.chainID == o.chainID && t.address == o.address)
}

// SortsBefore reports whether t orders before other by address. It fails
// across chains and for identical addresses.
func (t *Token) SortsBefore(other *Token) (bool, error) {
	if t.chainID != other.chainID {
		return false, ErrChainID
	}
	if t.address == other.address {
		return false, ErrAddresses
	}
	return bytes.Compare(t.address.Bytes(), other.address.Bytes()) < 0, nil
}

// String returns the symbol followed by the checksummed address.
func (t *Token) String() string {
	return fmt.Sprintf("%s(%s)", t.symbol, t.address.Hex())
}

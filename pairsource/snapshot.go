// Package pairsource loads pair reserves captured by an external indexer.
//
// A snapshot is a YAML document:
//
//	chain_id: 1
//	tokens:
//	  - symbol: USDC
//	    name: USD Coin
//	    address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
//	    decimals: 6
//	pairs:
//	  - platform: uniswap
//	    token0: USDC
//	    token1: WETH
//	    reserve0: "1000000000"
//	    reserve1: "500000000000000000"
//	    swap_fee: 30
//
// Pair tokens may be referenced by symbol or address. The chain's wrapped
// native token is always known. swap_fee is optional and defaults to the
// platform's fee.
package pairsource

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/dex/uniswap"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

var (
	ErrUnknownToken   = errors.New("unknown token")
	ErrDuplicateToken = errors.New("duplicate token")
)

type tokenRecord struct {
	Symbol   string `yaml:"symbol"`
	Name     string `yaml:"name"`
	Address  string `yaml:"address"`
	Decimals int64  `yaml:"decimals"`
}

type pairRecord struct {
	Platform string  `yaml:"platform"`
	Token0   string  `yaml:"token0"`
	Token1   string  `yaml:"token1"`
	Reserve0 string  `yaml:"reserve0"`
	Reserve1 string  `yaml:"reserve1"`
	SwapFee  *uint32 `yaml:"swap_fee"`
}

type snapshotFile struct {
	ChainID uint64        `yaml:"chain_id"`
	Tokens  []tokenRecord `yaml:"tokens"`
	Pairs   []pairRecord  `yaml:"pairs"`
}

// Snapshot is a validated set of pairs on one chain.
type Snapshot struct {
	ChainID types.ChainID
	Pairs   []*uniswap.Pair

	tokens map[string]*types.Token
}

// Load reads and validates a snapshot file.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Parse(data)
}

// Parse validates a snapshot document. Decimals must fit a uint8 and
// reserves a uint256.
func Parse(data []byte) (*Snapshot, error) {
	var file snapshotFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	chainID := types.ChainID(file.ChainID)
	if _, ok := types.NativeCurrencyOf(chainID); !ok {
		return nil, fmt.Errorf("chain %d: %w", file.ChainID, types.ErrChainID)
	}

	s := &Snapshot{ChainID: chainID, tokens: make(map[string]*types.Token)}
	if weth, ok := types.WrappedNative(chainID); ok {
		s.index(weth)
	}

	for i, rec := range file.Tokens {
		token, err := parseToken(chainID, rec)
		if err != nil {
			return nil, fmt.Errorf("token %d (%s): %w", i, rec.Symbol, err)
		}
		if existing, ok := s.tokens[strings.ToLower(rec.Symbol)]; ok && !existing.Equal(token) {
			return nil, fmt.Errorf("token %d: symbol %s: %w", i, rec.Symbol, ErrDuplicateToken)
		}
		s.index(token)
	}

	for i, rec := range file.Pairs {
		pair, err := s.parsePair(rec)
		if err != nil {
			return nil, fmt.Errorf("pair %d (%s/%s): %w", i, rec.Token0, rec.Token1, err)
		}
		s.Pairs = append(s.Pairs, pair)
	}

	return s, nil
}

func parseToken(chainID types.ChainID, rec tokenRecord) (*types.Token, error) {
	if err := math.ValidateSolidityType(big.NewInt(rec.Decimals), math.Uint8); err != nil {
		return nil, fmt.Errorf("decimals: %w", err)
	}
	if rec.Symbol == "" {
		return nil, errors.New("symbol is required")
	}
	return types.ParseToken(chainID, rec.Address, uint8(rec.Decimals), rec.Symbol, rec.Name)
}

func (s *Snapshot) index(token *types.Token) {
	s.tokens[strings.ToLower(token.Symbol())] = token
	s.tokens[strings.ToLower(token.Address().Hex())] = token
}

func (s *Snapshot) parsePair(rec pairRecord) (*uniswap.Pair, error) {
	platform, err := dex.ParsePlatform(rec.Platform)
	if err != nil {
		return nil, err
	}

	token0, err := s.token(rec.Token0)
	if err != nil {
		return nil, err
	}
	token1, err := s.token(rec.Token1)
	if err != nil {
		return nil, err
	}

	amount0, err := parseReserve(token0, rec.Reserve0)
	if err != nil {
		return nil, err
	}
	amount1, err := parseReserve(token1, rec.Reserve1)
	if err != nil {
		return nil, err
	}

	if rec.SwapFee == nil {
		return uniswap.NewPairWithDefaultFee(amount0, amount1, platform)
	}
	return uniswap.NewPair(amount0, amount1, *rec.SwapFee, platform)
}

func parseReserve(token *types.Token, s string) (*types.TokenAmount, error) {
	raw, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("reserve of %s: invalid integer %q", token.Symbol(), s)
	}
	amount, err := types.NewTokenAmount(token, raw)
	if err != nil {
		return nil, fmt.Errorf("reserve of %s: %w", token.Symbol(), err)
	}
	return amount, nil
}

func (s *Snapshot) token(ref string) (*types.Token, error) {
	token, ok := s.tokens[strings.ToLower(strings.TrimSpace(ref))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", ref, ErrUnknownToken)
	}
	return token, nil
}

// Currency resolves a symbol or address to a currency of the snapshot's
// chain. The native currency symbol resolves to the native currency.
func (s *Snapshot) Currency(ref string) (types.Currency, error) {
	if native, ok := types.NativeCurrencyOf(s.ChainID); ok && strings.EqualFold(native.Symbol(), strings.TrimSpace(ref)) {
		return native, nil
	}
	return s.token(ref)
}

// Tokens returns every known token sorted by address, wrapped native
// included.
func (s *Snapshot) Tokens() []*types.Token {
	seen := make(map[*types.Token]bool)
	var tokens []*types.Token
	for _, token := range s.tokens {
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	slices.SortFunc(tokens, func(a, b *types.Token) int {
		return bytes.Compare(a.Address().Bytes(), b.Address().Bytes())
	})
	return tokens
}

package dex

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/michaelpento.lv/dexroute/types"
)

// Platform is a Uniswap-V2 style venue. The set is closed.
type Platform uint8

const (
	Swapr Platform = iota + 1
	Uniswap
	Sushiswap
	Honeyswap
)

// PlatformConfig holds the deployment of a platform on one chain.
type PlatformConfig struct {
	Factory        common.Address
	Router         common.Address
	InitCodeHash   common.Hash
	DefaultSwapFee uint32 // basis points
}

type platformInfo struct {
	name     string
	lpSymbol string
	lpName   string
	chains   map[types.ChainID]PlatformConfig
}

var (
	uniswapInitCodeHash   = common.HexToHash("0x96e8ac4277198ff8b6f785478aa9a39f403cb768dd02cbee326c3e7da348845f")
	sushiswapInitCodeHash = common.HexToHash("0xe18a34eb0e04b04f7a0ac29a6e80748dca96319b42c54d679cb821dca90c6303")
	swaprInitCodeHash     = common.HexToHash("0xd306a548755b9295ee49cc729e13ca4a45e00199bbd890fa146da43a50571776")
	honeyswapInitCodeHash = common.HexToHash("0x3f88503e8580ab941773b59034fb4b2a63e86dbc031b3633a925533ad3ed2b93")
)

var platforms = map[Platform]platformInfo{
	Swapr: {
		name:     "Swapr",
		lpSymbol: "DXS",
		lpName:   "DXswap",
		chains: map[types.ChainID]PlatformConfig{
			types.Mainnet: {
				Factory:        common.HexToAddress("0xd34971BaB6E5E356fd250715F5dE0492BB070452"),
				Router:         common.HexToAddress("0xB9960d9bcA016e9748bE75dd52F02188B9d0829f"),
				InitCodeHash:   swaprInitCodeHash,
				DefaultSwapFee: 25,
			},
			types.XDai: {
				Factory:        common.HexToAddress("0x5D48C95AdfFD4B40c1AAADc4e08fc44117E02179"),
				Router:         common.HexToAddress("0xE43e60736b1cb4a75ad25240E2f9a62Bff65c0C0"),
				InitCodeHash:   swaprInitCodeHash,
				DefaultSwapFee: 25,
			},
			types.ArbitrumOne: {
				Factory:        common.HexToAddress("0x359F20Ad0F42D75a5077e65F30274cABe6f4F01a"),
				Router:         common.HexToAddress("0x530476d5583724A89c8841eB6Da76E7Af4C0F17E"),
				InitCodeHash:   swaprInitCodeHash,
				DefaultSwapFee: 25,
			},
		},
	},
	Uniswap: {
		name:     "Uniswap",
		lpSymbol: "UNI-V2",
		lpName:   "Uniswap V2",
		chains: map[types.ChainID]PlatformConfig{
			types.Mainnet: {
				Factory:        common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
				Router:         common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
				InitCodeHash:   uniswapInitCodeHash,
				DefaultSwapFee: 30,
			},
			types.Rinkeby: {
				Factory:        common.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"),
				Router:         common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"),
				InitCodeHash:   uniswapInitCodeHash,
				DefaultSwapFee: 30,
			},
		},
	},
	Sushiswap: {
		name:     "Sushiswap",
		lpSymbol: "SLP",
		lpName:   "SushiSwap LP Token",
		chains: map[types.ChainID]PlatformConfig{
			types.Mainnet: {
				Factory:        common.HexToAddress("0xC0AEe478e3658e2610c5F7A4A2E1777cE9e4f2Ac"),
				Router:         common.HexToAddress("0xd9e1cE17f2641f24aE83637ab66a2cca9C378B9F"),
				InitCodeHash:   sushiswapInitCodeHash,
				DefaultSwapFee: 30,
			},
			types.XDai: {
				Factory:        common.HexToAddress("0xc35DADB65012eC5796536bD9864eD8773aBc74C4"),
				Router:         common.HexToAddress("0x1b02dA8Cb0d097eB8D57A175b88c7D8b47997506"),
				InitCodeHash:   sushiswapInitCodeHash,
				DefaultSwapFee: 30,
			},
			types.ArbitrumOne: {
				Factory:        common.HexToAddress("0xc35DADB65012eC5796536bD9864eD8773aBc74C4"),
				Router:         common.HexToAddress("0x1b02dA8Cb0d097eB8D57A175b88c7D8b47997506"),
				InitCodeHash:   sushiswapInitCodeHash,
				DefaultSwapFee: 30,
			},
		},
	},
	Honeyswap: {
		name:     "Honeyswap",
		lpSymbol: "HNY-LP",
		lpName:   "Honeyswap LP",
		chains: map[types.ChainID]PlatformConfig{
			types.XDai: {
				Factory:        common.HexToAddress("0xA818b4F111Ccac7AA31D0BCc0806d64F2E0737D7"),
				Router:         common.HexToAddress("0x1C232F01118CB8B424793ae03F870aa7D0ac7f77"),
				InitCodeHash:   honeyswapInitCodeHash,
				DefaultSwapFee: 30,
			},
		},
	},
}

// Platforms returns every platform in declaration order.
func Platforms() []Platform {
	return []Platform{Swapr, Uniswap, Sushiswap, Honeyswap}
}

// ParsePlatform resolves a platform by case-insensitive name.
func ParsePlatform(name string) (Platform, error) {
	for _, p := range Platforms() {
		if strings.EqualFold(platforms[p].name, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q", name)
}

func (p Platform) String() string {
	if info, ok := platforms[p]; ok {
		return info.name
	}
	return fmt.Sprintf("Platform(%d)", uint8(p))
}

// Config returns the deployment of p on chainID.
func (p Platform) Config(chainID types.ChainID) (PlatformConfig, bool) {
	cfg, ok := platforms[p].chains[chainID]
	return cfg, ok
}

func (p Platform) SupportsChain(chainID types.ChainID) bool {
	_, ok := p.Config(chainID)
	return ok
}

// LiquidityTokenMetadata returns symbol and name of the platform's LP tokens.
func (p Platform) LiquidityTokenMetadata() (symbol, name string) {
	info := platforms[p]
	return info.lpSymbol, info.lpName
}

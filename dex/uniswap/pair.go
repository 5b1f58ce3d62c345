package uniswap

import (
	"fmt"
	"math/big"

	"github.com/michaelpento.lv/dexroute/dex"
	"github.com/michaelpento.lv/dexroute/types"
	"github.com/michaelpento.lv/dexroute/utils/math"
)

// Pair is a constant-product pool snapshot. Token0 always sorts before
// Token1. A Pair is immutable; swaps return a new Pair with the post-swap
// reserves.
type Pair struct {
	platform       dex.Platform
	swapFee        uint32
	liquidityToken *types.Token
	reserves       [2]*types.TokenAmount
}

// NewPair creates a pair from two reserves in any order. swapFee is in
// basis points and must be below 10000.
func NewPair(amountA, amountB *types.TokenAmount, swapFee uint32, platform dex.Platform) (*Pair, error) {
	before, err := amountA.Token().SortsBefore(amountB.Token())
	if err != nil {
		return nil, err
	}
	if !before {
		amountA, amountB = amountB, amountA
	}

	if uint64(swapFee) >= math.BasisPointDivisor.Uint64() {
		return nil, fmt.Errorf("swap fee %d bps: %w", swapFee, ErrSwapFee)
	}

	chainID := amountA.Token().ChainID()
	cfg, ok := platform.Config(chainID)
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", platform, chainID, ErrUnsupportedPlatform)
	}

	addr := ComputePairAddress(cfg.Factory, cfg.InitCodeHash, amountA.Token().Address(), amountB.Token().Address())
	symbol, name := platform.LiquidityTokenMetadata()

	return &Pair{
		platform:       platform,
		swapFee:        swapFee,
		liquidityToken: types.NewToken(chainID, addr, 18, symbol, name),
		reserves:       [2]*types.TokenAmount{amountA, amountB},
	}, nil
}

// NewPairWithDefaultFee creates a pair charging the platform's default fee.
func NewPairWithDefaultFee(amountA, amountB *types.TokenAmount, platform dex.Platform) (*Pair, error) {
	cfg, ok := platform.Config(amountA.Token().ChainID())
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", platform, amountA.Token().ChainID(), ErrUnsupportedPlatform)
	}
	return NewPair(amountA, amountB, cfg.DefaultSwapFee, platform)
}

// withReserves returns a copy of p holding new reserves for the same tokens.
func (p *Pair) withReserves(a, b *types.TokenAmount) *Pair {
	next := *p
	if a.Token().Equal(p.Token0()) {
		next.reserves = [2]*types.TokenAmount{a, b}
	} else {
		next.reserves = [2]*types.TokenAmount{b, a}
	}
	return &next
}

func (p *Pair) Platform() dex.Platform       { return p.platform }
func (p *Pair) SwapFee() uint32              { return p.swapFee }
func (p *Pair) LiquidityToken() *types.Token { return p.liquidityToken }
func (p *Pair) ChainID() types.ChainID       { return p.Token0().ChainID() }
func (p *Pair) Token0() *types.Token         { return p.reserves[0].Token() }
func (p *Pair) Token1() *types.Token         { return p.reserves[1].Token() }
func (p *Pair) Reserve0() *types.TokenAmount { return p.reserves[0] }
func (p *Pair) Reserve1() *types.TokenAmount { return p.reserves[1] }

func (p *Pair) InvolvesToken(token *types.Token) bool {
	return token.Equal(p.Token0()) || token.Equal(p.Token1())
}

// hasLiquidity reports whether both reserves are non-zero.
func (p *Pair) hasLiquidity() bool {
	return p.reserves[0].Raw().Sign() > 0 && p.reserves[1].Raw().Sign() > 0
}

func (p *Pair) checkToken(token *types.Token) error {
	if token.ChainID() != p.ChainID() {
		return types.ErrChainID
	}
	if !p.InvolvesToken(token) {
		return types.ErrToken
	}
	return nil
}

// ReserveOf returns the reserve of token.
func (p *Pair) ReserveOf(token *types.Token) (*types.TokenAmount, error) {
	if err := p.checkToken(token); err != nil {
		return nil, err
	}
	if token.Equal(p.Token0()) {
		return p.reserves[0], nil
	}
	return p.reserves[1], nil
}

// otherReserve returns the reserve opposite to token, which must be in p.
func (p *Pair) otherReserve(token *types.Token) *types.TokenAmount {
	if token.Equal(p.Token0()) {
		return p.reserves[1]
	}
	return p.reserves[0]
}

// Token0Price is the price of token0 in token1.
func (p *Pair) Token0Price() (*types.Price, error) {
	if !p.hasLiquidity() {
		return nil, ErrInsufficientReserves
	}
	return types.NewPrice(p.Token0(), p.Token1(), p.reserves[0].Raw(), p.reserves[1].Raw()), nil
}

// Token1Price is the price of token1 in token0.
func (p *Pair) Token1Price() (*types.Price, error) {
	if !p.hasLiquidity() {
		return nil, ErrInsufficientReserves
	}
	return types.NewPrice(p.Token1(), p.Token0(), p.reserves[1].Raw(), p.reserves[0].Raw()), nil
}

// PriceOf returns the price of token in the other token of the pair.
func (p *Pair) PriceOf(token *types.Token) (*types.Price, error) {
	if err := p.checkToken(token); err != nil {
		return nil, err
	}
	if token.Equal(p.Token0()) {
		return p.Token0Price()
	}
	return p.Token1Price()
}

func (p *Pair) feeComplement() *big.Int {
	return new(big.Int).Sub(math.BasisPointDivisor, new(big.Int).SetUint64(uint64(p.swapFee)))
}

// GetOutputAmount returns the output of swapping input through p and the
// pair after the swap. The output is truncated like the on-chain formula.
func (p *Pair) GetOutputAmount(input *types.TokenAmount) (*types.TokenAmount, *Pair, error) {
	if err := p.checkToken(input.Token()); err != nil {
		return nil, nil, err
	}
	if !p.hasLiquidity() {
		return nil, nil, ErrInsufficientReserves
	}
	amountIn := input.Raw()
	if amountIn.Sign() <= 0 {
		return nil, nil, ErrInsufficientInputAmount
	}

	inputReserve, _ := p.ReserveOf(input.Token())
	outputReserve := p.otherReserve(input.Token())

	amountInWithFee := new(big.Int).Mul(amountIn, p.feeComplement())
	numerator := new(big.Int).Mul(amountInWithFee, outputReserve.Raw())
	denominator := new(big.Int).Add(
		new(big.Int).Mul(inputReserve.Raw(), math.BasisPointDivisor),
		amountInWithFee,
	)

	amountOut := math.DivTrunc(numerator, denominator)
	if amountOut.Sign() == 0 {
		return nil, nil, ErrInsufficientInputAmount
	}

	output, err := types.NewTokenAmount(outputReserve.Token(), amountOut)
	if err != nil {
		return nil, nil, err
	}
	next, err := p.afterSwap(inputReserve, input, outputReserve, output)
	if err != nil {
		return nil, nil, err
	}
	return output, next, nil
}

// GetInputAmount returns the input needed to receive output from p and the
// pair after the swap. The input is rounded up so that it always suffices.
func (p *Pair) GetInputAmount(output *types.TokenAmount) (*types.TokenAmount, *Pair, error) {
	if err := p.checkToken(output.Token()); err != nil {
		return nil, nil, err
	}
	if !p.hasLiquidity() {
		return nil, nil, ErrInsufficientReserves
	}

	outputReserve, _ := p.ReserveOf(output.Token())
	inputReserve := p.otherReserve(output.Token())

	amountOut := output.Raw()
	if amountOut.Cmp(outputReserve.Raw()) >= 0 {
		return nil, nil, ErrInsufficientReserves
	}

	numerator := new(big.Int).Mul(new(big.Int).Mul(inputReserve.Raw(), amountOut), math.BasisPointDivisor)
	denominator := new(big.Int).Mul(new(big.Int).Sub(outputReserve.Raw(), amountOut), p.feeComplement())

	input, err := types.NewTokenAmount(inputReserve.Token(), math.DivCeil(numerator, denominator))
	if err != nil {
		return nil, nil, err
	}
	next, err := p.afterSwap(inputReserve, input, outputReserve, output)
	if err != nil {
		return nil, nil, err
	}
	return input, next, nil
}

func (p *Pair) afterSwap(inputReserve, input, outputReserve, output *types.TokenAmount) (*Pair, error) {
	newIn, err := inputReserve.Add(input)
	if err != nil {
		return nil, err
	}
	newOut, err := outputReserve.Subtract(output)
	if err != nil {
		return nil, err
	}
	return p.withReserves(newIn, newOut), nil
}

// GetLiquidityMinted returns the liquidity tokens minted for depositing
// amountA and amountB when totalSupply liquidity tokens exist.
func (p *Pair) GetLiquidityMinted(totalSupply, amountA, amountB *types.TokenAmount) (*types.TokenAmount, error) {
	if !totalSupply.Token().Equal(p.liquidityToken) {
		return nil, ErrLiquidity
	}

	before, err := amountA.Token().SortsBefore(amountB.Token())
	if err != nil {
		return nil, err
	}
	if !before {
		amountA, amountB = amountB, amountA
	}
	if !amountA.Token().Equal(p.Token0()) || !amountB.Token().Equal(p.Token1()) {
		return nil, types.ErrToken
	}

	var liquidity *big.Int
	if totalSupply.Raw().Sign() == 0 {
		liquidity = math.Sqrt(new(big.Int).Mul(amountA.Raw(), amountB.Raw()))
		liquidity.Sub(liquidity, big.NewInt(MinimumLiquidity))
	} else {
		if !p.hasLiquidity() {
			return nil, ErrInsufficientReserves
		}
		a := math.DivTrunc(new(big.Int).Mul(amountA.Raw(), totalSupply.Raw()), p.reserves[0].Raw())
		b := math.DivTrunc(new(big.Int).Mul(amountB.Raw(), totalSupply.Raw()), p.reserves[1].Raw())
		liquidity = math.Min(a, b)
	}

	if liquidity.Sign() <= 0 {
		return nil, ErrInsufficientInputAmount
	}
	return types.NewTokenAmount(p.liquidityToken, liquidity)
}

// GetLiquidityValue returns the amount of token that liquidity redeems.
// With feeOn, the protocol fee accrued since kLast dilutes the supply first.
func (p *Pair) GetLiquidityValue(token *types.Token, totalSupply, liquidity *types.TokenAmount, feeOn bool, kLast *big.Int) (*types.TokenAmount, error) {
	reserve, err := p.ReserveOf(token)
	if err != nil {
		return nil, err
	}
	if !totalSupply.Token().Equal(p.liquidityToken) || !liquidity.Token().Equal(p.liquidityToken) {
		return nil, ErrLiquidity
	}
	if liquidity.Raw().Cmp(totalSupply.Raw()) > 0 {
		return nil, ErrLiquidity
	}

	supply := totalSupply.Raw()
	if feeOn {
		if kLast == nil {
			return nil, fmt.Errorf("kLast is required when the protocol fee is on: %w", ErrLiquidity)
		}
		if kLast.Sign() != 0 {
			rootK := math.Sqrt(new(big.Int).Mul(p.reserves[0].Raw(), p.reserves[1].Raw()))
			rootKLast := math.Sqrt(kLast)
			if rootK.Cmp(rootKLast) > 0 {
				numerator := new(big.Int).Mul(supply, new(big.Int).Sub(rootK, rootKLast))
				denominator := new(big.Int).Add(new(big.Int).Mul(rootK, big.NewInt(5)), rootKLast)
				supply.Add(supply, math.DivTrunc(numerator, denominator))
			}
		}
	}

	if supply.Sign() == 0 {
		return nil, ErrLiquidity
	}
	value := math.DivTrunc(new(big.Int).Mul(liquidity.Raw(), reserve.Raw()), supply)
	return types.NewTokenAmount(token, value)
}

func (p *Pair) String() string {
	return fmt.Sprintf("%s[%s/%s]", p.platform, p.Token0().Symbol(), p.Token1().Symbol())
}

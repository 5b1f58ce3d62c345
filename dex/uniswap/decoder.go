package uniswap

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var ErrNotSwapCall = errors.New("not a router swap call")

// SwapCall is decoded router calldata.
type SwapCall struct {
	Method   string
	TokenIn  common.Address
	TokenOut common.Address

	// AmountIn is the exact or maximum input. It is nil for methods that
	// take ETH, where the input is the call value.
	AmountIn *big.Int

	// AmountOut is the exact or minimum output
	AmountOut *big.Int

	Path     []common.Address
	To       common.Address
	Deadline *big.Int
}

// DecodeSwapCall decodes calldata of any router swap method.
func DecodeSwapCall(data []byte) (*SwapCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata of %d bytes: %w", len(data), ErrNotSwapCall)
	}

	method, err := routerABI.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrNotSwapCall)
	}

	params := make(map[string]interface{})
	if err := method.Inputs.UnpackIntoMap(params, data[4:]); err != nil {
		return nil, fmt.Errorf("failed to decode %s parameters: %w", method.Name, err)
	}

	path, ok := params["path"].([]common.Address)
	if !ok || len(path) < 2 {
		return nil, fmt.Errorf("invalid path")
	}

	to, ok := params["to"].(common.Address)
	if !ok {
		return nil, fmt.Errorf("invalid to address")
	}

	deadline, ok := params["deadline"].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid deadline")
	}

	call := &SwapCall{
		Method:   method.Name,
		TokenIn:  path[0],
		TokenOut: path[len(path)-1],
		Path:     path,
		To:       to,
		Deadline: deadline,
	}

	for _, key := range []string{"amountIn", "amountInMax"} {
		if v, ok := params[key].(*big.Int); ok {
			call.AmountIn = v
		}
	}
	for _, key := range []string{"amountOut", "amountOutMin"} {
		if v, ok := params[key].(*big.Int); ok {
			call.AmountOut = v
		}
	}
	if call.AmountOut == nil {
		return nil, fmt.Errorf("%s has no output amount", method.Name)
	}

	return call, nil
}

package math

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// SolidityType is an integer domain of the EVM that values must fit in.
type SolidityType int

const (
	Uint8 SolidityType = iota
	Uint256
)

func (t SolidityType) String() string {
	switch t {
	case Uint8:
		return "uint8"
	case Uint256:
		return "uint256"
	default:
		return fmt.Sprintf("SolidityType(%d)", int(t))
	}
}

// ErrSolidityType matches every *SolidityTypeError through errors.Is.
var ErrSolidityType = errors.New("solidity type error")

// SolidityTypeError reports a value outside of its Solidity domain.
type SolidityTypeError struct {
	Type  SolidityType
	Value *big.Int
}

func (e *SolidityTypeError) Error() string {
	return fmt.Sprintf("%s is not a %s", e.Value, e.Type)
}

func (e *SolidityTypeError) Is(target error) bool {
	return target == ErrSolidityType
}

// ValidateSolidityType checks 0 <= value <= max(typ).
func ValidateSolidityType(value *big.Int, typ SolidityType) error {
	if value == nil {
		return &SolidityTypeError{Type: typ, Value: new(big.Int)}
	}
	if value.Sign() < 0 {
		return &SolidityTypeError{Type: typ, Value: new(big.Int).Set(value)}
	}

	switch typ {
	case Uint8:
		if value.Cmp(MaxUint8) > 0 {
			return &SolidityTypeError{Type: typ, Value: new(big.Int).Set(value)}
		}
	case Uint256:
		if _, overflow := uint256.FromBig(value); overflow {
			return &SolidityTypeError{Type: typ, Value: new(big.Int).Set(value)}
		}
	default:
		return fmt.Errorf("unknown solidity type %s", typ)
	}

	return nil
}

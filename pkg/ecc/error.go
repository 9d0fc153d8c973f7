package ecc

import (
	"fmt"
	"math/big"

	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
)

func valueTooLarge(v *big.Int, width int) error {
	return &circuit.Error{
		Kind: circuit.ValueTooLarge,
		Msg:  fmt.Sprintf("coordinate %s does not fit in %d bits", v, width),
	}
}

func lengthMismatch(lengths ...int) error {
	return &circuit.Error{
		Kind: circuit.LengthMismatch,
		Msg:  fmt.Sprintf("point coordinates must share length: %v", lengths),
	}
}

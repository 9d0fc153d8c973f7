package modp

import (
	"fmt"

	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
)

func inputTooShort(got, want int) error {
	return &circuit.Error{
		Kind: circuit.InputTooShort,
		Msg:  fmt.Sprintf("operand has %d bits, need at least %d", got, want),
	}
}

func lengthMismatch(lengths ...int) error {
	return &circuit.Error{
		Kind: circuit.LengthMismatch,
		Msg:  fmt.Sprintf("operand lengths do not satisfy the operation's contract: %v", lengths),
	}
}

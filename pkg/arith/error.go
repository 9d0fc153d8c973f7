package arith

import (
	"fmt"

	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
)

func lengthMismatch(lengths ...int) error {
	return &circuit.Error{
		Kind: circuit.LengthMismatch,
		Msg:  fmt.Sprintf("operand lengths do not satisfy the operation's contract: %v", lengths),
	}
}

package gate

import (
	"fmt"

	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
)

func lengthMismatch(lengths ...int) error {
	return &circuit.Error{
		Kind: circuit.LengthMismatch,
		Msg:  fmt.Sprintf("operand lengths must match, got %v", lengths),
	}
}

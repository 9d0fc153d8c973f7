// Package encode converts between arbitrary-precision integers and
// little-endian {0,1} bit lists — the wire format every higher layer
// uses for constants (P, curve coordinates, the scalar k).
package encode

import (
	"errors"
	"math/big"
)

// ErrValueTooLarge is returned by Bits when n does not fit in the
// requested length.
var ErrValueTooLarge = errors.New("value does not fit in requested bit length")

// Bits returns the little-endian binary expansion of n (n must be
// non-negative). If length is nil, the minimal-length expansion is
// returned: no trailing zero bits beyond the value's own bit length,
// and the zero value encodes as an empty slice. If length is non-nil,
// the result is zero-padded to exactly *length bits, or ErrValueTooLarge
// if n does not fit.
func Bits(n *big.Int, length *int) ([]int, error) {
	if n.Sign() < 0 {
		return nil, errors.New("encode: negative value")
	}
	bitLen := n.BitLen()
	if length == nil {
		out := make([]int, bitLen)
		for i := 0; i < bitLen; i++ {
			out[i] = int(n.Bit(i))
		}
		return out, nil
	}
	if bitLen > *length {
		return nil, ErrValueTooLarge
	}
	out := make([]int, *length)
	for i := 0; i < *length; i++ {
		out[i] = int(n.Bit(i))
	}
	return out, nil
}

// Int reconstructs the non-negative integer encoded little-endian by bits.
func Int(bits []int) *big.Int {
	n := new(big.Int)
	for i := len(bits) - 1; i >= 0; i-- {
		n.Lsh(n, 1)
		if bits[i] != 0 {
			n.Or(n, big.NewInt(1))
		}
	}
	return n
}

// Length returns a pointer to n, for call sites that need *int literals
// without an intermediate variable.
func Length(n int) *int {
	return &n
}

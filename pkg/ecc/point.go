// Package ecc implements symbolic elliptic-curve point addition and
// scalar multiplication over a short Weierstrass curve y^2 = x^3 + ax +
// b mod P, built entirely on modp's forward-equation primitives. The
// curve's own a, b parameters never appear here: a is absorbed into the
// caller-supplied precomputed doubles of the base point, and b never
// enters the symbolic path at all (spec §9).
package ecc

import (
	"math/big"

	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
	"github.com/oisee/ecc-bqm-compiler/pkg/encode"
	"github.com/oisee/ecc-bqm-compiler/pkg/modp"
)

// Point is a symbolic affine point: a pair of equal-length Variables.
type Point struct {
	X, Y circuit.Variable
}

// PointConst is a known affine point: its integer coordinates plus
// their little-endian expansion to a fixed width.
type PointConst struct {
	X, Y         *big.Int
	XBits, YBits []int
}

// NewPointConst expands (x, y) to width bits each. Returns
// VALUE_TOO_LARGE if either coordinate does not fit.
func NewPointConst(x, y *big.Int, width int) (PointConst, error) {
	xBits, err := encode.Bits(x, &width)
	if err != nil {
		return PointConst{}, valueTooLarge(x, width)
	}
	yBits, err := encode.Bits(y, &width)
	if err != nil {
		return PointConst{}, valueTooLarge(y, width)
	}
	return PointConst{X: x, Y: y, XBits: xBits, YBits: yBits}, nil
}

// NewPoint allocates a fresh symbolic point of the given coordinate width.
func NewPoint(m *modp.Controller) Point {
	return Point{X: m.NewResidue(), Y: m.NewResidue()}
}

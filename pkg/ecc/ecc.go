package ecc

import (
	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
	"github.com/oisee/ecc-bqm-compiler/pkg/gate"
	"github.com/oisee/ecc-bqm-compiler/pkg/modp"
)

// Controller wraps a modp.Controller with symbolic point operations.
type Controller struct {
	m *modp.Controller
	g *gate.Controller
}

// New returns an ECC controller over m.
func New(m *modp.Controller) *Controller {
	return &Controller{m: m, g: gate.New(m.Base())}
}

// Add emits symbolic point addition C = A + B for distinct points
// (A a symbolic variable point, B a known constant point). The formula
// does not cover A == B or A == -B: with A == -B the model has no
// zero-energy state, and with A == B lambda is left free, so C is not
// pinned to 2*B. ScalarMultiply's first iteration always calls Add with
// A == B == G (the seed and doubles[0]).
//
// With lambda = (A.Y - B.Y) / (A.X - B.X):
//
//	C.X = lambda^2 - B.X - A.X
//	C.Y = lambda*(B.X - C.X) - B.Y
func (e *Controller) Add(A Point, B PointConst, C Point) error {
	L := e.m.L
	if len(A.X) != L || len(A.Y) != L || len(C.X) != L || len(C.Y) != L {
		return lengthMismatch(len(A.X), len(A.Y), len(C.X), len(C.Y), L)
	}

	ySub := e.m.NewResidue()
	if err := e.m.SubConstModP(A.Y, B.YBits, ySub, true); err != nil {
		return err
	}
	xSub := e.m.NewResidue()
	if err := e.m.SubConstModP(A.X, B.XBits, xSub, true); err != nil {
		return err
	}
	lambda := e.m.NewResidue()
	if err := e.m.DivModP(ySub, xSub, lambda, true); err != nil {
		return err
	}
	lambdaSq := e.m.NewResidue()
	if err := e.m.SquareModP(lambda, lambdaSq, true); err != nil {
		return err
	}

	tmp := e.m.NewResidue()
	if err := e.m.SubConstModP(lambdaSq, B.XBits, tmp, true); err != nil { // tmp = lambda^2 - B.X
		return err
	}
	if err := e.m.SubModP(tmp, A.X, C.X, true); err != nil { // C.X = tmp - A.X
		return err
	}

	bxConst, err := e.m.ConstResidue(B.X)
	if err != nil {
		return err
	}
	diff := e.m.NewResidue()
	if err := e.m.SubModP(bxConst, C.X, diff, true); err != nil { // diff = B.X - C.X
		return err
	}
	prod := e.m.NewResidue()
	if err := e.m.MultModP(lambda, diff, prod, true); err != nil { // prod = lambda*diff
		return err
	}
	return e.m.SubConstModP(prod, B.YBits, C.Y, true) // C.Y = prod - B.Y
}

// Sub emits the assertion A = B + C, i.e. C = A - B, via Add(C, B, A).
func (e *Controller) Sub(A Point, B PointConst, C Point) error {
	return e.Add(C, B, A)
}

// ScalarMultiply emits out = key*G, given doubles[i] = 2^i*G
// precomputed off-line for i = 0..len(key)-1 (doubles[0] == G itself).
//
// The accumulator is seeded at G rather than at the point at infinity —
// the affine encoding has no representation for it (spec §9) — and one
// fixed G is subtracted off after the loop. A consequence, inherent to
// the affine encoding, is that key = 0 is undefined, and any
// intermediate step that would reduce the accumulator to the identity
// makes the corresponding DivModP infeasible (no zero-energy ground
// state) rather than producing a wrong answer.
func (e *Controller) ScalarMultiply(doubles []PointConst, key circuit.Variable, out Point) error {
	L := e.m.L
	if len(key) != len(doubles) {
		return lengthMismatch(len(key), len(doubles))
	}
	if len(out.X) != L || len(out.Y) != L {
		return lengthMismatch(len(out.X), len(out.Y), L)
	}

	seed := NewPoint(e.m)
	if err := e.m.Base().QueueFixVariable(seed.X, doubles[0].X); err != nil {
		return err
	}
	if err := e.m.Base().QueueFixVariable(seed.Y, doubles[0].Y); err != nil {
		return err
	}

	acc := seed
	for i, d := range doubles {
		added := NewPoint(e.m)
		if err := e.Add(acc, d, added); err != nil {
			return err
		}
		next := NewPoint(e.m)
		if err := e.g.MuxVar(acc.X, added.X, key[i], next.X); err != nil {
			return err
		}
		if err := e.g.MuxVar(acc.Y, added.Y, key[i], next.Y); err != nil {
			return err
		}
		acc = next
	}

	return e.Sub(acc, doubles[0], out)
}

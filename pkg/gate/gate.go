// Package gate emits penalty functions for logic gates into a
// circuit.Controller's model: ground energy 0 iff the gate is
// satisfied, strictly positive otherwise. Implementations reproduce
// the coefficient tables bit-for-bit — the arithmetic layer built on
// top relies on them being exactly zero-energy when correct.
package gate

import (
	"github.com/oisee/ecc-bqm-compiler/pkg/bit"
	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
)

// Controller wraps a circuit.Controller with the gate vocabulary.
type Controller struct {
	c *circuit.Controller
}

// New returns a gate controller over c.
func New(c *circuit.Controller) *Controller {
	return &Controller{c: c}
}

// Base returns the underlying circuit controller, for callers (arith,
// modp, ecc) that also need to allocate variables or merge bits
// directly.
func (g *Controller) Base() *circuit.Controller { return g.c }

// Zero forces a = 0: L(a,1).
func (g *Controller) Zero(a bit.Bit) {
	g.c.AddLinear(a, 1)
}

// One forces a = 1: L(a,-1), O(1).
func (g *Controller) One(a bit.Bit) {
	g.c.AddLinear(a, -1)
	g.c.AddOffset(1)
}

// Not emits z = NOT(a): L(a,-1), L(z,-1), Q(a,z,2), O(1).
func (g *Controller) Not(a, z bit.Bit) {
	g.c.AddLinear(a, -1)
	g.c.AddLinear(z, -1)
	g.c.AddQuadratic(a, z, 2)
	g.c.AddOffset(1)
}

// And emits z = AND(a,b): L(z,3), Q(a,b,1), Q(a,z,-2), Q(b,z,-2).
func (g *Controller) And(a, b, z bit.Bit) {
	g.c.AddLinear(z, 3)
	g.c.AddQuadratic(a, b, 1)
	g.c.AddQuadratic(a, z, -2)
	g.c.AddQuadratic(b, z, -2)
}

// Or emits z = OR(a,b): L(a,1),L(b,1),L(z,1), Q(a,b,1),Q(a,z,-2),Q(b,z,-2).
func (g *Controller) Or(a, b, z bit.Bit) {
	g.c.AddLinear(a, 1)
	g.c.AddLinear(b, 1)
	g.c.AddLinear(z, 1)
	g.c.AddQuadratic(a, b, 1)
	g.c.AddQuadratic(a, z, -2)
	g.c.AddQuadratic(b, z, -2)
}

// Xor emits z = XOR(a,b) using a fresh ancilla t:
// L(a,1),L(b,1),L(z,1),L(t,4), Q(a,b,2),Q(a,z,-2),Q(b,z,-2),
// Q(a,t,-4),Q(b,t,-4),Q(t,z,4).
func (g *Controller) Xor(a, b, z bit.Bit) {
	t := g.c.NewBit()
	g.c.AddLinear(a, 1)
	g.c.AddLinear(b, 1)
	g.c.AddLinear(z, 1)
	g.c.AddLinear(t, 4)
	g.c.AddQuadratic(a, b, 2)
	g.c.AddQuadratic(a, z, -2)
	g.c.AddQuadratic(b, z, -2)
	g.c.AddQuadratic(a, t, -4)
	g.c.AddQuadratic(b, t, -4)
	g.c.AddQuadratic(t, z, 4)
}

// Xnor emits z = XNOR(a,b): emit Xor(a,b,z), then flip z in the model
// via Store.Flip on z's current name (resolved by circuit.Controller).
func (g *Controller) Xnor(a, b, z bit.Bit) {
	g.Xor(a, b, z)
	g.c.Store().Flip(g.c.NameOf(z))
}

// HalfAdder emits s,c = HALFADDER(a,b): the sum and carry of a+b.
// L(a,1),L(b,1),L(s,1),L(c,4), Q(a,b,2),Q(a,s,-2),Q(a,c,-4),
// Q(b,s,-2),Q(b,c,-4),Q(s,c,4).
func (g *Controller) HalfAdder(a, b, s, c bit.Bit) {
	g.c.AddLinear(a, 1)
	g.c.AddLinear(b, 1)
	g.c.AddLinear(s, 1)
	g.c.AddLinear(c, 4)
	g.c.AddQuadratic(a, b, 2)
	g.c.AddQuadratic(a, s, -2)
	g.c.AddQuadratic(a, c, -4)
	g.c.AddQuadratic(b, s, -2)
	g.c.AddQuadratic(b, c, -4)
	g.c.AddQuadratic(s, c, 4)
}

// FullAdder emits s,c = FULLADDER(a,b,d): the sum and carry of a+b+d.
// L(a,1),L(b,1),L(d,1),L(s,1),L(c,4),
// Q(a,b,2),Q(a,d,2),Q(a,s,-2),Q(a,c,-4),Q(b,d,2),Q(b,s,-2),Q(b,c,-4),
// Q(d,s,-2),Q(d,c,-4),Q(s,c,4).
func (g *Controller) FullAdder(a, b, d, s, c bit.Bit) {
	g.c.AddLinear(a, 1)
	g.c.AddLinear(b, 1)
	g.c.AddLinear(d, 1)
	g.c.AddLinear(s, 1)
	g.c.AddLinear(c, 4)
	g.c.AddQuadratic(a, b, 2)
	g.c.AddQuadratic(a, d, 2)
	g.c.AddQuadratic(a, s, -2)
	g.c.AddQuadratic(a, c, -4)
	g.c.AddQuadratic(b, d, 2)
	g.c.AddQuadratic(b, s, -2)
	g.c.AddQuadratic(b, c, -4)
	g.c.AddQuadratic(d, s, -2)
	g.c.AddQuadratic(d, c, -4)
	g.c.AddQuadratic(s, c, 4)
}

// Mux emits z = a if ctrl=0 else b, using a fresh ancilla t:
// L(a,1),L(z,3),L(t,8),
// Q(a,b,2),Q(a,ctrl,-1),Q(b,ctrl,1),Q(a,z,-4),Q(b,z,-2),Q(ctrl,z,2),
// Q(a,t,2),Q(b,t,-4),Q(ctrl,t,-4),Q(z,t,-4).
func (g *Controller) Mux(a, b, ctrl, z bit.Bit) {
	t := g.c.NewBit()
	g.c.AddLinear(a, 1)
	g.c.AddLinear(z, 3)
	g.c.AddLinear(t, 8)
	g.c.AddQuadratic(a, b, 2)
	g.c.AddQuadratic(a, ctrl, -1)
	g.c.AddQuadratic(b, ctrl, 1)
	g.c.AddQuadratic(a, z, -4)
	g.c.AddQuadratic(b, z, -2)
	g.c.AddQuadratic(ctrl, z, 2)
	g.c.AddQuadratic(a, t, 2)
	g.c.AddQuadratic(b, t, -4)
	g.c.AddQuadratic(ctrl, t, -4)
	g.c.AddQuadratic(z, t, -4)
}

// MuxVar applies Mux position-wise: Z[i] = A[i] if ctrl=0 else B[i].
// A and B must share length; Z must match.
func (g *Controller) MuxVar(a, b circuit.Variable, ctrl bit.Bit, z circuit.Variable) error {
	if len(a) != len(b) || len(a) != len(z) {
		return lengthMismatch(len(a), len(b), len(z))
	}
	for i := range a {
		g.Mux(a[i], b[i], ctrl, z[i])
	}
	return nil
}

// AndVar applies And position-wise, sharing a single control bit:
// Z[i] = ctrl AND A[i].
func (g *Controller) AndVar(ctrl bit.Bit, a, z circuit.Variable) error {
	if len(a) != len(z) {
		return lengthMismatch(len(a), len(z))
	}
	for i := range a {
		g.And(ctrl, a[i], z[i])
	}
	return nil
}

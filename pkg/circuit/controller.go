// Package circuit implements the BaseController: it composes a bit
// table and a quadratic model into the surface every higher-level
// controller (gate, arith, modp, ecc) builds on — variable allocation,
// bit aliasing, the deferred constant-fix queue, and the sampler
// hand-off. Nothing in this package knows what a gate or an adder is;
// it only knows how to keep bits, names, and terms consistent.
package circuit

import (
	"fmt"
	"io"
	"math/big"

	"github.com/oisee/ecc-bqm-compiler/pkg/bit"
	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
	"github.com/oisee/ecc-bqm-compiler/pkg/encode"
)

// Variable is an ordered, little-endian sequence of bits encoding a
// non-negative integer. Index 0 is the least-significant bit.
type Variable []bit.Bit

// Len returns the bit width of v.
func (v Variable) Len() int { return len(v) }

// Sampler is the pluggable solver boundary (spec §6): given an
// immutable snapshot of the model, it returns an enumeration of
// assignments. pkg/sample provides the exact-enumerator and
// simulated-annealing implementations; Controller only depends on this
// interface to avoid importing a concrete sampler.
type Sampler interface {
	Sample(snap *bqm.Snapshot) (bqm.SampleSet, error)
}

type fixRequest struct {
	bit bit.Bit
	v   int
}

// Controller is the BaseController: it owns the bit table, the
// quadratic model, the named-variable registry, and the deferred
// constant-fix queue.
type Controller struct {
	bits  *bit.Table
	store *bqm.Store

	named map[string]Variable

	queue     []fixRequest
	constants map[bit.Bit]int

	warn io.Writer
}

// New returns an empty controller. If warn is nil, warnings (§7's
// downgraded constant-fix conflicts) are discarded.
func New(warn io.Writer) *Controller {
	if warn == nil {
		warn = io.Discard
	}
	return &Controller{
		bits:      bit.New(),
		store:     bqm.New(),
		named:     make(map[string]Variable),
		constants: make(map[bit.Bit]int),
		warn:      warn,
	}
}

// Store exposes the underlying model for components that need direct
// access to offsets and neighbour queries (gate penalty emission).
func (c *Controller) Store() *bqm.Store { return c.store }

// NewBit allocates a fresh bit.
func (c *Controller) NewBit() bit.Bit { return c.bits.NewBit() }

// NewBits allocates n fresh bits.
func (c *Controller) NewBits(n int) []bit.Bit { return c.bits.NewBits(n) }

// NewVariable allocates a fresh Variable of the given bit length.
func (c *Controller) NewVariable(length int) Variable {
	return Variable(c.bits.NewBits(length))
}

// NameOf returns b's current canonical name.
func (c *Controller) NameOf(b bit.Bit) bqm.Name { return bqm.Name(c.bits.NameOf(b)) }

// AddLinear adds delta to b's linear bias.
func (c *Controller) AddLinear(b bit.Bit, delta int64) {
	c.store.AddLinear(c.NameOf(b), delta)
}

// AddQuadratic adds delta to the quadratic bias between a and b.
func (c *Controller) AddQuadratic(a, b bit.Bit, delta int64) {
	c.store.AddQuadratic(c.NameOf(a), c.NameOf(b), delta)
}

// AddOffset adds delta to the model's constant offset.
func (c *Controller) AddOffset(delta int64) {
	c.store.AddOffset(delta)
}

// Merge declares a and b to be the same bit going forward: a's current
// name survives, and the terms of b's name are folded into it. A no-op
// if a and b are already aliased.
func (c *Controller) Merge(a, b bit.Bit) {
	winner, loser, merged := c.bits.Merge(a, b)
	if !merged {
		return
	}
	c.store.MergeFold(bqm.Name(winner), bqm.Name(loser))
}

// QueueFix records that b must equal v (0 or 1) once the sampler runs.
// Fixings are deferred (spec §5/§9): applying them immediately would
// remove variables that later gate emissions still need to reference.
func (c *Controller) QueueFix(b bit.Bit, v int) error {
	if v != 0 && v != 1 {
		return errf(LengthMismatch, "fix value must be 0 or 1, got %d", v)
	}
	c.queue = append(c.queue, fixRequest{bit: b, v: v})
	c.constants[b] = v
	return nil
}

// QueueFixVariable fixes every bit of v to the corresponding bit of
// value's little-endian expansion (zero-padded to len(v)). Returns
// VALUE_TOO_LARGE if value does not fit in len(v) bits.
func (c *Controller) QueueFixVariable(v Variable, value *big.Int) error {
	length := len(v)
	bits, err := encode.Bits(value, &length)
	if err != nil {
		return errf(ValueTooLarge, "constant %s does not fit in %d bits", value, length)
	}
	for i, b := range v {
		if err := c.QueueFix(b, bits[i]); err != nil {
			return err
		}
	}
	return nil
}

// CreateVariable registers a Variable under a caller-chosen label, for
// later lookup by name. Returns DUPLICATE_NAME if the label is already
// registered.
func (c *Controller) CreateVariable(name string, length int) (Variable, error) {
	if _, exists := c.named[name]; exists {
		return nil, errf(DuplicateName, "variable %q already created", name)
	}
	v := c.NewVariable(length)
	c.named[name] = v
	return v, nil
}

// Variable looks up a previously created variable by label. Returns
// UNKNOWN_NAME if it was never created.
func (c *Controller) Variable(name string) (Variable, error) {
	v, ok := c.named[name]
	if !ok {
		return nil, errf(UnknownName, "variable %q was never created", name)
	}
	return v, nil
}

// RunSampler drains the constant-fix queue against the current
// canonical names, snapshots the resulting model, and hands it to s.
// Draining happens in insertion order; fixing a name that an earlier
// entry in the same queue already fixed is downgraded to a logged
// warning (spec §7) rather than an error — the value is still recorded
// for ExtractBit/ExtractVariable.
func (c *Controller) RunSampler(s Sampler) (bqm.SampleSet, error) {
	fixed := make(map[bqm.Name]bool)
	for _, req := range c.queue {
		name := c.NameOf(req.bit)
		if fixed[name] {
			fmt.Fprintf(c.warn, "circuit: bit %d (name %d) already fixed this run, value %d recorded but not re-applied\n",
				req.bit, name, req.v)
			continue
		}
		c.store.Fix(name, req.v)
		fixed[name] = true
	}
	return s.Sample(c.store.Snapshot())
}

// ExtractBit resolves b's value from a sample: if b's name is present
// in the assignment, that value is returned; otherwise, if b was
// queued as a constant, the recorded value is returned; otherwise, if a
// bit merged with b was queued, the first such queued value is
// returned. ok is false if none applies.
func (c *Controller) ExtractBit(sample bqm.Sample, b bit.Bit) (value int, ok bool) {
	name := c.NameOf(b)
	if v, present := sample.Assignment[name]; present {
		return v, true
	}
	if v, present := c.constants[b]; present {
		return v, true
	}
	for _, req := range c.queue {
		if c.NameOf(req.bit) == name {
			return req.v, true
		}
	}
	return 0, false
}

// ExtractVariable resolves every bit of v via ExtractBit, little-endian.
// Returns UNKNOWN_NAME-flavoured error if any bit cannot be resolved.
func (c *Controller) ExtractVariable(sample bqm.Sample, v Variable) ([]int, error) {
	out := make([]int, len(v))
	for i, b := range v {
		val, ok := c.ExtractBit(sample, b)
		if !ok {
			return nil, errf(UnknownName, "bit %d of variable has no value in sample and no recorded constant", b)
		}
		out[i] = val
	}
	return out, nil
}

// ExtractInt extracts v and decodes it as a little-endian integer.
func (c *Controller) ExtractInt(sample bqm.Sample, v Variable) (*big.Int, error) {
	bits, err := c.ExtractVariable(sample, v)
	if err != nil {
		return nil, err
	}
	return encode.Int(bits), nil
}

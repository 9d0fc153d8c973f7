// Package result persists compiled models and sampler output between
// CLI invocations: a Checkpoint carries a snapshot (the "build" step's
// output) to disk so "solve" can run later or on a different machine,
// and a Table collects and ranks the solutions a solve run finds.
package result

import (
	"encoding/gob"
	"os"
	"time"

	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
)

// linearTerm and quadraticTerm are gob's wire format for a Snapshot's
// terms: encoding a map keyed by a struct works with gob, but storing
// it as slices keeps the wire format stable if Snapshot's internals
// change shape later.
type linearTerm struct {
	Name bqm.Name
	Bias int64
}

type quadraticTerm struct {
	A, B bqm.Name
	Bias int64
}

// Checkpoint holds everything "bqmc solve" needs to resume or repeat a
// sampling run against an already-compiled model.
type Checkpoint struct {
	Linear    []linearTerm
	Quadratic []quadraticTerm
	Offset    int64
	Problem   string // human label, e.g. "ecc-scalarmult-p13"
	BitWidth  int
	CreatedAt time.Time
	// Labels records the names of caller-chosen Variables (e.g. "key",
	// "out.x", "out.y") so a later "bqmc solve" process can read back
	// the bits that mattered without re-running the compiler. Optional:
	// zero value is fine for checkpoints used purely for their BQM.
	Labels map[string][]bqm.Name
}

// NewCheckpoint flattens snap into a Checkpoint ready to save.
func NewCheckpoint(snap *bqm.Snapshot, problem string, bitWidth int) *Checkpoint {
	ckpt := &Checkpoint{
		Linear:    make([]linearTerm, 0, len(snap.Linear)),
		Quadratic: make([]quadraticTerm, 0, len(snap.Quadratic)),
		Offset:    snap.Offset,
		Problem:   problem,
		BitWidth:  bitWidth,
		CreatedAt: time.Now(),
	}
	for name, bias := range snap.Linear {
		ckpt.Linear = append(ckpt.Linear, linearTerm{Name: name, Bias: bias})
	}
	for k, bias := range snap.Quadratic {
		a, b := k.Endpoints()
		ckpt.Quadratic = append(ckpt.Quadratic, quadraticTerm{A: a, B: b, Bias: bias})
	}
	return ckpt
}

// Snapshot rebuilds the bqm.Snapshot this checkpoint was built from.
func (ckpt *Checkpoint) Snapshot() *bqm.Snapshot {
	snap := &bqm.Snapshot{
		Linear:    make(map[bqm.Name]int64, len(ckpt.Linear)),
		Quadratic: make(map[bqm.Pair]int64, len(ckpt.Quadratic)),
		Offset:    ckpt.Offset,
	}
	for _, t := range ckpt.Linear {
		snap.Linear[t.Name] = t.Bias
	}
	for _, t := range ckpt.Quadratic {
		snap.Quadratic[bqm.MakePair(t.A, t.B)] = t.Bias
	}
	return snap
}

// SaveCheckpoint writes ckpt to path.
func SaveCheckpoint(path string, ckpt *Checkpoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(ckpt)
}

// LoadCheckpoint reads a Checkpoint previously written by SaveCheckpoint.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ckpt Checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, err
	}
	return &ckpt, nil
}

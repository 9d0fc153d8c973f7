package ecc

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strconv"
)

// doublesFile is the JSON shape of a precomputed-doubles file: a map
// from string index "0".."L-1" to the x/y coordinates of 2^i*G.
type doublesFile map[string]struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// LoadDoubles reads a precomputed-doubles JSON file and returns
// PointConst values ordered by index, each expanded to width bits.
func LoadDoubles(r io.Reader, width int) ([]PointConst, error) {
	var raw doublesFile
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ecc: decoding doubles file: %w", err)
	}

	indices := make([]int, 0, len(raw))
	for k := range raw {
		i, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("ecc: doubles file index %q is not an integer: %w", k, err)
		}
		indices = append(indices, i)
	}
	sort.Ints(indices)

	doubles := make([]PointConst, len(indices))
	for pos, i := range indices {
		if i != pos {
			return nil, fmt.Errorf("ecc: doubles file indices must be 0..%d contiguous, missing %d", len(indices)-1, pos)
		}
		entry := raw[strconv.Itoa(i)]
		pc, err := NewPointConst(entry.X, entry.Y, width)
		if err != nil {
			return nil, err
		}
		doubles[pos] = pc
	}
	return doubles, nil
}

// SaveDoubles writes doubles (indexed 0..len(doubles)-1) as a
// precomputed-doubles JSON file.
func SaveDoubles(w io.Writer, doubles []PointConst) error {
	raw := make(doublesFile, len(doubles))
	for i, d := range doubles {
		raw[strconv.Itoa(i)] = struct {
			X *big.Int `json:"x"`
			Y *big.Int `json:"y"`
		}{X: d.X, Y: d.Y}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

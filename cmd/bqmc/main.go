// Command bqmc is a thin driver around the compiler: "doubles"
// precomputes 2^i*G for a base point, "build" compiles a scalar-multiply
// BQM and checkpoints it, "solve" loads a checkpoint and runs a sampler.
// None of this is part of the core under test (spec §1/§6) — it is the
// same kind of cobra-wired CLI shell as the teacher's cmd/z80opt.
package main

import (
	"fmt"
	"math/big"
	"os"
	"runtime"

	"github.com/oisee/ecc-bqm-compiler/pkg/arith"
	"github.com/oisee/ecc-bqm-compiler/pkg/bqm"
	"github.com/oisee/ecc-bqm-compiler/pkg/circuit"
	"github.com/oisee/ecc-bqm-compiler/pkg/ecc"
	"github.com/oisee/ecc-bqm-compiler/pkg/encode"
	"github.com/oisee/ecc-bqm-compiler/pkg/gate"
	"github.com/oisee/ecc-bqm-compiler/pkg/modp"
	"github.com/oisee/ecc-bqm-compiler/pkg/result"
	"github.com/oisee/ecc-bqm-compiler/pkg/sample"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bqmc",
		Short: "BQM arithmetic/ECC compiler — build and solve scalar-multiply models",
	}

	rootCmd.AddCommand(newDoublesCmd(), newBuildCmd(), newSolveCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newDoublesCmd() *cobra.Command {
	var p, a, gx, gy string
	var length int
	var output string

	cmd := &cobra.Command{
		Use:   "doubles",
		Short: "Precompute 2^i*G for i=0..length-1 on y^2=x^3+a*x+b mod p",
		RunE: func(cmd *cobra.Command, args []string) error {
			P, ok := new(big.Int).SetString(p, 10)
			if !ok {
				return fmt.Errorf("bqmc: invalid --p %q", p)
			}
			A, ok := new(big.Int).SetString(a, 10)
			if !ok {
				return fmt.Errorf("bqmc: invalid --a %q", a)
			}
			Gx, ok := new(big.Int).SetString(gx, 10)
			if !ok {
				return fmt.Errorf("bqmc: invalid --gx %q", gx)
			}
			Gy, ok := new(big.Int).SetString(gy, 10)
			if !ok {
				return fmt.Errorf("bqmc: invalid --gy %q", gy)
			}
			if length <= 0 {
				length = P.BitLen()
			}

			doubles := classicalDoubles(P, A, Gx, Gy, length)
			pcs := make([]ecc.PointConst, length)
			width := P.BitLen()
			for i, d := range doubles {
				pc, err := ecc.NewPointConst(d[0], d[1], width)
				if err != nil {
					return err
				}
				pcs[i] = pc
			}

			var w *os.File
			if output == "" || output == "-" {
				w = os.Stdout
			} else {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return ecc.SaveDoubles(w, pcs)
		},
	}
	cmd.Flags().StringVar(&p, "p", "", "prime field modulus (decimal)")
	cmd.Flags().StringVar(&a, "a", "", "curve parameter a (decimal)")
	cmd.Flags().StringVar(&gx, "gx", "", "base point x coordinate (decimal)")
	cmd.Flags().StringVar(&gy, "gy", "", "base point y coordinate (decimal)")
	cmd.Flags().IntVar(&length, "length", 0, "number of doubles to emit (0 = bit length of p)")
	cmd.Flags().StringVar(&output, "output", "-", "output JSON path (- for stdout)")
	cmd.MarkFlagRequired("p")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("gx")
	cmd.MarkFlagRequired("gy")
	return cmd
}

// classicalDoubles computes 2^i*G classically (the one piece of
// non-symbolic curve arithmetic spec §1 permits): repeated point
// doubling over math/big using the standard affine tangent-slope
// formula. d[0] is G itself.
func classicalDoubles(P, A, gx, gy *big.Int, n int) [][2]*big.Int {
	out := make([][2]*big.Int, n)
	x, y := new(big.Int).Set(gx), new(big.Int).Set(gy)
	for i := 0; i < n; i++ {
		out[i] = [2]*big.Int{new(big.Int).Set(x), new(big.Int).Set(y)}
		x, y = doublePoint(P, A, x, y)
	}
	return out
}

// doublePoint computes 2*(x,y) via lambda = (3x^2+a)/(2y) mod P.
func doublePoint(P, A, x, y *big.Int) (*big.Int, *big.Int) {
	num := new(big.Int).Mul(x, x)
	num.Mul(num, big.NewInt(3))
	num.Add(num, A)
	den := new(big.Int).Lsh(y, 1)
	den.Mod(den, P)
	lambda := new(big.Int).Mul(num, new(big.Int).ModInverse(den, P))
	lambda.Mod(lambda, P)

	x2 := new(big.Int).Mul(lambda, lambda)
	x2.Sub(x2, x)
	x2.Sub(x2, x)
	x2.Mod(x2, P)

	y2 := new(big.Int).Sub(x, x2)
	y2.Mul(y2, lambda)
	y2.Sub(y2, y)
	y2.Mod(y2, P)

	if x2.Sign() < 0 {
		x2.Add(x2, P)
	}
	if y2.Sign() < 0 {
		y2.Add(y2, P)
	}
	return x2, y2
}

func newBuildCmd() *cobra.Command {
	var p, doublesPath, keyStr, output, problem string
	var keyLength int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile out = key*G into a BQM and checkpoint it",
		RunE: func(cmd *cobra.Command, args []string) error {
			P, ok := new(big.Int).SetString(p, 10)
			if !ok {
				return fmt.Errorf("bqmc: invalid --p %q", p)
			}
			f, err := os.Open(doublesPath)
			if err != nil {
				return err
			}
			defer f.Close()

			L := P.BitLen()
			doubles, err := ecc.LoadDoubles(f, L)
			if err != nil {
				return err
			}
			if keyLength <= 0 {
				keyLength = len(doubles)
			}
			if keyLength != len(doubles) {
				return fmt.Errorf("bqmc: --key-length %d must match the %d doubles provided", keyLength, len(doubles))
			}

			c := circuit.New(os.Stderr)
			g := gate.New(c)
			ar := arith.New(g)
			m := modp.New(ar, P)
			e := ecc.New(m)

			key, err := c.CreateVariable("key", keyLength)
			if err != nil {
				return err
			}
			if keyStr != "" {
				kv, ok := new(big.Int).SetString(keyStr, 10)
				if !ok {
					return fmt.Errorf("bqmc: invalid --key %q", keyStr)
				}
				if err := c.QueueFixVariable(key, kv); err != nil {
					return err
				}
			}

			out := ecc.NewPoint(m)
			if err := e.ScalarMultiply(doubles[:keyLength], key, out); err != nil {
				return err
			}

			snap := c.Store().Snapshot()
			ckpt := result.NewCheckpoint(snap, problem, L)
			ckpt.Labels = map[string][]bqm.Name{
				"key":   namesOf(c, key),
				"out.x": namesOf(c, out.X),
				"out.y": namesOf(c, out.Y),
			}
			fmt.Printf("compiled %s: %d linear terms, %d quadratic terms, offset %d\n",
				problem, len(snap.Linear), len(snap.Quadratic), snap.Offset)
			return result.SaveCheckpoint(output, ckpt)
		},
	}
	cmd.Flags().StringVar(&p, "p", "", "prime field modulus (decimal)")
	cmd.Flags().StringVar(&doublesPath, "doubles", "", "precomputed-doubles JSON file (pkg/ecc.LoadDoubles)")
	cmd.Flags().IntVar(&keyLength, "key-length", 0, "bit width of the scalar key (0 = match doubles file)")
	cmd.Flags().StringVar(&keyStr, "key", "", "constant-fix the key to this decimal value instead of leaving it free")
	cmd.Flags().StringVar(&output, "output", "model.gob", "checkpoint output path")
	cmd.Flags().StringVar(&problem, "problem", "ecc-scalarmult", "human label stored in the checkpoint")
	cmd.MarkFlagRequired("p")
	cmd.MarkFlagRequired("doubles")
	return cmd
}

func namesOf(c *circuit.Controller, v circuit.Variable) []bqm.Name {
	names := make([]bqm.Name, len(v))
	for i, b := range v {
		names[i] = c.NameOf(b)
	}
	return names
}

func newSolveCmd() *cobra.Command {
	var checkpointPath, sampler string
	var chains, iterations, maxVars int
	var decay, temperature float64
	var seed uint64

	cmd := &cobra.Command{
		Use:   "solve [checkpoint.gob]",
		Short: "Load a checkpoint and run a sampler, printing the readback",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				checkpointPath = args[0]
			}
			ckpt, err := result.LoadCheckpoint(checkpointPath)
			if err != nil {
				return err
			}
			snap := ckpt.Snapshot()

			var s circuit.Sampler
			switch sampler {
			case "exact":
				s = sample.Exact{MaxVariables: maxVars}
			case "anneal":
				s = sample.Annealer{
					Chains:      chains,
					Iterations:  iterations,
					Decay:       decay,
					Temperature: temperature,
					Seed:        seed,
				}
			default:
				return fmt.Errorf("bqmc: unknown --sampler %q (want exact or anneal)", sampler)
			}

			set, err := s.Sample(snap)
			if err != nil {
				return err
			}
			best, ok := set.Best()
			if !ok {
				return fmt.Errorf("bqmc: sampler returned no samples")
			}
			fmt.Printf("%s: energy %d (%d occurrences)\n", ckpt.Problem, best.Energy, best.Occurrences)
			for label, names := range ckpt.Labels {
				bits := make([]int, len(names))
				resolved := true
				for i, n := range names {
					v, present := best.Assignment[n]
					if !present {
						resolved = false
						break
					}
					bits[i] = v
				}
				if !resolved {
					fmt.Printf("  %s: <fixed out of the model, not recoverable from this checkpoint alone>\n", label)
					continue
				}
				fmt.Printf("  %s = %s\n", label, encode.Int(bits))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sampler, "sampler", "exact", "exact or anneal")
	cmd.Flags().IntVar(&chains, "chains", runtime.NumCPU(), "annealer: number of chains")
	cmd.Flags().IntVar(&iterations, "iterations", 100_000, "annealer: steps per chain")
	cmd.Flags().Float64Var(&decay, "decay", 0.9999, "annealer: temperature decay per step")
	cmd.Flags().Float64Var(&temperature, "temperature", 1.0, "annealer: starting temperature")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "annealer: base seed (0 = random)")
	cmd.Flags().IntVar(&maxVars, "max-variables", 24, "exact: cap on free-variable count")
	return cmd
}

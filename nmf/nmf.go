package nmf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/matrix"
)

var ErrConvergence = errors.New("nmf: solver failed to converge within the iteration cap")

// small constant added to denominators to avoid division by zero
const eps = 1e-12

// Config carries the factorization hyperparameters. The zero value is
// usable: defaults mirror the common nndsvdar/cd setup.
type Config struct {
	// Init selects the initialization strategy: random, nndsvd,
	// nndsvda or nndsvdar.
	Init string
	// Solver selects the update rule: cd (coordinate descent) or
	// mu (multiplicative updates).
	Solver string
	// Tol is the relative reconstruction-error improvement below
	// which the factorization is considered converged.
	Tol float64
	// MaxIter caps the number of solver sweeps.
	MaxIter int
	// Alpha is the regularization strength, L1Ratio the L1/L2 mix.
	Alpha   float64
	L1Ratio float64
	// Shuffle randomizes the coordinate order in the cd solver.
	Shuffle bool
	// Seed seeds the RNG used for initialization and shuffling.
	// Runs with equal seeds on equal input are reproducible.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.Init == "" {
		c.Init = "nndsvdar"
	}
	if c.Solver == "" {
		c.Solver = "cd"
	}
	if c.Tol <= 0 {
		c.Tol = 1e-4
	}
	if c.MaxIter <= 0 {
		c.MaxIter = 200
	}
	return c
}

// Result is a factorization W*H of a documents x terms matrix at K topics.
type Result struct {
	K int
	// W holds the document loadings, documents x K
	W *mat.Dense
	// H holds the topic term weights, K x terms
	H *mat.Dense
}

// Factorize decomposes the non-negative matrix v into K-topic factors
// W and H. It fails with ErrConvergence if the configured tolerance is
// not reached within the iteration cap, and respects ctx cancellation
// between solver sweeps.
func Factorize(ctx context.Context, v mat.Matrix, k int, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := matrix.Validate(v); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("nmf: component count %d must be positive", k)
	}

	ctor, err := GetSolver(cfg.Solver)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	w, h, err := initialize(v, k, cfg, rng)
	if err != nil {
		return nil, err
	}
	solver := ctor(cfg, rng)

	errInit := reconstructionError(v, w, h)
	prev := errInit
	converged := errInit < eps
	for i := 0; i < cfg.MaxIter && !converged; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		solver.Update(v, w, h)

		cur := reconstructionError(v, w, h)
		if prev-cur < cfg.Tol*errInit || cur < eps {
			converged = true
		}
		prev = cur
	}
	if !converged {
		return nil, ErrConvergence
	}

	return &Result{K: k, W: w, H: h}, nil
}

// reconstructionError computes the Frobenius norm of v - w*h.
func reconstructionError(v mat.Matrix, w, h *mat.Dense) float64 {
	var rec mat.Dense
	rec.Mul(w, h)

	r, c := v.Dims()
	sum := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d := v.At(i, j) - rec.At(i, j)
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

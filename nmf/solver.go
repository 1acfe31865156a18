package nmf

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

var solvers = make(map[string]SolverCtor)

// the common interface new update rules should follow
type Solver interface {
	// perform one full W and H update sweep
	Update(v mat.Matrix, w, h *mat.Dense)
}

type SolverCtor func(cfg Config, rng *rand.Rand) Solver

// new solvers should register themselves using this function
func Register(name string, ctor SolverCtor) {
	solvers[name] = ctor
}

func GetSolver(name string) (SolverCtor, error) {
	if _, ok := solvers[name]; !ok {
		return nil, fmt.Errorf("nmf: solver %s not registered", name)
	}
	return solvers[name], nil
}

func init() {
	Register("mu", NewMultiplicative)
	Register("cd", NewCoordinateDescent)
}

type multiplicative struct {
	l1 float64
	l2 float64
}

// NewMultiplicative creates the classic multiplicative-update solver
// for the Frobenius objective with elementwise L1/L2 regularization.
func NewMultiplicative(cfg Config, rng *rand.Rand) Solver {
	return &multiplicative{
		l1: cfg.Alpha * cfg.L1Ratio,
		l2: cfg.Alpha * (1 - cfg.L1Ratio),
	}
}

func (s *multiplicative) Update(v mat.Matrix, w, h *mat.Dense) {
	// W <- W * (V Hᵀ) / (W H Hᵀ + reg)
	var hh, num, den mat.Dense
	hh.Mul(h, h.T())
	num.Mul(v, h.T())
	den.Mul(w, &hh)

	r, k := w.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			wij := w.At(i, j)
			d := den.At(i, j) + s.l1 + s.l2*wij + eps
			w.Set(i, j, wij*num.At(i, j)/d)
		}
	}

	// H <- H * (Wᵀ V) / (Wᵀ W H + reg)
	var ww, num2, den2 mat.Dense
	ww.Mul(w.T(), w)
	num2.Mul(w.T(), v)
	den2.Mul(&ww, h)

	_, c := h.Dims()
	for i := 0; i < k; i++ {
		for j := 0; j < c; j++ {
			hij := h.At(i, j)
			d := den2.At(i, j) + s.l1 + s.l2*hij + eps
			h.Set(i, j, hij*num2.At(i, j)/d)
		}
	}
}

type coordinateDescent struct {
	l1      float64
	l2      float64
	shuffle bool
	rng     *rand.Rand
}

// NewCoordinateDescent creates a HALS-style coordinate-descent solver.
// With Shuffle set the per-sweep topic order is randomized.
func NewCoordinateDescent(cfg Config, rng *rand.Rand) Solver {
	return &coordinateDescent{
		l1:      cfg.Alpha * cfg.L1Ratio,
		l2:      cfg.Alpha * (1 - cfg.L1Ratio),
		shuffle: cfg.Shuffle,
		rng:     rng,
	}
}

func (s *coordinateDescent) Update(v mat.Matrix, w, h *mat.Dense) {
	s.updateW(v, w, h)
	s.updateH(v, w, h)
}

func (s *coordinateDescent) order(k int) []int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	if s.shuffle {
		s.rng.Shuffle(k, func(i, j int) {
			idx[i], idx[j] = idx[j], idx[i]
		})
	}
	return idx
}

func (s *coordinateDescent) updateW(v mat.Matrix, w, h *mat.Dense) {
	var hh, vh mat.Dense
	hh.Mul(h, h.T())
	vh.Mul(v, h.T())

	n, k := w.Dims()
	for _, t := range s.order(k) {
		den := hh.At(t, t) + s.l2 + eps
		for i := 0; i < n; i++ {
			grad := vh.At(i, t) - s.l1
			for l := 0; l < k; l++ {
				grad -= w.At(i, l) * hh.At(l, t)
			}
			val := w.At(i, t) + grad/den
			if val < 0 {
				val = 0
			}
			w.Set(i, t, val)
		}
	}
}

func (s *coordinateDescent) updateH(v mat.Matrix, w, h *mat.Dense) {
	var ww, wv mat.Dense
	ww.Mul(w.T(), w)
	wv.Mul(w.T(), v)

	k, c := h.Dims()
	for _, t := range s.order(k) {
		den := ww.At(t, t) + s.l2 + eps
		for j := 0; j < c; j++ {
			grad := wv.At(t, j) - s.l1
			for l := 0; l < k; l++ {
				grad -= ww.At(t, l) * h.At(l, j)
			}
			val := h.At(t, j) + grad/den
			if val < 0 {
				val = 0
			}
			h.Set(t, j, val)
		}
	}
}

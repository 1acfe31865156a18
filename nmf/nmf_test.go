package nmf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func blockMatrix() *mat.Dense {
	// rank 2, two disjoint term groups
	return mat.NewDense(4, 4, []float64{
		5, 5, 0, 0,
		4, 4, 0, 0,
		0, 0, 3, 3,
		0, 0, 6, 6,
	})
}

func TestFactorizeReconstructsBlockMatrix(t *testing.T) {
	v := blockMatrix()

	res, err := Factorize(context.Background(), v, 2, Config{
		Init:    "nndsvd",
		Solver:  "cd",
		Tol:     1e-4,
		MaxIter: 500,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, res.K)

	r, k := res.W.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, k)
	hr, hc := res.H.Dims()
	assert.Equal(t, 2, hr)
	assert.Equal(t, 4, hc)

	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			assert.True(t, res.W.At(i, j) >= 0)
		}
	}
	for i := 0; i < hr; i++ {
		for j := 0; j < hc; j++ {
			assert.True(t, res.H.At(i, j) >= 0)
		}
	}

	assert.Less(t, reconstructionError(v, res.W, res.H), 0.5)
}

func TestFactorizeDeterministicWithSeed(t *testing.T) {
	v := blockMatrix()
	cfg := Config{
		Init:    "random",
		Solver:  "mu",
		Tol:     1e-4,
		MaxIter: 500,
		Seed:    42,
	}

	first, err := Factorize(context.Background(), v, 2, cfg)
	assert.NoError(t, err)
	second, err := Factorize(context.Background(), v, 2, cfg)
	assert.NoError(t, err)

	assert.True(t, mat.EqualApprox(first.W, second.W, 1e-12))
	assert.True(t, mat.EqualApprox(first.H, second.H, 1e-12))
}

func TestFactorizeConvergenceError(t *testing.T) {
	v := mat.NewDense(5, 5, []float64{
		1, 2, 3, 4, 5,
		5, 4, 3, 2, 1,
		2, 2, 2, 2, 2,
		1, 0, 1, 0, 1,
		3, 1, 4, 1, 5,
	})

	_, err := Factorize(context.Background(), v, 2, Config{
		Init:    "random",
		Solver:  "mu",
		Tol:     1e-12,
		MaxIter: 1,
		Seed:    7,
	})
	assert.Equal(t, ErrConvergence, err)
}

func TestFactorizeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Factorize(ctx, blockMatrix(), 2, Config{
		Init:    "nndsvd",
		Solver:  "cd",
		MaxIter: 1000,
	})
	assert.Equal(t, context.Canceled, err)
}

func TestFactorizeRejectsBadConfig(t *testing.T) {
	v := blockMatrix()

	_, err := Factorize(context.Background(), v, 0, Config{})
	assert.Error(t, err)

	_, err = Factorize(context.Background(), v, 2, Config{Solver: "pg"})
	assert.Error(t, err)

	_, err = Factorize(context.Background(), v, 2, Config{Init: "custom"})
	assert.Error(t, err)

	// nndsvd cannot seed more topics than matrix rank allows
	_, err = Factorize(context.Background(), v, 5, Config{Init: "nndsvd"})
	assert.Error(t, err)
}

func TestGetSolver(t *testing.T) {
	_, err := GetSolver("cd")
	assert.NoError(t, err)
	_, err = GetSolver("mu")
	assert.NoError(t, err)
	_, err = GetSolver("newton")
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	v := blockMatrix()
	res, err := Factorize(context.Background(), v, 2, Config{
		Init:    "nndsvd",
		Solver:  "cd",
		MaxIter: 500,
	})
	assert.NoError(t, err)

	fn := filepath.Join(t.TempDir(), "factors")
	assert.NoError(t, res.Save(fn))

	loaded, err := Load(fn)
	assert.NoError(t, err)
	assert.Equal(t, res.K, loaded.K)
	assert.True(t, mat.EqualApprox(res.W, loaded.W, 1e-5))
	assert.True(t, mat.EqualApprox(res.H, loaded.H, 1e-5))
}

package nmf

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/matrix"
)

func initialize(v mat.Matrix, k int, cfg Config, rng *rand.Rand) (*mat.Dense, *mat.Dense, error) {
	switch cfg.Init {
	case "random":
		w, h := randomInit(v, k, rng)
		return w, h, nil
	case "nndsvd", "nndsvda", "nndsvdar":
		return nndsvd(v, k, cfg.Init, rng)
	default:
		return nil, nil, fmt.Errorf("nmf: init %s not supported", cfg.Init)
	}
}

// randomInit fills W and H with half-normal values scaled so that the
// expected product matches the mean of v.
func randomInit(v mat.Matrix, k int, rng *rand.Rand) (*mat.Dense, *mat.Dense) {
	r, c := v.Dims()
	scale := math.Sqrt(matrix.Sum(v) / float64(r*c) / float64(k))

	w := mat.NewDense(r, k, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < k; j++ {
			w.Set(i, j, scale*math.Abs(rng.NormFloat64()))
		}
	}
	h := mat.NewDense(k, c, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < c; j++ {
			h.Set(i, j, scale*math.Abs(rng.NormFloat64()))
		}
	}
	return w, h
}

func nndsvd(v mat.Matrix, k int, variant string, rng *rand.Rand) (*mat.Dense, *mat.Dense, error) {
	r, c := v.Dims()
	if k > r || k > c {
		return nil, nil, fmt.Errorf("nmf: %s initialization requires k <= min(%d, %d)", variant, r, c)
	}

	var svd mat.SVD
	if !svd.Factorize(mat.DenseCopyOf(v), mat.SVDThin) {
		return nil, nil, fmt.Errorf("nmf: svd failed on %dx%d input matrix", r, c)
	}
	var u, vv mat.Dense
	svd.UTo(&u)
	svd.VTo(&vv)
	s := svd.Values(nil)

	w := mat.NewDense(r, k, nil)
	h := mat.NewDense(k, c, nil)

	// leading singular pair is non-negative up to sign
	sq := math.Sqrt(s[0])
	for i := 0; i < r; i++ {
		w.Set(i, 0, sq*math.Abs(u.At(i, 0)))
	}
	for j := 0; j < c; j++ {
		h.Set(0, j, sq*math.Abs(vv.At(j, 0)))
	}

	for t := 1; t < k; t++ {
		xp := make([]float64, r)
		xn := make([]float64, r)
		for i := 0; i < r; i++ {
			if x := u.At(i, t); x > 0 {
				xp[i] = x
			} else {
				xn[i] = -x
			}
		}
		yp := make([]float64, c)
		yn := make([]float64, c)
		for j := 0; j < c; j++ {
			if y := vv.At(j, t); y > 0 {
				yp[j] = y
			} else {
				yn[j] = -y
			}
		}

		xpn, xnn := norm2(xp), norm2(xn)
		ypn, ynn := norm2(yp), norm2(yn)

		// keep the dominant sign pair of the t-th singular vectors
		x, y := xp, yp
		xnorm, ynorm := xpn, ypn
		sigma := xpn * ypn
		if xnn*ynn > sigma {
			x, y = xn, yn
			xnorm, ynorm = xnn, ynn
			sigma = xnn * ynn
		}
		if sigma == 0 {
			continue
		}

		lbd := math.Sqrt(s[t] * sigma)
		for i := 0; i < r; i++ {
			w.Set(i, t, lbd*x[i]/xnorm)
		}
		for j := 0; j < c; j++ {
			h.Set(t, j, lbd*y[j]/ynorm)
		}
	}

	switch variant {
	case "nndsvda":
		avg := matrix.Sum(v) / float64(r*c)
		fillZeros(w, func() float64 { return avg })
		fillZeros(h, func() float64 { return avg })
	case "nndsvdar":
		avg := matrix.Sum(v) / float64(r*c)
		fillZeros(w, func() float64 { return avg * rng.Float64() / 100 })
		fillZeros(h, func() float64 { return avg * rng.Float64() / 100 })
	}

	return w, h, nil
}

func fillZeros(m *mat.Dense, gen func() float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) == 0 {
				m.Set(i, j, gen())
			}
		}
	}
}

func norm2(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x * x
	}
	return math.Sqrt(sum)
}

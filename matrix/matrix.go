package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// nonZeroDoer is the fast iteration path offered by sparse matrix
// implementations (e.g. the CSR matrices produced by the vectorizer).
type nonZeroDoer interface {
	DoNonZero(fn func(i, j int, v float64))
}

// Validate checks that m is a usable document-term matrix: both
// dimensions positive and no negative entries.
func Validate(m mat.Matrix) error {
	r, c := m.Dims()
	if r <= 0 || c <= 0 {
		return ErrBadShape
	}
	if nz, ok := m.(nonZeroDoer); ok {
		bad := false
		nz.DoNonZero(func(i, j int, v float64) {
			if v < 0 {
				bad = true
			}
		})
		if bad {
			return ErrNegativeEntry
		}
		return nil
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) < 0 {
				return ErrNegativeEntry
			}
		}
	}
	return nil
}

// RowNonzeros counts the nonzero entries of each row.
func RowNonzeros(m mat.Matrix) []int {
	r, c := m.Dims()
	counts := make([]int, r)
	if nz, ok := m.(nonZeroDoer); ok {
		nz.DoNonZero(func(i, j int, v float64) {
			if v != 0 {
				counts[i]++
			}
		})
		return counts
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if m.At(i, j) != 0 {
				counts[i]++
			}
		}
	}
	return counts
}

// RowArgmax returns the index of the largest value in row r of m.
// Ties go to the lowest index.
func RowArgmax(m mat.Matrix, r int) int {
	_, c := m.Dims()
	best := 0
	bestVal := m.At(r, 0)
	for j := 1; j < c; j++ {
		if v := m.At(r, j); v > bestVal {
			best = j
			bestVal = v
		}
	}
	return best
}

// Assignments maps each row of the loading matrix w to its
// max-loading column index.
func Assignments(w mat.Matrix) []int {
	r, _ := w.Dims()
	labels := make([]int, r)
	for i := 0; i < r; i++ {
		labels[i] = RowArgmax(w, i)
	}
	return labels
}

// TopicSizes aggregates assignment labels into a topic index to
// document count mapping. Topics with no documents are absent.
func TopicSizes(labels []int) map[int]int {
	sizes := make(map[int]int)
	for _, l := range labels {
		sizes[l]++
	}
	return sizes
}

// Sum adds up every entry of the matrix.
func Sum(m mat.Matrix) float64 {
	if nz, ok := m.(nonZeroDoer); ok {
		total := 0.0
		nz.DoNonZero(func(i, j int, v float64) {
			total += v
		})
		return total
	}
	r, c := m.Dims()
	total := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			total += m.At(i, j)
		}
	}
	return total
}

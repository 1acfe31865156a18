package pareto

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/matrix"
)

// EstimateNoise derives the noise fraction from the content
// distribution of m: it finds the smallest set of documents that
// together hold nPercent of the total token mass and treats the
// complementary document fraction as noise.
func EstimateNoise(m mat.Matrix, nPercent float64) (float64, error) {
	counts := matrix.RowNonzeros(m)
	totalDocs := len(counts)
	if totalDocs == 0 {
		return 0, ErrInvalidInput
	}

	totalTokens := 0
	for _, n := range counts {
		totalTokens += n
	}
	if totalTokens == 0 {
		return 0, ErrInvalidInput
	}

	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	majorityInformation := int(float64(totalTokens) * nPercent)

	majorityDocs := 0
	cum := 0
	for _, n := range counts {
		cum += n
		if cum < majorityInformation {
			majorityDocs++
		}
	}
	return 1 - float64(majorityDocs)/float64(totalDocs), nil
}

// EstimateStep derives the search step from matrix shape: a larger
// vocabulary relative to corpus size warrants coarser increments.
func EstimateStep(m mat.Matrix) int {
	rows, cols := m.Dims()
	if rows == 0 {
		return 1
	}
	step := int(math.Round(float64(cols) / float64(rows)))
	if step < 1 {
		step = 1
	}
	return step
}

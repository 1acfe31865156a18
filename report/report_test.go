package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/nmf"
)

func TestImportance(t *testing.T) {
	tm := mat.NewDense(2, 3, []float64{
		2, 1, 0,
		2, 0, 5,
	})

	imp := Importance(tm)
	assert.InDelta(t, 0.4, imp[0], 1e-9)
	assert.InDelta(t, 0.1, imp[1], 1e-9)
	assert.InDelta(t, 0.5, imp[2], 1e-9)
}

func TestImportanceAllZero(t *testing.T) {
	imp := Importance(mat.NewDense(2, 2, nil))
	assert.Equal(t, []float64{0, 0}, imp)
}

func TestSummarize(t *testing.T) {
	// two clean topics: docs 0,1 on terms a,b and docs 2,3 on term c
	tm := mat.NewDense(4, 3, []float64{
		3, 1, 0,
		2, 2, 0,
		0, 0, 4,
		0, 0, 2,
	})
	res := &nmf.Result{
		K: 2,
		W: mat.NewDense(4, 2, []float64{
			0.9, 0.0,
			0.8, 0.1,
			0.0, 0.7,
			0.1, 0.6,
		}),
		H: mat.NewDense(2, 3, []float64{
			0.6, 0.4, 0.0,
			0.0, 0.0, 1.0,
		}),
	}
	vocab := map[string]int{"a": 0, "b": 1, "c": 2}

	topics := Summarize(res, tm, vocab, 2)
	assert.Len(t, topics, 2)

	assert.Equal(t, []string{"a", "b"}, topics[0].TopWords)
	assert.Equal(t, 2, topics[0].Size)
	assert.InDelta(t, 0.5, topics[0].Share, 1e-9)
	// doc 0 has the higher mean importance-weighted weight
	assert.Equal(t, 0, topics[0].Exemplar)

	assert.Equal(t, []string{"c"}, topics[1].TopWords)
	assert.Equal(t, 2, topics[1].Size)
	assert.Equal(t, 2, topics[1].Exemplar)
}

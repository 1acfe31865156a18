package pareto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRichTopicCount(t *testing.T) {
	// cumulative sums 10, 18, 20: only the first stays below 15
	sizes := map[int]int{0: 10, 1: 8, 2: 2}
	assert.Equal(t, 1, RichTopicCount(sizes, 15))

	// balanced clusters: 20, 40 below 48, 60 crosses it
	sizes = map[int]int{0: 20, 1: 20, 2: 20}
	assert.Equal(t, 2, RichTopicCount(sizes, 48))

	// one dominant topic covering the threshold outright
	sizes = map[int]int{0: 50, 1: 10}
	assert.Equal(t, 0, RichTopicCount(sizes, 48))
}

func TestStable(t *testing.T) {
	sizes := map[int]int{0: 20, 1: 20, 2: 20}

	rich, stable := Stable(sizes, 48, 2)
	assert.Equal(t, 2, rich)
	assert.True(t, stable)

	rich, stable = Stable(sizes, 48, 1)
	assert.Equal(t, 2, rich)
	assert.False(t, stable)
}

func TestStableOrderIrrelevant(t *testing.T) {
	a := map[int]int{0: 2, 1: 10, 2: 8}
	b := map[int]int{0: 10, 1: 8, 2: 2}

	assert.Equal(t, RichTopicCount(b, 15), RichTopicCount(a, 15))
}

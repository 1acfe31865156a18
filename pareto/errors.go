package pareto

import "errors"

var (
	// ErrInvalidInput flags a matrix the search cannot work with:
	// no documents, no token mass, or a rich-content threshold
	// that comes out non-positive.
	ErrInvalidInput = errors.New("pareto: input matrix has no usable content")

	// ErrDegenerate flags stability on the very first iteration,
	// where no previous factorization exists to back off to.
	ErrDegenerate = errors.New("pareto: search stabilized on the first step, no factorization to back off to")
)

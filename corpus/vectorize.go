package corpus

import (
	"fmt"
	"strings"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

// Vectorize turns tokenized documents into a tf-idf weighted
// documents x terms matrix plus the fitted term to column index
// vocabulary. The vectorizer produces term-major output, so the
// result is flipped to the documents-as-rows orientation the topic
// search expects.
func Vectorize(docs [][]string, stopWords ...string) (*mat.Dense, map[string]int, error) {
	if len(docs) == 0 {
		return nil, nil, fmt.Errorf("corpus: no documents to vectorize")
	}

	joined := make([]string, len(docs))
	for i, doc := range docs {
		joined[i] = strings.Join(doc, " ")
	}

	vectoriser := nlp.NewCountVectoriser(stopWords...)
	transformer := nlp.NewTfidfTransformer()
	pipeline := nlp.NewPipeline(vectoriser, transformer)

	weighted, err := pipeline.FitTransform(joined...)
	if err != nil {
		return nil, nil, fmt.Errorf("corpus: vectorization failed: %w", err)
	}

	return mat.DenseCopyOf(weighted.T()), vectoriser.Vocabulary, nil
}

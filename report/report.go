// Package report summarizes a stored factorization for human
// consumption: top terms, document share and an exemplar document
// per topic.
package report

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/alexseong/BotBoosted/matrix"
	"github.com/alexseong/BotBoosted/nmf"
)

// Topic describes one extracted topic.
type Topic struct {
	Index int
	// TopWords are the highest ranked terms by importance-weighted
	// topic loading.
	TopWords []string
	// Size is the number of documents assigned to this topic,
	// Share the corresponding corpus fraction.
	Size  int
	Share float64
	// Exemplar is the row index of the most representative
	// document, -1 when the topic is empty.
	Exemplar int
}

// Importance scores each term by its share of the total tf-idf mass
// of the corpus.
func Importance(tm mat.Matrix) []float64 {
	r, c := tm.Dims()
	scores := make([]float64, c)
	total := 0.0
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			scores[j] += tm.At(i, j)
			total += tm.At(i, j)
		}
	}
	if total == 0 {
		return scores
	}
	for j := range scores {
		scores[j] /= total
	}
	return scores
}

// Summarize builds per-topic summaries from a retained factorization
// and the document-term matrix it was computed on. vocab maps terms
// to column indices, as produced by the vectorizer.
func Summarize(res *nmf.Result, tm mat.Matrix, vocab map[string]int, topN int) []Topic {
	docs, terms := tm.Dims()

	words := make([]string, terms)
	for w, j := range vocab {
		if j >= 0 && j < terms {
			words[j] = w
		}
	}

	labels := matrix.Assignments(res.W)
	sizes := matrix.TopicSizes(labels)
	importance := Importance(tm)

	// mean importance-weighted tf-idf per document, used to pick
	// exemplars
	nonzeros := matrix.RowNonzeros(tm)
	docScore := make([]float64, docs)
	for i := 0; i < docs; i++ {
		if nonzeros[i] == 0 {
			continue
		}
		sum := 0.0
		for j := 0; j < terms; j++ {
			sum += tm.At(i, j) * importance[j]
		}
		docScore[i] = sum / float64(nonzeros[i])
	}

	if topN > terms {
		topN = terms
	}

	topics := make([]Topic, res.K)
	for t := 0; t < res.K; t++ {
		ranked := make([]int, terms)
		for j := range ranked {
			ranked[j] = j
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return importance[ranked[a]]*res.H.At(t, ranked[a]) >
				importance[ranked[b]]*res.H.At(t, ranked[b])
		})

		top := make([]string, 0, topN)
		for _, j := range ranked[:topN] {
			if importance[j]*res.H.At(t, j) <= 0 {
				break
			}
			top = append(top, words[j])
		}

		exemplar := -1
		best := 0.0
		for i, l := range labels {
			if l != t {
				continue
			}
			if exemplar == -1 || docScore[i] > best {
				exemplar = i
				best = docScore[i]
			}
		}

		topics[t] = Topic{
			Index:    t,
			TopWords: top,
			Size:     sizes[t],
			Share:    float64(sizes[t]) / float64(docs),
			Exemplar: exemplar,
		}
	}
	return topics
}

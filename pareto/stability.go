package pareto

import "sort"

// RichTopicCount returns how many of the largest topics are consumed
// before the cumulative document count reaches the rich-content
// threshold.
func RichTopicCount(sizes map[int]int, richContent int) int {
	counts := make([]int, 0, len(sizes))
	for _, n := range sizes {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	rich := 0
	cum := 0
	for _, n := range counts {
		cum += n
		if cum < richContent {
			rich++
		}
	}
	return rich
}

// Stable decides whether adding topics has stopped changing the number
// of topics needed to cover the rich-content majority. It returns the
// rich-topic count of this distribution and true when that count
// matches the previous one; on false the caller should adopt the
// returned count as the new baseline.
func Stable(sizes map[int]int, richContent, prevRichTopics int) (int, bool) {
	rich := RichTopicCount(sizes, richContent)
	return rich, rich == prevRichTopics
}

package corpus

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// placeholder tokens for content classes that carry signal as a class
// rather than as individual strings
const (
	urlToken     = "_url_"
	userToken    = "_user_"
	hashToken    = "_hash_"
	numberToken  = "_number_"
	unknownToken = "_tkn_"
)

var (
	urlRE    = regexp.MustCompile(`^(https?://|www\.)\S+`)
	numberRE = regexp.MustCompile(`^[0-9]+([.,:][0-9]+)*$`)
)

// Tokenize splits raw document text into normalized tokens: urls,
// mentions, hashtags and numbers fold to placeholder tokens, retweet
// markers are dropped, punctuation is stripped, letter runs of three
// or more are squeezed to two and the remaining words are stemmed.
func Tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		switch {
		case field == "RT" || field == "Retweeted":
			// skip
		case urlRE.MatchString(field):
			tokens = append(tokens, urlToken)
		case strings.HasPrefix(field, "@"):
			tokens = append(tokens, userToken)
		case strings.HasPrefix(field, "#"):
			tokens = append(tokens, hashToken)
		case numberRE.MatchString(field):
			tokens = append(tokens, numberToken)
		default:
			for _, word := range splitPunctuation(strings.ToLower(field)) {
				word = squeezeRepeats(word)
				if word == "" {
					continue
				}
				tokens = append(tokens, english.Stem(word, true))
			}
		}
	}
	return tokens
}

// splitPunctuation treats punctuation as word separators.
func splitPunctuation(word string) []string {
	return strings.FieldsFunc(word, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// squeezeRepeats reduces runs of three or more identical letters to
// two, so "soooooo" and "sooo" collapse to the same token.
func squeezeRepeats(word string) string {
	var b strings.Builder
	var last rune
	run := 0
	for _, r := range word {
		if r == last {
			run++
		} else {
			last = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FoldInfrequent replaces tokens occurring maxCount times or fewer
// across the whole collection with a shared placeholder, trimming the
// vocabulary tail before vectorization.
func FoldInfrequent(docs [][]string, maxCount int) [][]string {
	freq := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			freq[tok]++
		}
	}

	folded := make([][]string, len(docs))
	for i, doc := range docs {
		out := make([]string, len(doc))
		for j, tok := range doc {
			if freq[tok] <= maxCount {
				out[j] = unknownToken
			} else {
				out[j] = tok
			}
		}
		folded[i] = out
	}
	return folded
}
